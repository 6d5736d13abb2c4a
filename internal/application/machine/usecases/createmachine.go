// Package usecases implements the equipment registry operations. Machines
// are managed by management roles and referenced by every issue.
package usecases

import (
	"context"

	"mainta/internal/application/machine/dto"
	"mainta/internal/domain/machine"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type CreateMachineCommand struct {
	Actor    authorization.Actor
	Name     string
	Location string
}

type CreateMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewCreateMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *CreateMachineUseCase {
	return &CreateMachineUseCase{machineRepo: machineRepo, logger: logger}
}

func (uc *CreateMachineUseCase) Execute(ctx context.Context, cmd CreateMachineCommand) (*dto.MachineDTO, error) {
	uc.logger.Infow("executing create machine use case",
		"name", cmd.Name,
		"actor", cmd.Actor.UserID)

	if !authorization.CanPerform(cmd.Actor, authorization.ActionManageMachines) {
		return nil, errors.NewForbiddenError("only management may register machines")
	}

	mach, err := machine.NewMachine(cmd.Name, cmd.Location)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	publicID, err := uc.machineRepo.NextPublicID(ctx)
	if err != nil {
		uc.logger.Errorw("failed to reserve machine identifier", "error", err)
		return nil, err
	}
	if err := mach.SetPublicID(publicID); err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	if err := uc.machineRepo.Save(ctx, mach); err != nil {
		uc.logger.Errorw("failed to save machine", "error", err)
		return nil, err
	}

	uc.logger.Infow("machine registered", "machine_id", mach.PublicID())

	result := dto.FromMachine(mach)
	return &result, nil
}
