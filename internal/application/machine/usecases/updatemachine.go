package usecases

import (
	"context"

	"mainta/internal/application/machine/dto"
	"mainta/internal/domain/machine"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

// UpdateMachineCommand carries partial updates; nil pointers leave the
// field untouched.
type UpdateMachineCommand struct {
	Actor     authorization.Actor
	MachineID string
	Name      *string
	Location  *string
	Status    *string
}

type UpdateMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewUpdateMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *UpdateMachineUseCase {
	return &UpdateMachineUseCase{machineRepo: machineRepo, logger: logger}
}

func (uc *UpdateMachineUseCase) Execute(ctx context.Context, cmd UpdateMachineCommand) (*dto.MachineDTO, error) {
	uc.logger.Infow("executing update machine use case",
		"machine_id", cmd.MachineID,
		"actor", cmd.Actor.UserID)

	if cmd.MachineID == "" {
		return nil, errors.NewValidationError("machine ID is required")
	}
	if !authorization.CanPerform(cmd.Actor, authorization.ActionManageMachines) {
		return nil, errors.NewForbiddenError("only management may update machines")
	}

	mach, err := uc.machineRepo.GetByPublicID(ctx, cmd.MachineID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_id", cmd.MachineID)
		return nil, err
	}

	if cmd.Name != nil {
		if err := mach.Rename(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Location != nil {
		mach.Relocate(*cmd.Location)
	}
	if cmd.Status != nil {
		status, err := machine.NewStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := mach.ChangeStatus(status); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.machineRepo.Update(ctx, mach); err != nil {
		uc.logger.Errorw("failed to update machine", "error", err, "machine_id", cmd.MachineID)
		return nil, err
	}

	uc.logger.Infow("machine updated", "machine_id", mach.PublicID())

	result := dto.FromMachine(mach)
	return &result, nil
}
