package usecases

import (
	"context"

	"mainta/internal/domain/issue"
	"mainta/internal/domain/machine"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type DeleteMachineCommand struct {
	Actor     authorization.Actor
	MachineID string
}

// DeleteMachineUseCase removes a machine that has no issue history. A
// referenced machine is refused; deactivate it instead.
type DeleteMachineUseCase struct {
	machineRepo machine.Repository
	issueRepo   issue.Repository
	logger      logger.Interface
}

func NewDeleteMachineUseCase(machineRepo machine.Repository, issueRepo issue.Repository, logger logger.Interface) *DeleteMachineUseCase {
	return &DeleteMachineUseCase{
		machineRepo: machineRepo,
		issueRepo:   issueRepo,
		logger:      logger,
	}
}

func (uc *DeleteMachineUseCase) Execute(ctx context.Context, cmd DeleteMachineCommand) error {
	uc.logger.Infow("executing delete machine use case",
		"machine_id", cmd.MachineID,
		"actor", cmd.Actor.UserID)

	if cmd.MachineID == "" {
		return errors.NewValidationError("machine ID is required")
	}
	if !authorization.CanPerform(cmd.Actor, authorization.ActionManageMachines) {
		return errors.NewForbiddenError("only management may delete machines")
	}

	mach, err := uc.machineRepo.GetByPublicID(ctx, cmd.MachineID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_id", cmd.MachineID)
		return err
	}

	count, err := uc.issueRepo.CountByMachine(ctx, mach.ID())
	if err != nil {
		uc.logger.Errorw("failed to count issues for machine", "error", err, "machine_id", cmd.MachineID)
		return err
	}
	if count > 0 {
		return errors.NewConflictError("machine has issue history and cannot be deleted")
	}

	if err := uc.machineRepo.Delete(ctx, mach.ID()); err != nil {
		uc.logger.Errorw("failed to delete machine", "error", err, "machine_id", cmd.MachineID)
		return err
	}

	uc.logger.Infow("machine deleted", "machine_id", cmd.MachineID)
	return nil
}
