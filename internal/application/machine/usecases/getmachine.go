package usecases

import (
	"context"

	"mainta/internal/application/machine/dto"
	"mainta/internal/domain/machine"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type GetMachineQuery struct {
	Actor     authorization.Actor
	MachineID string
}

type GetMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewGetMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *GetMachineUseCase {
	return &GetMachineUseCase{machineRepo: machineRepo, logger: logger}
}

func (uc *GetMachineUseCase) Execute(ctx context.Context, query GetMachineQuery) (*dto.MachineDTO, error) {
	if query.MachineID == "" {
		return nil, errors.NewValidationError("machine ID is required")
	}
	// Every active account may look machines up; reporting an issue
	// starts from the machine list.
	if !query.Actor.Active {
		return nil, errors.NewForbiddenError("account is deactivated")
	}

	mach, err := uc.machineRepo.GetByPublicID(ctx, query.MachineID)
	if err != nil {
		return nil, err
	}

	result := dto.FromMachine(mach)
	return &result, nil
}
