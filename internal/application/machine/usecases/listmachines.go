package usecases

import (
	"context"

	"mainta/internal/application/machine/dto"
	"mainta/internal/domain/machine"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
	"mainta/internal/shared/utils"
)

type ListMachinesQuery struct {
	Actor    authorization.Actor
	Page     int
	PageSize int
}

type ListMachinesResult struct {
	Items    []dto.MachineDTO
	Total    int64
	Page     int
	PageSize int
}

type ListMachinesUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewListMachinesUseCase(machineRepo machine.Repository, logger logger.Interface) *ListMachinesUseCase {
	return &ListMachinesUseCase{machineRepo: machineRepo, logger: logger}
}

func (uc *ListMachinesUseCase) Execute(ctx context.Context, query ListMachinesQuery) (*ListMachinesResult, error) {
	if !query.Actor.Active {
		return nil, errors.NewForbiddenError("account is deactivated")
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	machines, total, err := uc.machineRepo.List(ctx, pagination.Page, pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list machines", "error", err)
		return nil, err
	}

	items := make([]dto.MachineDTO, len(machines))
	for i, mach := range machines {
		items[i] = dto.FromMachine(mach)
	}

	return &ListMachinesResult{
		Items:    items,
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
