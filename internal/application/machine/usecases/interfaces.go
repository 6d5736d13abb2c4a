package usecases

import (
	"context"

	"mainta/internal/application/machine/dto"
)

type CreateMachineExecutor interface {
	Execute(ctx context.Context, cmd CreateMachineCommand) (*dto.MachineDTO, error)
}

type UpdateMachineExecutor interface {
	Execute(ctx context.Context, cmd UpdateMachineCommand) (*dto.MachineDTO, error)
}

type DeleteMachineExecutor interface {
	Execute(ctx context.Context, cmd DeleteMachineCommand) error
}

type GetMachineExecutor interface {
	Execute(ctx context.Context, query GetMachineQuery) (*dto.MachineDTO, error)
}

type ListMachinesExecutor interface {
	Execute(ctx context.Context, query ListMachinesQuery) (*ListMachinesResult, error)
}
