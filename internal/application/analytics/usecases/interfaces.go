package usecases

import "context"

type DashboardExecutor interface {
	Execute(ctx context.Context, query DashboardQuery) (*DashboardResult, error)
}

type ByMachineExecutor interface {
	Execute(ctx context.Context, query ByMachineQuery) (*ByMachineResult, error)
}

type ByTechnicianExecutor interface {
	Execute(ctx context.Context, query ByTechnicianQuery) (*ByTechnicianResult, error)
}
