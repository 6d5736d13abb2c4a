package machine

import "context"

type Repository interface {
	Save(ctx context.Context, m *Machine) error
	GetByID(ctx context.Context, id uint) (*Machine, error)
	GetByPublicID(ctx context.Context, publicID string) (*Machine, error)
	Update(ctx context.Context, m *Machine) error

	// Delete removes the machine row. Callers must first verify no issue
	// references it; the use case surfaces a conflict otherwise.
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, page, pageSize int) ([]*Machine, int64, error)

	// ListByIDs fetches the given machines in one query; missing IDs are
	// silently skipped.
	ListByIDs(ctx context.Context, ids []uint) ([]*Machine, error)

	// NextPublicID reserves the next sequential public identifier
	// (MACH001, MACH002, ...).
	NextPublicID(ctx context.Context) (string, error)
}
