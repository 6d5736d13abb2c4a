package user

import "context"

type Repository interface {
	Save(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUserID(ctx context.Context, userID string) (*User, error)

	// GetByMatricule looks an account up by badge number, used by the
	// matricule login path.
	GetByMatricule(ctx context.Context, matricule string) (*User, error)

	Update(ctx context.Context, u *User) error
	List(ctx context.Context, page, pageSize int) ([]*User, int64, error)

	// ListByIDs fetches the given accounts in one query; missing IDs are
	// silently skipped.
	ListByIDs(ctx context.Context, ids []uint) ([]*User, error)
}
