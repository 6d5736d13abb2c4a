package usecases

import (
	"context"

	"mainta/internal/application/user/dto"
	"mainta/internal/shared/authorization"
)

// PasswordHasher abstracts the bcrypt implementation so use cases stay
// testable without hashing cost.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type JWTService interface {
	Generate(userID string, role authorization.Role, service authorization.Service) (*TokenPair, error)
	Refresh(refreshToken string) (*TokenPair, error)
}

type RegisterUserExecutor interface {
	Execute(ctx context.Context, cmd RegisterUserCommand) (*dto.UserDTO, error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type RefreshTokenExecutor interface {
	Execute(ctx context.Context, cmd RefreshTokenCommand) (*TokenPair, error)
}

type GetUserExecutor interface {
	Execute(ctx context.Context, query GetUserQuery) (*dto.UserDTO, error)
}

type UpdateUserExecutor interface {
	Execute(ctx context.Context, cmd UpdateUserCommand) (*dto.UserDTO, error)
}

type DeactivateUserExecutor interface {
	Execute(ctx context.Context, cmd DeactivateUserCommand) error
}

type ListUsersExecutor interface {
	Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error)
}
