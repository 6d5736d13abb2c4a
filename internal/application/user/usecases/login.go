package usecases

import (
	"context"
	"strings"

	"mainta/internal/application/user/dto"
	"mainta/internal/domain/user"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type LoginCommand struct {
	// Login is either the account's user ID or its matricule.
	Login    string
	Password string
}

type LoginResult struct {
	User         dto.UserDTO
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type LoginUseCase struct {
	userRepo   user.Repository
	hasher     PasswordHasher
	jwtService JWTService
	logger     logger.Interface
}

func NewLoginUseCase(userRepo user.Repository, hasher PasswordHasher, jwtService JWTService, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	login := strings.TrimSpace(cmd.Login)
	if login == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("login and password are required")
	}

	u, err := uc.findAccount(ctx, login)
	if err != nil {
		// Do not reveal whether the account exists.
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		uc.logger.Errorw("failed to look up account", "error", err)
		return nil, err
	}

	if !u.IsActive() {
		uc.logger.Warnw("login attempt on deactivated account", "user_id", u.UserID())
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("failed login attempt", "user_id", u.UserID())
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	pair, err := uc.jwtService.Generate(u.UserID(), u.Role(), u.Service())
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "error", err, "user_id", u.UserID())
		return nil, errors.NewInternalError("failed to issue tokens")
	}

	uc.logger.Infow("user logged in", "user_id", u.UserID())

	return &LoginResult{
		User:         dto.FromUser(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// findAccount tries the user ID first and falls back to the matricule,
// mirroring how badge numbers are used on the shop floor.
func (uc *LoginUseCase) findAccount(ctx context.Context, login string) (*user.User, error) {
	u, err := uc.userRepo.GetByUserID(ctx, login)
	if err == nil {
		return u, nil
	}
	if !errors.IsNotFoundError(err) {
		return nil, err
	}
	return uc.userRepo.GetByMatricule(ctx, login)
}
