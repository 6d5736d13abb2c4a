package usecases

import (
	"context"

	"mainta/internal/application/user/dto"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

const minPasswordLength = 8

type RegisterUserCommand struct {
	Actor     authorization.Actor
	UserID    string
	Name      string
	Matricule string
	Email     string
	Password  string
	Role      string
	Service   string
}

type RegisterUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewRegisterUserUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing register user use case",
		"user_id", cmd.UserID,
		"role", cmd.Role,
		"actor", cmd.Actor.UserID)

	if !authorization.CanPerform(cmd.Actor, authorization.ActionManageUsers) {
		return nil, errors.NewForbiddenError("only management may register accounts")
	}
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to hash password")
	}

	u, err := user.NewUser(cmd.UserID, cmd.Name, hash, authorization.Role(cmd.Role), authorization.Service(cmd.Service))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Matricule != "" {
		u.SetMatricule(cmd.Matricule)
	}
	if cmd.Email != "" {
		u.SetEmail(cmd.Email)
	}

	if err := uc.userRepo.Save(ctx, u); err != nil {
		uc.logger.Errorw("failed to save user", "error", err, "user_id", cmd.UserID)
		return nil, err
	}

	uc.logger.Infow("user registered successfully", "user_id", u.UserID())

	result := dto.FromUser(u)
	return &result, nil
}

func (uc *RegisterUserUseCase) validateCommand(cmd RegisterUserCommand) error {
	if cmd.UserID == "" {
		return errors.NewValidationError("user ID is required")
	}
	if cmd.Name == "" {
		return errors.NewValidationError("name is required")
	}
	if len(cmd.Password) < minPasswordLength {
		return errors.NewValidationError("password must be at least 8 characters")
	}
	if !authorization.Role(cmd.Role).IsValid() {
		return errors.NewValidationError("invalid role")
	}
	if !authorization.Service(cmd.Service).IsValid() {
		return errors.NewValidationError("invalid service")
	}
	return nil
}
