package usecases

import (
	"context"

	"mainta/internal/application/user/dto"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

// UpdateUserCommand carries partial updates; nil pointers leave the field
// untouched.
type UpdateUserCommand struct {
	Actor     authorization.Actor
	UserID    string
	Name      *string
	Matricule *string
	Email     *string
	Role      *string
	Service   *string
	Password  *string
}

type UpdateUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewUpdateUserUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing update user use case",
		"user_id", cmd.UserID,
		"actor", cmd.Actor.UserID)

	if cmd.UserID == "" {
		return nil, errors.NewValidationError("user ID is required")
	}
	if !authorization.CanPerform(cmd.Actor, authorization.ActionManageUsers) {
		return nil, errors.NewForbiddenError("only management may update accounts")
	}

	u, err := uc.userRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to find user", "error", err, "user_id", cmd.UserID)
		return nil, err
	}

	if cmd.Name != nil {
		if err := u.Rename(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Matricule != nil {
		u.SetMatricule(*cmd.Matricule)
	}
	if cmd.Email != nil {
		u.SetEmail(*cmd.Email)
	}
	if cmd.Role != nil {
		if err := u.ChangeRole(authorization.Role(*cmd.Role)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Service != nil {
		if err := u.ChangeService(authorization.Service(*cmd.Service)); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Password != nil {
		if len(*cmd.Password) < minPasswordLength {
			return nil, errors.NewValidationError("password must be at least 8 characters")
		}
		hash, err := uc.hasher.Hash(*cmd.Password)
		if err != nil {
			uc.logger.Errorw("failed to hash password", "error", err)
			return nil, errors.NewInternalError("failed to hash password")
		}
		if err := u.ChangePasswordHash(hash); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "error", err, "user_id", cmd.UserID)
		return nil, err
	}

	uc.logger.Infow("user updated successfully", "user_id", u.UserID())

	result := dto.FromUser(u)
	return &result, nil
}
