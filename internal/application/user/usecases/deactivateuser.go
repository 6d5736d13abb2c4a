package usecases

import (
	"context"

	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type DeactivateUserCommand struct {
	Actor  authorization.Actor
	UserID string
}

// DeactivateUserUseCase soft-deletes an account. The row stays so closed
// issues keep valid reporter and assignee references.
type DeactivateUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewDeactivateUserUseCase(userRepo user.Repository, logger logger.Interface) *DeactivateUserUseCase {
	return &DeactivateUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *DeactivateUserUseCase) Execute(ctx context.Context, cmd DeactivateUserCommand) error {
	uc.logger.Infow("executing deactivate user use case",
		"user_id", cmd.UserID,
		"actor", cmd.Actor.UserID)

	if cmd.UserID == "" {
		return errors.NewValidationError("user ID is required")
	}
	if !authorization.CanPerform(cmd.Actor, authorization.ActionManageUsers) {
		return errors.NewForbiddenError("only management may deactivate accounts")
	}
	if cmd.UserID == cmd.Actor.UserID {
		return errors.NewValidationError("cannot deactivate your own account")
	}

	u, err := uc.userRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to find user", "error", err, "user_id", cmd.UserID)
		return err
	}

	u.Deactivate()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to deactivate user", "error", err, "user_id", cmd.UserID)
		return err
	}

	uc.logger.Infow("user deactivated", "user_id", u.UserID())
	return nil
}
