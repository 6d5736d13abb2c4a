package usecases

import (
	"context"

	"mainta/internal/application/user/dto"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type GetUserQuery struct {
	Actor  authorization.Actor
	UserID string
}

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo, logger: logger}
}

// Execute returns a single account. Accounts are visible to management
// and to their own holder.
func (uc *GetUserUseCase) Execute(ctx context.Context, query GetUserQuery) (*dto.UserDTO, error) {
	if !authorization.CanPerform(query.Actor, authorization.ActionManageUsers) &&
		query.Actor.UserID != query.UserID {
		return nil, errors.NewForbiddenError("not allowed to view this user")
	}

	u, err := uc.userRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	result := dto.FromUser(u)
	return &result, nil
}
