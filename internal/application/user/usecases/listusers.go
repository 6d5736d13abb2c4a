package usecases

import (
	"context"

	"mainta/internal/application/user/dto"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
	"mainta/internal/shared/utils"
)

type ListUsersQuery struct {
	Actor    authorization.Actor
	Page     int
	PageSize int
}

type ListUsersResult struct {
	Items    []dto.UserDTO
	Total    int64
	Page     int
	PageSize int
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	if !authorization.CanPerform(query.Actor, authorization.ActionManageUsers) {
		return nil, errors.NewForbiddenError("only management may list accounts")
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	users, total, err := uc.userRepo.List(ctx, pagination.Page, pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, err
	}

	items := make([]dto.UserDTO, len(users))
	for i, u := range users {
		items[i] = dto.FromUser(u)
	}

	return &ListUsersResult{
		Items:    items,
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
