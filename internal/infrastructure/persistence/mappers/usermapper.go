package mappers

import (
	"mainta/internal/domain/user"
	"mainta/internal/infrastructure/persistence/models"
	"mainta/internal/shared/authorization"
)

// UserMapper handles the conversion between User domain entities and persistence models.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (um *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		UserID:       u.UserID(),
		Matricule:    u.Matricule(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Service:      u.Service().String(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		CreatedAt:    u.CreatedAt().UnixMilli(),
		UpdatedAt:    u.UpdatedAt().UnixMilli(),
	}
}

func (um *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.UserID,
		model.Matricule,
		model.Name,
		model.Email,
		model.PasswordHash,
		authorization.Role(model.Role),
		authorization.Service(model.Service),
		model.IsActive,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
