package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"mainta/internal/domain/user"
	"mainta/internal/infrastructure/persistence/mappers"
	"mainta/internal/infrastructure/persistence/models"
	db "mainta/internal/shared/db"
)

type UserRepository struct {
	db      *gorm.DB
	mapper  mappers.UserMapper
	timeout time.Duration
}

func NewUserRepository(gormDB *gorm.DB, timeout time.Duration) *UserRepository {
	return &UserRepository{
		db:      gormDB,
		mapper:  mappers.NewUserMapper(),
		timeout: timeout,
	}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	model := r.mapper.ToModel(u)
	tx := db.FromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return wrapDBError(err, "failed to save user")
	}

	return u.SetID(model.ID)
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var model models.UserModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		return nil, wrapDBError(err, "user not found")
	}

	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*user.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var model models.UserModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, wrapDBError(err, "user not found")
	}

	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) GetByMatricule(ctx context.Context, matricule string) (*user.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var model models.UserModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("matricule = ?", matricule).First(&model).Error; err != nil {
		return nil, wrapDBError(err, "user not found")
	}

	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	model := r.mapper.ToModel(u)
	tx := db.FromContext(ctx, r.db)

	result := tx.
		Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"matricule":     model.Matricule,
			"name":          model.Name,
			"email":         model.Email,
			"password_hash": model.PasswordHash,
			"service":       model.Service,
			"role":          model.Role,
			"is_active":     model.IsActive,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		return wrapDBError(result.Error, "failed to update user")
	}

	return nil
}

func (r *UserRepository) List(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tx := db.FromContext(ctx, r.db)
	query := tx.Model(&models.UserModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "failed to count users")
	}

	query = query.Order("user_id ASC")
	if pageSize > 0 {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	var userModels []models.UserModel
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, wrapDBError(err, "failed to list users")
	}

	users := make([]*user.User, len(userModels))
	for i, model := range userModels {
		u, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		users[i] = u
	}

	return users, total, nil
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var userModels []models.UserModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("id IN ?", ids).Find(&userModels).Error; err != nil {
		return nil, wrapDBError(err, "failed to load users")
	}

	users := make([]*user.User, len(userModels))
	for i, model := range userModels {
		u, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		users[i] = u
	}

	return users, nil
}
