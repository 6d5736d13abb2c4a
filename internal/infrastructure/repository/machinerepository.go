package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mainta/internal/domain/machine"
	"mainta/internal/infrastructure/persistence/mappers"
	"mainta/internal/infrastructure/persistence/models"
	"mainta/internal/shared/constants"
	db "mainta/internal/shared/db"
	apperrors "mainta/internal/shared/errors"
)

type MachineRepository struct {
	db      *gorm.DB
	mapper  mappers.MachineMapper
	timeout time.Duration
}

func NewMachineRepository(gormDB *gorm.DB, timeout time.Duration) *MachineRepository {
	return &MachineRepository{
		db:      gormDB,
		mapper:  mappers.NewMachineMapper(),
		timeout: timeout,
	}
}

func (r *MachineRepository) Save(ctx context.Context, m *machine.Machine) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	model := r.mapper.ToModel(m)
	tx := db.FromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return wrapDBError(err, "failed to save machine")
	}

	return m.SetID(model.ID)
}

func (r *MachineRepository) GetByID(ctx context.Context, id uint) (*machine.Machine, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var model models.MachineModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		return nil, wrapDBError(err, "machine not found")
	}

	return r.mapper.ToDomain(&model)
}

func (r *MachineRepository) GetByPublicID(ctx context.Context, publicID string) (*machine.Machine, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var model models.MachineModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("public_id = ?", publicID).First(&model).Error; err != nil {
		return nil, wrapDBError(err, "machine not found")
	}

	return r.mapper.ToDomain(&model)
}

func (r *MachineRepository) Update(ctx context.Context, m *machine.Machine) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	model := r.mapper.ToModel(m)
	tx := db.FromContext(ctx, r.db)

	result := tx.
		Model(&models.MachineModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"location":   model.Location,
			"status":     model.Status,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return wrapDBError(result.Error, "failed to update machine")
	}

	return nil
}

// Delete removes a machine, re-checking inside the transaction that no
// issue still references it. The caller's pre-check cannot rule out a
// report racing in between check and delete.
func (r *MachineRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	err := db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		tx := db.FromContext(txCtx, r.db)

		var referenced int64
		if err := tx.Model(&models.IssueModel{}).Where("machine_id = ?", id).Count(&referenced).Error; err != nil {
			return wrapDBError(err, "failed to check machine references")
		}
		if referenced > 0 {
			return apperrors.NewConflictError("machine has issue history and cannot be deleted")
		}

		result := tx.Delete(&models.MachineModel{}, id)
		if result.Error != nil {
			return wrapDBError(result.Error, "failed to delete machine")
		}
		if result.RowsAffected == 0 {
			return apperrors.NewNotFoundError("machine not found")
		}
		return nil
	})

	return err
}

func (r *MachineRepository) List(ctx context.Context, page, pageSize int) ([]*machine.Machine, int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tx := db.FromContext(ctx, r.db)
	query := tx.Model(&models.MachineModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "failed to count machines")
	}

	query = query.Order("public_id ASC")
	if pageSize > 0 {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	var machineModels []models.MachineModel
	if err := query.Find(&machineModels).Error; err != nil {
		return nil, 0, wrapDBError(err, "failed to list machines")
	}

	machines := make([]*machine.Machine, len(machineModels))
	for i, model := range machineModels {
		m, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		machines[i] = m
	}

	return machines, total, nil
}

func (r *MachineRepository) ListByIDs(ctx context.Context, ids []uint) ([]*machine.Machine, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var machineModels []models.MachineModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("id IN ?", ids).Find(&machineModels).Error; err != nil {
		return nil, wrapDBError(err, "failed to load machines")
	}

	machines := make([]*machine.Machine, len(machineModels))
	for i, model := range machineModels {
		m, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		machines[i] = m
	}

	return machines, nil
}

func (r *MachineRepository) NextPublicID(ctx context.Context) (string, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var maxID int64
	tx := db.FromContext(ctx, r.db)
	if err := tx.
		Model(&models.MachineModel{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error; err != nil {
		return "", wrapDBError(err, "failed to reserve machine identifier")
	}

	return fmt.Sprintf("%s%03d", constants.MachineIDPrefix, maxID+1), nil
}
