package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/infrastructure/persistence/mappers"
	"mainta/internal/infrastructure/persistence/models"
	"mainta/internal/shared/constants"
	db "mainta/internal/shared/db"
	apperrors "mainta/internal/shared/errors"
)

type IssueRepository struct {
	db      *gorm.DB
	mapper  mappers.IssueMapper
	timeout time.Duration
}

func NewIssueRepository(gormDB *gorm.DB, timeout time.Duration) *IssueRepository {
	return &IssueRepository{
		db:      gormDB,
		mapper:  mappers.NewIssueMapper(),
		timeout: timeout,
	}
}

func (r *IssueRepository) Save(ctx context.Context, iss *issue.Issue) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	model := r.mapper.ToModel(iss)
	tx := db.FromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return wrapDBError(err, "failed to save issue")
	}

	return iss.SetID(model.ID)
}

func (r *IssueRepository) GetByID(ctx context.Context, id uint) (*issue.Issue, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var model models.IssueModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		return nil, wrapDBError(err, "issue not found")
	}

	return r.mapper.ToDomain(&model)
}

func (r *IssueRepository) GetByPublicID(ctx context.Context, publicID string) (*issue.Issue, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var model models.IssueModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("public_id = ?", publicID).First(&model).Error; err != nil {
		return nil, wrapDBError(err, "issue not found")
	}

	return r.mapper.ToDomain(&model)
}

// UpdateFromStatus commits a transition only if the stored status still
// equals expected. A lost race leaves zero rows affected and surfaces as
// an invalid-transition error, never a silent overwrite.
func (r *IssueRepository) UpdateFromStatus(ctx context.Context, iss *issue.Issue, expected vo.Status) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	model := r.mapper.ToModel(iss)
	updates := map[string]interface{}{
		"status":      model.Status,
		"assignee_id": model.AssigneeID,
		"resolution":  model.Resolution,
		"accepted_at": model.AcceptedAt,
		"closed_at":   model.ClosedAt,
		"updated_at":  model.UpdatedAt,
	}

	tx := db.FromContext(ctx, r.db)
	result := tx.
		Model(&models.IssueModel{}).
		Where("id = ? AND status = ?", model.ID, expected.String()).
		Updates(updates)

	if result.Error != nil {
		return wrapDBError(result.Error, "failed to update issue")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewInvalidTransitionError(
			"issue was modified concurrently",
			fmt.Sprintf("status is no longer %s", expected),
		)
	}

	return nil
}

func (r *IssueRepository) List(ctx context.Context, filter issue.Filter) ([]*issue.Issue, int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tx := db.FromContext(ctx, r.db)
	query := tx.Model(&models.IssueModel{})

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.Urgency != nil {
		query = query.Where("urgency = ?", filter.Urgency.String())
	}
	if filter.MachineID != nil {
		query = query.Where("machine_id = ?", *filter.MachineID)
	}
	if filter.ReporterID != nil {
		query = query.Where("reporter_id = ?", *filter.ReporterID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Day != nil {
		dayStart := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, filter.Day.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)
		query = query.Where("created_at >= ? AND created_at < ?", dayStart.UnixMilli(), dayEnd.UnixMilli())
	}
	if filter.AcceptedFrom != nil {
		query = query.Where("accepted_at >= ?", filter.AcceptedFrom.UnixMilli())
	}
	if filter.AcceptedTo != nil {
		query = query.Where("accepted_at < ?", filter.AcceptedTo.UnixMilli())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "failed to count issues")
	}

	query = query.Order("created_at DESC")

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var issueModels []models.IssueModel
	if err := query.Find(&issueModels).Error; err != nil {
		return nil, 0, wrapDBError(err, "failed to list issues")
	}

	issues := make([]*issue.Issue, len(issueModels))
	for i, model := range issueModels {
		iss, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		issues[i] = iss
	}

	return issues, total, nil
}

// NextPublicID derives the next sequential identifier from the highest
// row ID. The unique index on public_id catches the rare concurrent
// collision, which surfaces as a conflict to retry.
func (r *IssueRepository) NextPublicID(ctx context.Context) (string, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var maxID int64
	tx := db.FromContext(ctx, r.db)
	if err := tx.
		Model(&models.IssueModel{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error; err != nil {
		return "", wrapDBError(err, "failed to reserve issue identifier")
	}

	return fmt.Sprintf("%s%03d", constants.IssueIDPrefix, maxID+1), nil
}

func (r *IssueRepository) SaveNote(ctx context.Context, note *issue.Note) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	model := r.mapper.NoteToModel(note)
	tx := db.FromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return wrapDBError(err, "failed to save note")
	}

	return note.SetID(model.ID)
}

func (r *IssueRepository) ListNotes(ctx context.Context, issueID uint) ([]*issue.Note, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var noteModels []models.NoteModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.
		Where("issue_id = ?", issueID).
		Order("created_at ASC").
		Find(&noteModels).Error; err != nil {
		return nil, wrapDBError(err, "failed to list notes")
	}

	notes := make([]*issue.Note, len(noteModels))
	for i, model := range noteModels {
		note, err := r.mapper.NoteToDomain(&model)
		if err != nil {
			return nil, err
		}
		notes[i] = note
	}

	return notes, nil
}

func (r *IssueRepository) CountByMachine(ctx context.Context, machineID uint) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	tx := db.FromContext(ctx, r.db)
	if err := tx.
		Model(&models.IssueModel{}).
		Where("machine_id = ?", machineID).
		Count(&count).Error; err != nil {
		return 0, wrapDBError(err, "failed to count issues for machine")
	}

	return count, nil
}
