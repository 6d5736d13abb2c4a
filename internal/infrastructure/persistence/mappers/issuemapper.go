package mappers

import (
	"time"

	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/infrastructure/persistence/models"
)

// IssueMapper handles the conversion between Issue domain entities and persistence models.
type IssueMapper interface {
	ToModel(iss *issue.Issue) *models.IssueModel
	ToDomain(model *models.IssueModel) (*issue.Issue, error)
	NoteToModel(note *issue.Note) *models.NoteModel
	NoteToDomain(model *models.NoteModel) (*issue.Note, error)
}

type IssueMapperImpl struct{}

func NewIssueMapper() IssueMapper {
	return &IssueMapperImpl{}
}

func (m *IssueMapperImpl) ToModel(iss *issue.Issue) *models.IssueModel {
	model := &models.IssueModel{
		ID:          iss.ID(),
		PublicID:    iss.PublicID(),
		MachineID:   iss.MachineID(),
		ReporterID:  iss.ReporterID(),
		Description: iss.Description(),
		Urgency:     iss.Urgency().String(),
		Status:      iss.Status().String(),
		AssigneeID:  iss.AssigneeID(),
		Resolution:  iss.Resolution(),
		CreatedAt:   iss.CreatedAt().UnixMilli(),
		UpdatedAt:   iss.UpdatedAt().UnixMilli(),
	}

	if iss.AcceptedAt() != nil {
		accepted := iss.AcceptedAt().UnixMilli()
		model.AcceptedAt = &accepted
	}
	if iss.ClosedAt() != nil {
		closed := iss.ClosedAt().UnixMilli()
		model.ClosedAt = &closed
	}

	return model
}

func (m *IssueMapperImpl) ToDomain(model *models.IssueModel) (*issue.Issue, error) {
	urgency, err := vo.NewUrgency(model.Urgency)
	if err != nil {
		return nil, err
	}
	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, err
	}

	var acceptedAt, closedAt *time.Time
	if model.AcceptedAt != nil {
		t := millisToTime(*model.AcceptedAt)
		acceptedAt = &t
	}
	if model.ClosedAt != nil {
		t := millisToTime(*model.ClosedAt)
		closedAt = &t
	}

	return issue.ReconstructIssue(
		model.ID,
		model.PublicID,
		model.MachineID,
		model.ReporterID,
		model.Description,
		urgency,
		status,
		model.AssigneeID,
		model.Resolution,
		millisToTime(model.CreatedAt),
		acceptedAt,
		closedAt,
		millisToTime(model.UpdatedAt),
	)
}

func (m *IssueMapperImpl) NoteToModel(note *issue.Note) *models.NoteModel {
	return &models.NoteModel{
		ID:        note.ID(),
		IssueID:   note.IssueID(),
		AuthorID:  note.AuthorID(),
		Text:      note.Text(),
		CreatedAt: note.CreatedAt().UnixMilli(),
	}
}

func (m *IssueMapperImpl) NoteToDomain(model *models.NoteModel) (*issue.Note, error) {
	return issue.ReconstructNote(
		model.ID,
		model.IssueID,
		model.AuthorID,
		model.Text,
		millisToTime(model.CreatedAt),
	)
}

func millisToTime(millis int64) time.Time {
	return time.UnixMilli(millis)
}
