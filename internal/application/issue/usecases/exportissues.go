package usecases

import (
	"context"
	"io"

	"mainta/internal/domain/issue"
	"mainta/internal/domain/machine"
	"mainta/internal/domain/user"
	"mainta/internal/infrastructure/export"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type ExportIssuesQuery struct {
	Actor     authorization.Actor
	Status    string
	Urgency   string
	MachineID string
	Day       string
}

// ExportIssuesUseCase streams the filtered issue list as an xlsx
// workbook. The export is never paginated.
type ExportIssuesUseCase struct {
	issueRepo   issue.Repository
	machineRepo machine.Repository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewExportIssuesUseCase(
	issueRepo issue.Repository,
	machineRepo machine.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *ExportIssuesUseCase {
	return &ExportIssuesUseCase{
		issueRepo:   issueRepo,
		machineRepo: machineRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (uc *ExportIssuesUseCase) Execute(ctx context.Context, query ExportIssuesQuery, w io.Writer) error {
	if !authorization.CanPerform(query.Actor, authorization.ActionViewAllIssues) {
		return errors.NewForbiddenError("not allowed to export issues")
	}

	list := NewListIssuesUseCase(uc.issueRepo, uc.machineRepo, uc.userRepo, uc.logger)
	filter, err := list.buildFilter(ctx, ListIssuesQuery{
		Actor:     query.Actor,
		Status:    query.Status,
		Urgency:   query.Urgency,
		MachineID: query.MachineID,
		Day:       query.Day,
	})
	if err != nil {
		return err
	}

	issues, _, err := uc.issueRepo.List(ctx, *filter)
	if err != nil {
		uc.logger.Errorw("failed to list issues for export", "error", err)
		return err
	}

	resolver := newRefResolver(uc.machineRepo, uc.userRepo)
	refs, err := resolver.load(ctx, issues)
	if err != nil {
		return err
	}

	rows := make([]export.IssueRow, len(issues))
	for i, iss := range issues {
		d := refs.toDTO(iss)
		row := export.IssueRow{
			ID:          d.ID,
			Machine:     d.Machine.Name,
			Description: d.Description,
			Urgency:     d.Urgency,
			Status:      d.Status,
			ReportedBy:  d.ReportedBy.Name,
			CreatedAt:   d.CreatedAt,
			AcceptedAt:  d.AcceptedAt,
			ClosedAt:    d.ClosedAt,
		}
		if d.AssignedTo != nil {
			row.AssignedTo = d.AssignedTo.Name
		}
		if d.Resolution != nil {
			row.Resolution = *d.Resolution
		}
		rows[i] = row
	}

	if err := export.WriteIssuesXLSX(w, rows); err != nil {
		uc.logger.Errorw("failed to write issue export", "error", err)
		return errors.NewInternalError("failed to generate export")
	}

	uc.logger.Infow("issue export generated", "rows", len(rows))
	return nil
}
