package usecases

import (
	"context"

	"mainta/internal/application/issue/dto"
	"mainta/internal/domain/issue"
	"mainta/internal/domain/machine"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type GetIssueQuery struct {
	Actor   authorization.Actor
	IssueID string
}

type GetIssueUseCase struct {
	issueRepo   issue.Repository
	machineRepo machine.Repository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewGetIssueUseCase(
	issueRepo issue.Repository,
	machineRepo machine.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *GetIssueUseCase {
	return &GetIssueUseCase{
		issueRepo:   issueRepo,
		machineRepo: machineRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (uc *GetIssueUseCase) Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error) {
	if query.IssueID == "" {
		return nil, errors.NewValidationError("issue ID is required")
	}

	iss, err := uc.issueRepo.GetByPublicID(ctx, query.IssueID)
	if err != nil {
		return nil, err
	}

	if !authorization.CanViewIssue(query.Actor, iss.ReporterID(), iss.AssigneeID()) {
		uc.logger.Warnw("actor may not view issue",
			"issue_id", query.IssueID,
			"actor", query.Actor.UserID)
		return nil, errors.NewForbiddenError("not allowed to access this issue")
	}

	notes, err := uc.issueRepo.ListNotes(ctx, iss.ID())
	if err != nil {
		return nil, err
	}

	noteAuthorIDs := make([]uint, 0, len(notes))
	for _, note := range notes {
		noteAuthorIDs = append(noteAuthorIDs, note.AuthorID())
	}

	resolver := newRefResolver(uc.machineRepo, uc.userRepo)
	refs, err := resolver.load(ctx, []*issue.Issue{iss}, noteAuthorIDs...)
	if err != nil {
		return nil, err
	}

	result := refs.toDTO(iss)
	result.Notes = make([]dto.NoteDTO, len(notes))
	for i, note := range notes {
		result.Notes[i] = refs.noteToDTO(iss.PublicID(), note)
	}

	return &result, nil
}
