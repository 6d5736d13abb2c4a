package usecases

import (
	"context"

	"mainta/internal/application/issue/dto"
	"mainta/internal/domain/issue"
	"mainta/internal/domain/machine"
	"mainta/internal/domain/shared/events"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type AddNoteCommand struct {
	Actor   authorization.Actor
	IssueID string
	Text    string
}

// AddNoteUseCase appends a progress note. Notes stay open after closure,
// so this is the one mutation allowed on a closed issue.
type AddNoteUseCase struct {
	issueRepo       issue.Repository
	machineRepo     machine.Repository
	userRepo        user.Repository
	eventDispatcher events.Publisher
	logger          logger.Interface
}

func NewAddNoteUseCase(
	issueRepo issue.Repository,
	machineRepo machine.Repository,
	userRepo user.Repository,
	eventDispatcher events.Publisher,
	logger logger.Interface,
) *AddNoteUseCase {
	return &AddNoteUseCase{
		issueRepo:       issueRepo,
		machineRepo:     machineRepo,
		userRepo:        userRepo,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *AddNoteUseCase) Execute(ctx context.Context, cmd AddNoteCommand) (*dto.NoteDTO, error) {
	uc.logger.Infow("executing add note use case",
		"issue_id", cmd.IssueID,
		"author", cmd.Actor.UserID)

	if cmd.IssueID == "" {
		return nil, errors.NewValidationError("issue ID is required")
	}
	if cmd.Actor.ID == 0 {
		return nil, errors.NewValidationError("actor is required")
	}
	if !authorization.CanPerform(cmd.Actor, authorization.ActionAddNote) {
		return nil, errors.NewForbiddenError("not allowed to add notes")
	}

	iss, err := uc.issueRepo.GetByPublicID(ctx, cmd.IssueID)
	if err != nil {
		uc.logger.Errorw("failed to find issue", "error", err, "issue_id", cmd.IssueID)
		return nil, err
	}

	if !authorization.CanViewIssue(cmd.Actor, iss.ReporterID(), iss.AssigneeID()) {
		return nil, errors.NewForbiddenError("not allowed to access this issue")
	}

	note, err := issue.NewNote(iss.ID(), cmd.Actor.ID, sanitizeText(cmd.Text))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.issueRepo.SaveNote(ctx, note); err != nil {
		uc.logger.Errorw("failed to save note", "error", err, "issue_id", cmd.IssueID)
		return nil, err
	}

	resolver := newRefResolver(uc.machineRepo, uc.userRepo)
	refs, err := resolver.load(ctx, []*issue.Issue{iss}, cmd.Actor.ID)
	if err != nil {
		uc.logger.Errorw("failed to resolve issue references", "error", err)
		return nil, err
	}

	noteDTO := refs.noteToDTO(iss.PublicID(), note)

	event := issue.NewNoteAddedEvent(refs.snapshot(iss), issue.NoteSnapshot{
		ID:        note.ID(),
		IssueID:   iss.PublicID(),
		Author:    cmd.Actor.UserID,
		Text:      note.Text(),
		CreatedAt: note.CreatedAt(),
	})
	if err := uc.eventDispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to dispatch event", "error", err, "issue_id", iss.PublicID())
	}

	uc.logger.Infow("note added successfully",
		"issue_id", iss.PublicID(),
		"note_id", note.ID())

	return &noteDTO, nil
}
