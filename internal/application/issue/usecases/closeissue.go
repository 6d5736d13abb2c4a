package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"mainta/internal/application/issue/dto"
	"mainta/internal/domain/issue"
	"mainta/internal/domain/machine"
	"mainta/internal/domain/shared/events"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type CloseIssueCommand struct {
	Actor      authorization.Actor
	IssueID    string
	Resolution string
}

type CloseIssueUseCase struct {
	issueRepo       issue.Repository
	machineRepo     machine.Repository
	userRepo        user.Repository
	eventDispatcher events.Publisher
	logger          logger.Interface
}

func NewCloseIssueUseCase(
	issueRepo issue.Repository,
	machineRepo machine.Repository,
	userRepo user.Repository,
	eventDispatcher events.Publisher,
	logger logger.Interface,
) *CloseIssueUseCase {
	return &CloseIssueUseCase{
		issueRepo:       issueRepo,
		machineRepo:     machineRepo,
		userRepo:        userRepo,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *CloseIssueUseCase) Execute(ctx context.Context, cmd CloseIssueCommand) (*dto.IssueDTO, error) {
	uc.logger.Infow("executing close issue use case",
		"issue_id", cmd.IssueID,
		"actor", cmd.Actor.UserID)

	if cmd.IssueID == "" {
		return nil, errors.NewValidationError("issue ID is required")
	}
	if cmd.Actor.ID == 0 {
		return nil, errors.NewValidationError("actor is required")
	}

	if !authorization.CanPerform(cmd.Actor, authorization.ActionCloseIssue) {
		return nil, errors.NewForbiddenError("only maintenance staff may close issues")
	}

	iss, err := uc.issueRepo.GetByPublicID(ctx, cmd.IssueID)
	if err != nil {
		uc.logger.Errorw("failed to find issue", "error", err, "issue_id", cmd.IssueID)
		return nil, err
	}

	// Technician-only policy: there is no manager override for closing.
	if !authorization.CanTransitionIssue(cmd.Actor, iss.AssigneeID()) {
		uc.logger.Warnw("actor is not the assigned technician",
			"issue_id", cmd.IssueID,
			"actor", cmd.Actor.UserID)
		return nil, errors.NewForbiddenError("only the assigned technician may close this issue")
	}

	expected := iss.Status()
	if err := iss.Close(sanitizeText(cmd.Resolution)); err != nil {
		switch {
		case stderrors.Is(err, issue.ErrEmptyResolution):
			return nil, errors.NewValidationError("resolution text is required")
		case stderrors.Is(err, issue.ErrInvalidTransition), stderrors.Is(err, issue.ErrClosed):
			return nil, errors.NewInvalidTransitionError(err.Error())
		default:
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.issueRepo.UpdateFromStatus(ctx, iss, expected); err != nil {
		uc.logger.Warnw("failed to commit closure", "error", err, "issue_id", cmd.IssueID)
		return nil, err
	}

	uc.recordAutoNote(ctx, iss, cmd.Actor)

	resolver := newRefResolver(uc.machineRepo, uc.userRepo)
	refs, err := resolver.load(ctx, []*issue.Issue{iss})
	if err != nil {
		uc.logger.Errorw("failed to resolve issue references", "error", err)
		return nil, err
	}

	if err := uc.eventDispatcher.Publish(issue.NewClosedEvent(refs.snapshot(iss), cmd.Actor.UserID)); err != nil {
		uc.logger.Warnw("failed to dispatch event", "error", err, "issue_id", iss.PublicID())
	}

	uc.logger.Infow("issue closed successfully",
		"issue_id", iss.PublicID())

	result := refs.toDTO(iss)
	return &result, nil
}

func (uc *CloseIssueUseCase) recordAutoNote(ctx context.Context, iss *issue.Issue, actor authorization.Actor) {
	resolution := ""
	if iss.Resolution() != nil {
		resolution = *iss.Resolution()
	}
	note, err := issue.NewNote(iss.ID(), actor.ID, fmt.Sprintf("Issue closed. Resolution: %s", resolution))
	if err != nil {
		uc.logger.Warnw("failed to build closure note", "error", err)
		return
	}
	if err := uc.issueRepo.SaveNote(ctx, note); err != nil {
		uc.logger.Warnw("failed to save closure note", "error", err, "issue_id", iss.PublicID())
	}
}
