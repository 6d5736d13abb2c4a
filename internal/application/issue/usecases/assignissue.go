package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"mainta/internal/application/issue/dto"
	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/domain/machine"
	"mainta/internal/domain/shared/events"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type AssignIssueCommand struct {
	Actor   authorization.Actor
	IssueID string
}

type AssignIssueUseCase struct {
	issueRepo       issue.Repository
	machineRepo     machine.Repository
	userRepo        user.Repository
	eventDispatcher events.Publisher
	logger          logger.Interface
}

func NewAssignIssueUseCase(
	issueRepo issue.Repository,
	machineRepo machine.Repository,
	userRepo user.Repository,
	eventDispatcher events.Publisher,
	logger logger.Interface,
) *AssignIssueUseCase {
	return &AssignIssueUseCase{
		issueRepo:       issueRepo,
		machineRepo:     machineRepo,
		userRepo:        userRepo,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *AssignIssueUseCase) Execute(ctx context.Context, cmd AssignIssueCommand) (*dto.IssueDTO, error) {
	uc.logger.Infow("executing assign issue use case",
		"issue_id", cmd.IssueID,
		"technician", cmd.Actor.UserID)

	if cmd.IssueID == "" {
		return nil, errors.NewValidationError("issue ID is required")
	}
	if cmd.Actor.ID == 0 {
		return nil, errors.NewValidationError("actor is required")
	}

	if !authorization.CanPerform(cmd.Actor, authorization.ActionAssignIssue) {
		uc.logger.Warnw("actor may not accept issues",
			"user_id", cmd.Actor.UserID,
			"service", cmd.Actor.Service)
		return nil, errors.NewForbiddenError("only maintenance staff may accept issues")
	}

	iss, err := uc.issueRepo.GetByPublicID(ctx, cmd.IssueID)
	if err != nil {
		uc.logger.Errorw("failed to find issue", "error", err, "issue_id", cmd.IssueID)
		return nil, err
	}

	if err := iss.Assign(cmd.Actor.ID); err != nil {
		if stderrors.Is(err, issue.ErrInvalidTransition) || stderrors.Is(err, issue.ErrAlreadyAssigned) {
			return nil, errors.NewInvalidTransitionError(err.Error())
		}
		return nil, errors.NewValidationError(err.Error())
	}

	// Compare-and-swap on the reported status: a concurrent accept that
	// won the race leaves this update with zero rows and the caller gets
	// an invalid-transition error.
	if err := uc.issueRepo.UpdateFromStatus(ctx, iss, vo.StatusReported); err != nil {
		uc.logger.Warnw("failed to commit assignment", "error", err, "issue_id", cmd.IssueID)
		return nil, err
	}

	uc.recordAutoNote(ctx, iss, cmd.Actor)

	resolver := newRefResolver(uc.machineRepo, uc.userRepo)
	refs, err := resolver.load(ctx, []*issue.Issue{iss})
	if err != nil {
		uc.logger.Errorw("failed to resolve issue references", "error", err)
		return nil, err
	}

	if err := uc.eventDispatcher.Publish(issue.NewUpdatedEvent(refs.snapshot(iss), cmd.Actor.UserID)); err != nil {
		uc.logger.Warnw("failed to dispatch event", "error", err, "issue_id", iss.PublicID())
	}

	uc.logger.Infow("issue assigned successfully",
		"issue_id", iss.PublicID(),
		"technician", cmd.Actor.UserID)

	result := refs.toDTO(iss)
	return &result, nil
}

// recordAutoNote appends the audit trail entry for the acceptance. A
// failure is logged but never rolls back the committed transition.
func (uc *AssignIssueUseCase) recordAutoNote(ctx context.Context, iss *issue.Issue, actor authorization.Actor) {
	note, err := issue.NewNote(iss.ID(), actor.ID, fmt.Sprintf("Issue accepted and assigned to %s", actor.UserID))
	if err != nil {
		uc.logger.Warnw("failed to build acceptance note", "error", err)
		return
	}
	if err := uc.issueRepo.SaveNote(ctx, note); err != nil {
		uc.logger.Warnw("failed to save acceptance note", "error", err, "issue_id", iss.PublicID())
	}
}
