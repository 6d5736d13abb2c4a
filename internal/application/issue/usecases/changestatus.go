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

type ChangeStatusCommand struct {
	Actor   authorization.Actor
	IssueID string
	Status  string
}

// ChangeStatusUseCase moves an assigned issue forward. Closing goes
// through the dedicated close use case because it requires a resolution.
type ChangeStatusUseCase struct {
	issueRepo       issue.Repository
	machineRepo     machine.Repository
	userRepo        user.Repository
	eventDispatcher events.Publisher
	logger          logger.Interface
}

func NewChangeStatusUseCase(
	issueRepo issue.Repository,
	machineRepo machine.Repository,
	userRepo user.Repository,
	eventDispatcher events.Publisher,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		issueRepo:       issueRepo,
		machineRepo:     machineRepo,
		userRepo:        userRepo,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.IssueDTO, error) {
	uc.logger.Infow("executing change status use case",
		"issue_id", cmd.IssueID,
		"status", cmd.Status,
		"actor", cmd.Actor.UserID)

	if cmd.IssueID == "" {
		return nil, errors.NewValidationError("issue ID is required")
	}
	if cmd.Actor.ID == 0 {
		return nil, errors.NewValidationError("actor is required")
	}

	target, err := vo.NewStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if target != vo.StatusInProgress {
		return nil, errors.NewValidationError(
			fmt.Sprintf("status can only be set to %s; use the close endpoint to close", vo.StatusInProgress))
	}

	if !authorization.CanPerform(cmd.Actor, authorization.ActionChangeStatus) {
		return nil, errors.NewForbiddenError("only maintenance staff may change issue status")
	}

	iss, err := uc.issueRepo.GetByPublicID(ctx, cmd.IssueID)
	if err != nil {
		uc.logger.Errorw("failed to find issue", "error", err, "issue_id", cmd.IssueID)
		return nil, err
	}

	if !authorization.CanTransitionIssue(cmd.Actor, iss.AssigneeID()) {
		uc.logger.Warnw("actor is not the assigned technician",
			"issue_id", cmd.IssueID,
			"actor", cmd.Actor.UserID)
		return nil, errors.NewForbiddenError("only the assigned technician may progress this issue")
	}

	expected := iss.Status()
	if err := iss.Start(); err != nil {
		if stderrors.Is(err, issue.ErrInvalidTransition) {
			return nil, errors.NewInvalidTransitionError(err.Error())
		}
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.issueRepo.UpdateFromStatus(ctx, iss, expected); err != nil {
		uc.logger.Warnw("failed to commit status change", "error", err, "issue_id", cmd.IssueID)
		return nil, err
	}

	uc.recordAutoNote(ctx, iss, cmd.Actor, target)

	resolver := newRefResolver(uc.machineRepo, uc.userRepo)
	refs, err := resolver.load(ctx, []*issue.Issue{iss})
	if err != nil {
		uc.logger.Errorw("failed to resolve issue references", "error", err)
		return nil, err
	}

	if err := uc.eventDispatcher.Publish(issue.NewUpdatedEvent(refs.snapshot(iss), cmd.Actor.UserID)); err != nil {
		uc.logger.Warnw("failed to dispatch event", "error", err, "issue_id", iss.PublicID())
	}

	uc.logger.Infow("issue status changed successfully",
		"issue_id", iss.PublicID(),
		"status", iss.Status())

	result := refs.toDTO(iss)
	return &result, nil
}

func (uc *ChangeStatusUseCase) recordAutoNote(ctx context.Context, iss *issue.Issue, actor authorization.Actor, status vo.Status) {
	note, err := issue.NewNote(iss.ID(), actor.ID, fmt.Sprintf("Status changed to %s", status))
	if err != nil {
		uc.logger.Warnw("failed to build status note", "error", err)
		return
	}
	if err := uc.issueRepo.SaveNote(ctx, note); err != nil {
		uc.logger.Warnw("failed to save status note", "error", err, "issue_id", iss.PublicID())
	}
}
