package usecases

import (
	"context"

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

type CreateIssueCommand struct {
	Actor       authorization.Actor
	MachineID   string
	Description string
	Urgency     string
}

type CreateIssueUseCase struct {
	issueRepo       issue.Repository
	machineRepo     machine.Repository
	userRepo        user.Repository
	eventDispatcher events.Publisher
	logger          logger.Interface
}

func NewCreateIssueUseCase(
	issueRepo issue.Repository,
	machineRepo machine.Repository,
	userRepo user.Repository,
	eventDispatcher events.Publisher,
	logger logger.Interface,
) *CreateIssueUseCase {
	return &CreateIssueUseCase{
		issueRepo:       issueRepo,
		machineRepo:     machineRepo,
		userRepo:        userRepo,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *CreateIssueUseCase) Execute(ctx context.Context, cmd CreateIssueCommand) (*dto.IssueDTO, error) {
	uc.logger.Infow("executing create issue use case",
		"machine_id", cmd.MachineID,
		"urgency", cmd.Urgency,
		"reporter", cmd.Actor.UserID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create issue command", "error", err)
		return nil, err
	}

	if !authorization.CanPerform(cmd.Actor, authorization.ActionCreateIssue) {
		uc.logger.Warnw("actor may not create issues",
			"user_id", cmd.Actor.UserID,
			"role", cmd.Actor.Role,
			"service", cmd.Actor.Service)
		return nil, errors.NewForbiddenError("not allowed to create issues")
	}

	urgency, err := vo.NewUrgency(cmd.Urgency)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	mach, err := uc.machineRepo.GetByPublicID(ctx, cmd.MachineID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_id", cmd.MachineID)
		return nil, err
	}

	iss, err := issue.NewIssue(mach.ID(), cmd.Actor.ID, sanitizeText(cmd.Description), urgency)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	publicID, err := uc.issueRepo.NextPublicID(ctx)
	if err != nil {
		uc.logger.Errorw("failed to reserve issue identifier", "error", err)
		return nil, err
	}
	if err := iss.SetPublicID(publicID); err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	if err := uc.issueRepo.Save(ctx, iss); err != nil {
		uc.logger.Errorw("failed to save issue", "error", err)
		return nil, err
	}

	resolver := newRefResolver(uc.machineRepo, uc.userRepo)
	refs, err := resolver.load(ctx, []*issue.Issue{iss})
	if err != nil {
		uc.logger.Errorw("failed to resolve issue references", "error", err)
		return nil, err
	}

	if err := uc.eventDispatcher.Publish(issue.NewCreatedEvent(refs.snapshot(iss))); err != nil {
		uc.logger.Warnw("failed to dispatch event", "error", err, "issue_id", iss.PublicID())
	}

	uc.logger.Infow("issue created successfully",
		"issue_id", iss.PublicID(),
		"machine_id", cmd.MachineID)

	result := refs.toDTO(iss)
	return &result, nil
}

func (uc *CreateIssueUseCase) validateCommand(cmd CreateIssueCommand) error {
	if cmd.Actor.ID == 0 {
		return errors.NewValidationError("actor is required")
	}
	if cmd.MachineID == "" {
		return errors.NewValidationError("machine ID is required")
	}
	if cmd.Description == "" {
		return errors.NewValidationError("description is required")
	}
	if cmd.Urgency == "" {
		return errors.NewValidationError("urgency is required")
	}
	return nil
}
