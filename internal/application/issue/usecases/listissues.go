package usecases

import (
	"context"
	"strings"
	"time"

	"mainta/internal/application/issue/dto"
	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/domain/machine"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
	"mainta/internal/shared/utils"
)

type ListIssuesQuery struct {
	Actor     authorization.Actor
	Status    string
	Urgency   string
	MachineID string
	// Day filters on the creation date, formatted 2006-01-02.
	Day      string
	Page     int
	PageSize int
}

type ListIssuesResult struct {
	Items    []dto.IssueDTO
	Total    int64
	Page     int
	PageSize int
}

type ListIssuesUseCase struct {
	issueRepo   issue.Repository
	machineRepo machine.Repository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewListIssuesUseCase(
	issueRepo issue.Repository,
	machineRepo machine.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListIssuesUseCase {
	return &ListIssuesUseCase{
		issueRepo:   issueRepo,
		machineRepo: machineRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (uc *ListIssuesUseCase) Execute(ctx context.Context, query ListIssuesQuery) (*ListIssuesResult, error) {
	filter, err := uc.buildFilter(ctx, query)
	if err != nil {
		return nil, err
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)
	filter.Page = pagination.Page
	filter.PageSize = pagination.PageSize

	issues, total, err := uc.issueRepo.List(ctx, *filter)
	if err != nil {
		uc.logger.Errorw("failed to list issues", "error", err)
		return nil, err
	}

	resolver := newRefResolver(uc.machineRepo, uc.userRepo)
	refs, err := resolver.load(ctx, issues)
	if err != nil {
		return nil, err
	}

	items := make([]dto.IssueDTO, len(issues))
	for i, iss := range issues {
		items[i] = refs.toDTO(iss)
	}

	return &ListIssuesResult{
		Items:    items,
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}

func (uc *ListIssuesUseCase) buildFilter(ctx context.Context, query ListIssuesQuery) (*issue.Filter, error) {
	filter := &issue.Filter{}

	// Status accepts a single value or a comma-separated set; every
	// token must be a known status.
	if query.Status != "" {
		for _, token := range strings.Split(query.Status, ",") {
			status, err := vo.NewStatus(strings.TrimSpace(token))
			if err != nil {
				return nil, errors.NewValidationError(err.Error())
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if query.Urgency != "" {
		urgency, err := vo.NewUrgency(query.Urgency)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Urgency = &urgency
	}
	if query.MachineID != "" {
		mach, err := uc.machineRepo.GetByPublicID(ctx, query.MachineID)
		if err != nil {
			return nil, err
		}
		machineID := mach.ID()
		filter.MachineID = &machineID
	}
	if query.Day != "" {
		day, err := time.ParseInLocation("2006-01-02", query.Day, time.Local)
		if err != nil {
			return nil, errors.NewValidationError("day must be formatted as 2006-01-02")
		}
		filter.Day = &day
	}

	// Production staff without management roles only see their own
	// reports; the scope is narrowed silently rather than rejected.
	if !authorization.CanPerform(query.Actor, authorization.ActionViewAllIssues) {
		reporterID := query.Actor.ID
		filter.ReporterID = &reporterID
	}

	return filter, nil
}
