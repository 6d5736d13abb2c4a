package usecases

import (
	"context"
	"sort"
	"time"

	"mainta/internal/domain/issue"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type ByTechnicianQuery struct {
	Actor authorization.Actor
}

type TechnicianStats struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Closed int64  `json:"closed"`
	// AvgReactionHours is nil for technicians without an accepted issue
	// in the current month.
	AvgReactionHours *float64 `json:"avg_reaction_hours"`
}

type ByTechnicianResult struct {
	// Month is the calendar month the figures cover, formatted 2006-01.
	Month       string            `json:"month"`
	Technicians []TechnicianStats `json:"technicians"`
}

// ByTechnicianUseCase reports per-technician workload for the current
// calendar month, scoped to issues accepted within it.
type ByTechnicianUseCase struct {
	issueRepo issue.Repository
	userRepo  user.Repository
	logger    logger.Interface
}

func NewByTechnicianUseCase(issueRepo issue.Repository, userRepo user.Repository, logger logger.Interface) *ByTechnicianUseCase {
	return &ByTechnicianUseCase{issueRepo: issueRepo, userRepo: userRepo, logger: logger}
}

func (uc *ByTechnicianUseCase) Execute(ctx context.Context, query ByTechnicianQuery) (*ByTechnicianResult, error) {
	if !authorization.CanPerform(query.Actor, authorization.ActionViewAnalytics) {
		return nil, errors.NewForbiddenError("not allowed to view analytics")
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	issues, _, err := uc.issueRepo.List(ctx, issue.Filter{
		AcceptedFrom: &monthStart,
		AcceptedTo:   &monthEnd,
	})
	if err != nil {
		uc.logger.Errorw("failed to load issues for technician stats", "error", err)
		return nil, err
	}

	type bucket struct {
		closed      int64
		reactionSum time.Duration
		samples     int64
	}
	buckets := make(map[uint]*bucket)
	for _, iss := range issues {
		if iss.AssigneeID() == nil {
			continue
		}
		b, ok := buckets[*iss.AssigneeID()]
		if !ok {
			b = &bucket{}
			buckets[*iss.AssigneeID()] = b
		}
		if iss.Status().IsClosed() {
			b.closed++
		}
		if d, ok := iss.ReactionTime(); ok {
			b.reactionSum += d
			b.samples++
		}
	}

	users, _, err := uc.userRepo.List(ctx, 0, 0)
	if err != nil {
		uc.logger.Errorw("failed to load users for technician stats", "error", err)
		return nil, err
	}

	stats := make([]TechnicianStats, 0, len(users))
	for _, u := range users {
		if u.Service() != authorization.ServiceMaintenance || !u.IsActive() {
			continue
		}
		entry := TechnicianStats{UserID: u.UserID(), Name: u.Name()}
		if b, ok := buckets[u.ID()]; ok {
			entry.Closed = b.closed
			if b.samples > 0 {
				hours := roundTo(b.reactionSum.Minutes()/float64(b.samples)/60, 2)
				entry.AvgReactionHours = &hours
			}
		}
		stats = append(stats, entry)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Closed != stats[j].Closed {
			return stats[i].Closed > stats[j].Closed
		}
		return stats[i].UserID < stats[j].UserID
	})

	return &ByTechnicianResult{
		Month:       monthStart.Format("2006-01"),
		Technicians: stats,
	}, nil
}
