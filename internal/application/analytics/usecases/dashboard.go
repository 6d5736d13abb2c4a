// Package usecases computes reporting aggregates over the issue history.
// All figures are derived on demand from the repository; nothing is
// precomputed or cached.
package usecases

import (
	"context"
	"math"
	"time"

	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type DashboardQuery struct {
	Actor authorization.Actor
}

type DashboardResult struct {
	Total        int64            `json:"total"`
	Open         int64            `json:"open"`
	HighPriority int64            `json:"high_priority"`
	IssuesToday  int64            `json:"issues_today"`
	// AvgResolutionHours is nil until at least one issue has been closed.
	AvgResolutionHours *float64         `json:"avg_resolution_hours"`
	ByStatus           map[string]int64 `json:"by_status"`
	ByUrgency          map[string]int64 `json:"by_urgency"`
}

type DashboardUseCase struct {
	issueRepo issue.Repository
	logger    logger.Interface
}

func NewDashboardUseCase(issueRepo issue.Repository, logger logger.Interface) *DashboardUseCase {
	return &DashboardUseCase{issueRepo: issueRepo, logger: logger}
}

func (uc *DashboardUseCase) Execute(ctx context.Context, query DashboardQuery) (*DashboardResult, error) {
	if !authorization.CanPerform(query.Actor, authorization.ActionViewAnalytics) {
		return nil, errors.NewForbiddenError("not allowed to view analytics")
	}

	issues, _, err := uc.issueRepo.List(ctx, issue.Filter{})
	if err != nil {
		uc.logger.Errorw("failed to load issues for dashboard", "error", err)
		return nil, err
	}

	result := &DashboardResult{
		ByStatus:  make(map[string]int64, len(vo.AllStatuses())),
		ByUrgency: make(map[string]int64, len(vo.AllUrgencies())),
	}
	// Zero-fill so absent buckets still appear in the payload.
	for _, s := range vo.AllStatuses() {
		result.ByStatus[s.String()] = 0
	}
	for _, u := range vo.AllUrgencies() {
		result.ByUrgency[u.String()] = 0
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var resolutionSum time.Duration
	var resolutionSamples int64

	for _, iss := range issues {
		result.Total++
		result.ByStatus[iss.Status().String()]++
		result.ByUrgency[iss.Urgency().String()]++

		if !iss.Status().IsClosed() {
			result.Open++
			if iss.Urgency().IsHigh() {
				result.HighPriority++
			}
		}
		if !iss.CreatedAt().Before(todayStart) {
			result.IssuesToday++
		}
		if d, ok := iss.ResolutionTime(); ok {
			resolutionSum += d
			resolutionSamples++
		}
	}

	if resolutionSamples > 0 {
		hours := roundTo(resolutionSum.Minutes()/float64(resolutionSamples)/60, 1)
		result.AvgResolutionHours = &hours
	}

	return result, nil
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
