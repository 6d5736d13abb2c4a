package usecases

import (
	"context"
	"sort"

	"mainta/internal/domain/issue"
	"mainta/internal/domain/machine"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type ByMachineQuery struct {
	Actor authorization.Actor
}

type MachineStats struct {
	MachineID    string `json:"machine_id"`
	MachineName  string `json:"machine_name"`
	Total        int64  `json:"total"`
	Closed       int64  `json:"closed"`
	HighPriority int64  `json:"high_priority"`
}

type ByMachineResult struct {
	Machines []MachineStats `json:"machines"`
}

type ByMachineUseCase struct {
	issueRepo   issue.Repository
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewByMachineUseCase(issueRepo issue.Repository, machineRepo machine.Repository, logger logger.Interface) *ByMachineUseCase {
	return &ByMachineUseCase{issueRepo: issueRepo, machineRepo: machineRepo, logger: logger}
}

func (uc *ByMachineUseCase) Execute(ctx context.Context, query ByMachineQuery) (*ByMachineResult, error) {
	if !authorization.CanPerform(query.Actor, authorization.ActionViewAnalytics) {
		return nil, errors.NewForbiddenError("not allowed to view analytics")
	}

	issues, _, err := uc.issueRepo.List(ctx, issue.Filter{})
	if err != nil {
		uc.logger.Errorw("failed to load issues for machine stats", "error", err)
		return nil, err
	}

	type bucket struct {
		total, closed, high int64
	}
	buckets := make(map[uint]*bucket)
	for _, iss := range issues {
		b, ok := buckets[iss.MachineID()]
		if !ok {
			b = &bucket{}
			buckets[iss.MachineID()] = b
		}
		b.total++
		if iss.Status().IsClosed() {
			b.closed++
		}
		if iss.Urgency().IsHigh() {
			b.high++
		}
	}

	machineIDs := make([]uint, 0, len(buckets))
	for id := range buckets {
		machineIDs = append(machineIDs, id)
	}
	machines, err := uc.machineRepo.ListByIDs(ctx, machineIDs)
	if err != nil {
		uc.logger.Errorw("failed to load machines for machine stats", "error", err)
		return nil, err
	}

	stats := make([]MachineStats, 0, len(machines))
	for _, mach := range machines {
		b, ok := buckets[mach.ID()]
		if !ok {
			continue
		}
		stats = append(stats, MachineStats{
			MachineID:    mach.PublicID(),
			MachineName:  mach.Name(),
			Total:        b.total,
			Closed:       b.closed,
			HighPriority: b.high,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].MachineID < stats[j].MachineID
	})

	return &ByMachineResult{Machines: stats}, nil
}
