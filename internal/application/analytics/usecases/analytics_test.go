package usecases

import (
	"context"
	"testing"
	"time"

	"mainta/internal/application/issue/testutil"
	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/domain/machine"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
)

type analyticsEnv struct {
	issueRepo   *testutil.MockIssueRepository
	machineRepo *testutil.MockMachineRepository
	userRepo    *testutil.MockUserRepository
	logger      *testutil.MockLogger
}

func newAnalyticsEnv() *analyticsEnv {
	return &analyticsEnv{
		issueRepo:   testutil.NewMockIssueRepository(),
		machineRepo: testutil.NewMockMachineRepository(),
		userRepo:    testutil.NewMockUserRepository(),
		logger:      testutil.NewMockLogger(),
	}
}

func (e *analyticsEnv) seedMachine(t *testing.T, publicID, name string) *machine.Machine {
	t.Helper()
	mach, err := machine.NewMachine(name, "hall A")
	if err != nil {
		t.Fatalf("NewMachine() error = %v", err)
	}
	if err := mach.SetPublicID(publicID); err != nil {
		t.Fatalf("SetPublicID() error = %v", err)
	}
	e.machineRepo.AddMachine(mach)
	return mach
}

func (e *analyticsEnv) seedUser(t *testing.T, userID string, role authorization.Role, service authorization.Service) *user.User {
	t.Helper()
	u, err := user.NewUser(userID, userID, "$2a$10$hash", role, service)
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	e.userRepo.AddUser(u)
	return u
}

// seedIssueAt reconstructs an issue with explicit lifecycle timestamps so
// the averages are deterministic.
func (e *analyticsEnv) seedIssueAt(
	t *testing.T,
	id uint,
	publicID string,
	mach *machine.Machine,
	reporter *user.User,
	urgency vo.Urgency,
	status vo.Status,
	assignee *user.User,
	createdAt time.Time,
	acceptedAt, closedAt *time.Time,
) *issue.Issue {
	t.Helper()

	var assigneeID *uint
	if assignee != nil {
		v := assignee.ID()
		assigneeID = &v
	}
	var resolution *string
	if status == vo.StatusClosed {
		r := "fixed"
		resolution = &r
	}

	iss, err := issue.ReconstructIssue(
		id, publicID, mach.ID(), reporter.ID(),
		"deterministic history entry", urgency, status,
		assigneeID, resolution,
		createdAt, acceptedAt, closedAt, createdAt,
	)
	if err != nil {
		t.Fatalf("ReconstructIssue() error = %v", err)
	}
	e.issueRepo.AddIssue(iss)
	return iss
}

func ptr(t time.Time) *time.Time { return &t }

func TestDashboard_Empty(t *testing.T) {
	env := newAnalyticsEnv()
	viewer := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)

	uc := NewDashboardUseCase(env.issueRepo, env.logger)

	result, err := uc.Execute(context.Background(), DashboardQuery{Actor: viewer.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if result.Total != 0 || result.Open != 0 || result.HighPriority != 0 {
		t.Errorf("counts = %d/%d/%d, want all zero", result.Total, result.Open, result.HighPriority)
	}
	if result.AvgResolutionHours != nil {
		t.Errorf("AvgResolutionHours = %v, want nil", *result.AvgResolutionHours)
	}
	if len(result.ByStatus) != 4 {
		t.Errorf("len(ByStatus) = %d, want 4", len(result.ByStatus))
	}
	if len(result.ByUrgency) != 3 {
		t.Errorf("len(ByUrgency) = %d, want 3", len(result.ByUrgency))
	}
	for name, count := range result.ByStatus {
		if count != 0 {
			t.Errorf("ByStatus[%s] = %d, want 0", name, count)
		}
	}
}

func TestDashboard_Counts(t *testing.T) {
	env := newAnalyticsEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)

	now := time.Now()
	// Closed in exactly 3 hours.
	env.seedIssueAt(t, 1, "ISS001", mach, reporter, vo.UrgencyHigh, vo.StatusClosed, tech,
		now.Add(-5*time.Hour), ptr(now.Add(-4*time.Hour)), ptr(now.Add(-2*time.Hour)))
	// Closed in exactly 1 hour.
	env.seedIssueAt(t, 2, "ISS002", mach, reporter, vo.UrgencyLow, vo.StatusClosed, tech,
		now.Add(-3*time.Hour), ptr(now.Add(-2*time.Hour)), ptr(now.Add(-2*time.Hour)))
	// Still open, high urgency.
	env.seedIssueAt(t, 3, "ISS003", mach, reporter, vo.UrgencyHigh, vo.StatusReported, nil,
		now.Add(-1*time.Hour), nil, nil)

	uc := NewDashboardUseCase(env.issueRepo, env.logger)

	result, err := uc.Execute(context.Background(), DashboardQuery{Actor: tech.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if result.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Total)
	}
	if result.Open != 1 {
		t.Errorf("Open = %d, want 1", result.Open)
	}
	if result.HighPriority != 1 {
		t.Errorf("HighPriority = %d, want 1", result.HighPriority)
	}
	if result.ByStatus["closed"] != 2 || result.ByStatus["reported"] != 1 {
		t.Errorf("ByStatus = %v", result.ByStatus)
	}
	if result.ByUrgency["high"] != 2 || result.ByUrgency["low"] != 1 {
		t.Errorf("ByUrgency = %v", result.ByUrgency)
	}
	if result.AvgResolutionHours == nil {
		t.Fatal("AvgResolutionHours = nil, want value")
	}
	// (3h + 1h) / 2 = 2.0
	if *result.AvgResolutionHours != 2.0 {
		t.Errorf("AvgResolutionHours = %v, want 2.0", *result.AvgResolutionHours)
	}
}

func TestDashboard_Forbidden(t *testing.T) {
	env := newAnalyticsEnv()
	op := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)

	uc := NewDashboardUseCase(env.issueRepo, env.logger)

	_, err := uc.Execute(context.Background(), DashboardQuery{Actor: op.Actor()})
	if !errors.IsForbiddenError(err) {
		t.Errorf("Execute() error = %v, want forbidden", err)
	}
}

func TestByMachine_SortedByTotal(t *testing.T) {
	env := newAnalyticsEnv()
	mach1 := env.seedMachine(t, "MACH001", "press 12")
	mach2 := env.seedMachine(t, "MACH002", "lathe 3")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)

	now := time.Now()
	env.seedIssueAt(t, 1, "ISS001", mach1, reporter, vo.UrgencyLow, vo.StatusReported, nil,
		now.Add(-3*time.Hour), nil, nil)
	env.seedIssueAt(t, 2, "ISS002", mach2, reporter, vo.UrgencyHigh, vo.StatusClosed, tech,
		now.Add(-6*time.Hour), ptr(now.Add(-5*time.Hour)), ptr(now.Add(-4*time.Hour)))
	env.seedIssueAt(t, 3, "ISS003", mach2, reporter, vo.UrgencyMedium, vo.StatusReported, nil,
		now.Add(-2*time.Hour), nil, nil)

	uc := NewByMachineUseCase(env.issueRepo, env.machineRepo, env.logger)

	result, err := uc.Execute(context.Background(), ByMachineQuery{Actor: tech.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if len(result.Machines) != 2 {
		t.Fatalf("len(Machines) = %d, want 2", len(result.Machines))
	}

	first := result.Machines[0]
	if first.MachineID != "MACH002" || first.Total != 2 || first.Closed != 1 || first.HighPriority != 1 {
		t.Errorf("first = %+v, want MACH002 with total 2, closed 1, high 1", first)
	}
	second := result.Machines[1]
	if second.MachineID != "MACH001" || second.Total != 1 {
		t.Errorf("second = %+v, want MACH001 with total 1", second)
	}
}

func TestByTechnician_CurrentMonthOnly(t *testing.T) {
	env := newAnalyticsEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	idle := env.seedUser(t, "tech2", authorization.RoleTechnician, authorization.ServiceMaintenance)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// Accepted this month: reaction time exactly 2 hours, then closed.
	created := monthStart.Add(1 * time.Hour)
	env.seedIssueAt(t, 1, "ISS001", mach, reporter, vo.UrgencyMedium, vo.StatusClosed, tech,
		created, ptr(created.Add(2*time.Hour)), ptr(created.Add(5*time.Hour)))

	// Accepted last month: must not count.
	lastMonth := monthStart.AddDate(0, -1, 0).Add(24 * time.Hour)
	env.seedIssueAt(t, 2, "ISS002", mach, reporter, vo.UrgencyMedium, vo.StatusClosed, tech,
		lastMonth, ptr(lastMonth.Add(8*time.Hour)), ptr(lastMonth.Add(9*time.Hour)))

	uc := NewByTechnicianUseCase(env.issueRepo, env.userRepo, env.logger)

	result, err := uc.Execute(context.Background(), ByTechnicianQuery{Actor: tech.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Month != monthStart.Format("2006-01") {
		t.Errorf("Month = %v, want %v", result.Month, monthStart.Format("2006-01"))
	}
	if len(result.Technicians) != 2 {
		t.Fatalf("len(Technicians) = %d, want 2", len(result.Technicians))
	}

	busy := result.Technicians[0]
	if busy.UserID != tech.UserID() {
		t.Fatalf("first technician = %v, want %v", busy.UserID, tech.UserID())
	}
	if busy.Closed != 1 {
		t.Errorf("Closed = %d, want 1", busy.Closed)
	}
	if busy.AvgReactionHours == nil || *busy.AvgReactionHours != 2.0 {
		t.Errorf("AvgReactionHours = %v, want 2.0", busy.AvgReactionHours)
	}

	zero := result.Technicians[1]
	if zero.UserID != idle.UserID() {
		t.Fatalf("second technician = %v, want %v", zero.UserID, idle.UserID())
	}
	if zero.Closed != 0 {
		t.Errorf("idle Closed = %d, want 0", zero.Closed)
	}
	if zero.AvgReactionHours != nil {
		t.Errorf("idle AvgReactionHours = %v, want nil", *zero.AvgReactionHours)
	}
}

func TestByTechnician_ExcludesProductionUsers(t *testing.T) {
	env := newAnalyticsEnv()
	env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)

	uc := NewByTechnicianUseCase(env.issueRepo, env.userRepo, env.logger)

	result, err := uc.Execute(context.Background(), ByTechnicianQuery{Actor: tech.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if len(result.Technicians) != 1 {
		t.Fatalf("len(Technicians) = %d, want 1", len(result.Technicians))
	}
	if result.Technicians[0].UserID != "tech1" {
		t.Errorf("technician = %v, want tech1", result.Technicians[0].UserID)
	}
}
