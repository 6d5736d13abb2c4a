package usecases

import (
	"testing"

	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
)

func TestAssignIssue_Success(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	iss := env.seedIssue(t, "ISS001", mach, reporter, vo.StatusReported, nil)

	uc := NewAssignIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	result, err := uc.Execute(ctx(), AssignIssueCommand{Actor: tech.Actor(), IssueID: "ISS001"})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if result.Status != "assigned" {
		t.Errorf("result.Status = %v, want assigned", result.Status)
	}
	if result.AssignedTo == nil || result.AssignedTo.ID != "tech1" {
		t.Errorf("result.AssignedTo = %v, want tech1", result.AssignedTo)
	}
	if result.AcceptedAt == nil {
		t.Error("result.AcceptedAt should be stamped")
	}

	notes := env.issueRepo.Notes(iss.ID())
	if len(notes) != 1 {
		t.Fatalf("recorded %d notes, want 1", len(notes))
	}
	if notes[0].Text() != "Issue accepted and assigned to tech1" {
		t.Errorf("note text = %q", notes[0].Text())
	}

	events := env.publisher.Events()
	if len(events) != 1 || events[0].EventName() != issue.EventIssueUpdated {
		t.Errorf("published events = %v, want one %v", events, issue.EventIssueUpdated)
	}
}

func TestAssignIssue_ProductionUserForbidden(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusReported, nil)

	uc := NewAssignIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), AssignIssueCommand{Actor: reporter.Actor(), IssueID: "ISS001"})
	if !errors.IsForbiddenError(err) {
		t.Errorf("Execute() error = %v, want forbidden", err)
	}
}

func TestAssignIssue_AlreadyAssigned(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	other := env.seedUser(t, "tech2", authorization.RoleTechnician, authorization.ServiceMaintenance)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusAssigned, tech)

	uc := NewAssignIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), AssignIssueCommand{Actor: other.Actor(), IssueID: "ISS001"})
	if !errors.IsInvalidTransitionError(err) {
		t.Errorf("Execute() error = %v, want invalid transition", err)
	}
}

// TestAssignIssue_LostRace simulates two technicians accepting the same
// reported issue. The second commit must fail on the status guard.
func TestAssignIssue_LostRace(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech1 := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	tech2 := env.seedUser(t, "tech2", authorization.RoleTechnician, authorization.ServiceMaintenance)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusReported, nil)

	uc := NewAssignIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	if _, err := uc.Execute(ctx(), AssignIssueCommand{Actor: tech1.Actor(), IssueID: "ISS001"}); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}

	_, err := uc.Execute(ctx(), AssignIssueCommand{Actor: tech2.Actor(), IssueID: "ISS001"})
	if !errors.IsInvalidTransitionError(err) {
		t.Errorf("second Execute() error = %v, want invalid transition", err)
	}

	// Only the winning acceptance may be visible.
	iss, err := env.issueRepo.GetByPublicID(ctx(), "ISS001")
	if err != nil {
		t.Fatalf("GetByPublicID() error = %v", err)
	}
	if !iss.IsAssignedTo(tech1.ID()) {
		t.Error("issue should stay assigned to the first technician")
	}
}

func TestAssignIssue_NotFound(t *testing.T) {
	env := newTestEnv()
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)

	uc := NewAssignIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), AssignIssueCommand{Actor: tech.Actor(), IssueID: "ISS404"})
	if !errors.IsNotFoundError(err) {
		t.Errorf("Execute() error = %v, want not found", err)
	}
}
