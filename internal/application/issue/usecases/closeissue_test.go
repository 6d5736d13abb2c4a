package usecases

import (
	"testing"

	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
)

func TestCloseIssue_FromInProgress(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	iss := env.seedIssue(t, "ISS001", mach, reporter, vo.StatusInProgress, tech)

	uc := NewCloseIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	result, err := uc.Execute(ctx(), CloseIssueCommand{
		Actor:      tech.Actor(),
		IssueID:    "ISS001",
		Resolution: "replaced the belt",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if result.Status != "closed" {
		t.Errorf("result.Status = %v, want closed", result.Status)
	}
	if result.Resolution == nil || *result.Resolution != "replaced the belt" {
		t.Errorf("result.Resolution = %v, want replaced the belt", result.Resolution)
	}
	if result.ClosedAt == nil {
		t.Error("result.ClosedAt should be stamped")
	}

	notes := env.issueRepo.Notes(iss.ID())
	if len(notes) != 1 {
		t.Fatalf("recorded %d notes, want 1", len(notes))
	}
	if notes[0].Text() != "Issue closed. Resolution: replaced the belt" {
		t.Errorf("note text = %q", notes[0].Text())
	}

	events := env.publisher.Events()
	if len(events) != 1 || events[0].EventName() != issue.EventIssueClosed {
		t.Errorf("published events = %v, want one %v", events, issue.EventIssueClosed)
	}
}

// Closing directly from assigned skips in_progress, which the lifecycle
// allows.
func TestCloseIssue_FromAssigned(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusAssigned, tech)

	uc := NewCloseIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	result, err := uc.Execute(ctx(), CloseIssueCommand{
		Actor:      tech.Actor(),
		IssueID:    "ISS001",
		Resolution: "false alarm, sensor reset",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Status != "closed" {
		t.Errorf("result.Status = %v, want closed", result.Status)
	}
}

func TestCloseIssue_BlankResolution(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusInProgress, tech)

	uc := NewCloseIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), CloseIssueCommand{
		Actor:      tech.Actor(),
		IssueID:    "ISS001",
		Resolution: "   ",
	})
	if !errors.IsValidationError(err) {
		t.Errorf("Execute() error = %v, want validation", err)
	}

	// The issue must stay open.
	iss, err := env.issueRepo.GetByPublicID(ctx(), "ISS001")
	if err != nil {
		t.Fatalf("GetByPublicID() error = %v", err)
	}
	if iss.Status() != vo.StatusInProgress {
		t.Errorf("status = %v, want in_progress", iss.Status())
	}
}

func TestCloseIssue_AlreadyClosed(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusClosed, tech)

	uc := NewCloseIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), CloseIssueCommand{
		Actor:      tech.Actor(),
		IssueID:    "ISS001",
		Resolution: "closing again",
	})
	if !errors.IsInvalidTransitionError(err) {
		t.Errorf("Execute() error = %v, want invalid transition", err)
	}
}

func TestCloseIssue_ManagerCannotOverride(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	manager := env.seedUser(t, "boss", authorization.RoleManager, authorization.ServiceMaintenance)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusInProgress, tech)

	uc := NewCloseIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), CloseIssueCommand{
		Actor:      manager.Actor(),
		IssueID:    "ISS001",
		Resolution: "closing on behalf of tech",
	})
	if !errors.IsForbiddenError(err) {
		t.Errorf("Execute() error = %v, want forbidden", err)
	}
}

func TestCloseIssue_FromReportedInvalid(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusReported, nil)

	uc := NewCloseIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), CloseIssueCommand{
		Actor:      tech.Actor(),
		IssueID:    "ISS001",
		Resolution: "nothing to do",
	})
	// No assignee yet, so the transition guard rejects the actor first.
	if !errors.IsForbiddenError(err) {
		t.Errorf("Execute() error = %v, want forbidden", err)
	}
}
