package usecases

import (
	"testing"

	"mainta/internal/domain/issue"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
)

func TestCreateIssue_Success(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)

	uc := NewCreateIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	result, err := uc.Execute(ctx(), CreateIssueCommand{
		Actor:       reporter.Actor(),
		MachineID:   mach.PublicID(),
		Description: "press jammed mid cycle",
		Urgency:     "high",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if result.ID != "ISS001" {
		t.Errorf("result.ID = %v, want ISS001", result.ID)
	}
	if result.Status != "reported" {
		t.Errorf("result.Status = %v, want reported", result.Status)
	}
	if result.Machine.ID != "MACH001" {
		t.Errorf("result.Machine.ID = %v, want MACH001", result.Machine.ID)
	}
	if result.ReportedBy.ID != "operator1" {
		t.Errorf("result.ReportedBy.ID = %v, want operator1", result.ReportedBy.ID)
	}
	if result.AssignedTo != nil {
		t.Errorf("result.AssignedTo = %v, want nil", result.AssignedTo)
	}

	events := env.publisher.Events()
	if len(events) != 1 {
		t.Fatalf("published %d events, want 1", len(events))
	}
	if events[0].EventName() != issue.EventNewIssue {
		t.Errorf("event name = %v, want %v", events[0].EventName(), issue.EventNewIssue)
	}
}

func TestCreateIssue_SanitizesDescription(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)

	uc := NewCreateIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	result, err := uc.Execute(ctx(), CreateIssueCommand{
		Actor:       reporter.Actor(),
		MachineID:   mach.PublicID(),
		Description: "  <script>alert(1)</script>belt torn  ",
		Urgency:     "low",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Description != "belt torn" {
		t.Errorf("result.Description = %q, want %q", result.Description, "belt torn")
	}
}

func TestCreateIssue_MaintenanceTechnicianForbidden(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)

	uc := NewCreateIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), CreateIssueCommand{
		Actor:       tech.Actor(),
		MachineID:   mach.PublicID(),
		Description: "noise",
		Urgency:     "low",
	})
	if !errors.IsForbiddenError(err) {
		t.Errorf("Execute() error = %v, want forbidden", err)
	}
	if len(env.publisher.Events()) != 0 {
		t.Error("no event should be published on rejection")
	}
}

func TestCreateIssue_UnknownMachine(t *testing.T) {
	env := newTestEnv()
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)

	uc := NewCreateIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), CreateIssueCommand{
		Actor:       reporter.Actor(),
		MachineID:   "MACH999",
		Description: "noise",
		Urgency:     "low",
	})
	if !errors.IsNotFoundError(err) {
		t.Errorf("Execute() error = %v, want not found", err)
	}
}

func TestCreateIssue_InvalidUrgency(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)

	uc := NewCreateIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), CreateIssueCommand{
		Actor:       reporter.Actor(),
		MachineID:   mach.PublicID(),
		Description: "noise",
		Urgency:     "urgent",
	})
	if !errors.IsValidationError(err) {
		t.Errorf("Execute() error = %v, want validation", err)
	}
}

func TestCreateIssue_SequentialPublicIDs(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)

	uc := NewCreateIssueUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	for i, want := range []string{"ISS001", "ISS002", "ISS003"} {
		result, err := uc.Execute(ctx(), CreateIssueCommand{
			Actor:       reporter.Actor(),
			MachineID:   mach.PublicID(),
			Description: "noise",
			Urgency:     "medium",
		})
		if err != nil {
			t.Fatalf("Execute() #%d error = %v", i+1, err)
		}
		if result.ID != want {
			t.Errorf("result.ID = %v, want %v", result.ID, want)
		}
	}
}
