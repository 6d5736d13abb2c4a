package usecases

import (
	"testing"

	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
)

func TestAddNote_Success(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusAssigned, tech)

	uc := NewAddNoteUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	result, err := uc.Execute(ctx(), AddNoteCommand{
		Actor:   tech.Actor(),
		IssueID: "ISS001",
		Text:    "ordered a spare part",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if result.Text != "ordered a spare part" {
		t.Errorf("result.Text = %q", result.Text)
	}
	if result.Author.ID != "tech1" {
		t.Errorf("result.Author.ID = %v, want tech1", result.Author.ID)
	}
	if result.IssueID != "ISS001" {
		t.Errorf("result.IssueID = %v, want ISS001", result.IssueID)
	}

	events := env.publisher.Events()
	if len(events) != 1 || events[0].EventName() != issue.EventNoteAdded {
		t.Errorf("published events = %v, want one %v", events, issue.EventNoteAdded)
	}
}

// Notes remain writable after closure.
func TestAddNote_OnClosedIssue(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusClosed, tech)

	uc := NewAddNoteUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), AddNoteCommand{
		Actor:   tech.Actor(),
		IssueID: "ISS001",
		Text:    "confirmed fix held over the weekend",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
}

func TestAddNote_EmptyText(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	tech := env.seedUser(t, "tech1", authorization.RoleTechnician, authorization.ServiceMaintenance)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusAssigned, tech)

	uc := NewAddNoteUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), AddNoteCommand{
		Actor:   tech.Actor(),
		IssueID: "ISS001",
		Text:    "   ",
	})
	if !errors.IsValidationError(err) {
		t.Errorf("Execute() error = %v, want validation", err)
	}
}

// A production user who is not the reporter cannot reach the issue at all.
func TestAddNote_StrangerForbidden(t *testing.T) {
	env := newTestEnv()
	mach := env.seedMachine(t, "MACH001", "press 12")
	reporter := env.seedUser(t, "operator1", authorization.RoleTechnician, authorization.ServiceProduction)
	stranger := env.seedUser(t, "operator2", authorization.RoleTechnician, authorization.ServiceProduction)
	env.seedIssue(t, "ISS001", mach, reporter, vo.StatusReported, nil)

	uc := NewAddNoteUseCase(env.issueRepo, env.machineRepo, env.userRepo, env.publisher, env.logger)

	_, err := uc.Execute(ctx(), AddNoteCommand{
		Actor:   stranger.Actor(),
		IssueID: "ISS001",
		Text:    "me too",
	})
	if !errors.IsForbiddenError(err) {
		t.Errorf("Execute() error = %v, want forbidden", err)
	}
}
