package usecases

import (
	"context"
	"testing"

	"mainta/internal/application/issue/testutil"
	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/domain/machine"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
)

type testEnv struct {
	issueRepo   *testutil.MockIssueRepository
	machineRepo *testutil.MockMachineRepository
	userRepo    *testutil.MockUserRepository
	publisher   *testutil.MockPublisher
	logger      *testutil.MockLogger
}

func newTestEnv() *testEnv {
	return &testEnv{
		issueRepo:   testutil.NewMockIssueRepository(),
		machineRepo: testutil.NewMockMachineRepository(),
		userRepo:    testutil.NewMockUserRepository(),
		publisher:   testutil.NewMockPublisher(),
		logger:      testutil.NewMockLogger(),
	}
}

func (e *testEnv) seedMachine(t *testing.T, publicID, name string) *machine.Machine {
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

func (e *testEnv) seedUser(t *testing.T, userID string, role authorization.Role, service authorization.Service) *user.User {
	t.Helper()
	u, err := user.NewUser(userID, userID, "$2a$10$hash", role, service)
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	e.userRepo.AddUser(u)
	return u
}

// seedIssue stores an issue advanced to the requested status. The
// assignee is only consulted for assigned, in_progress and closed.
func (e *testEnv) seedIssue(t *testing.T, publicID string, mach *machine.Machine, reporter *user.User, status vo.Status, assignee *user.User) *issue.Issue {
	t.Helper()
	iss, err := issue.NewIssue(mach.ID(), reporter.ID(), "conveyor belt stopped", vo.UrgencyMedium)
	if err != nil {
		t.Fatalf("NewIssue() error = %v", err)
	}
	if err := iss.SetPublicID(publicID); err != nil {
		t.Fatalf("SetPublicID() error = %v", err)
	}

	switch status {
	case vo.StatusReported:
	case vo.StatusAssigned:
		mustAssign(t, iss, assignee)
	case vo.StatusInProgress:
		mustAssign(t, iss, assignee)
		if err := iss.Start(); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	case vo.StatusClosed:
		mustAssign(t, iss, assignee)
		if err := iss.Close("replaced the belt"); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}

	e.issueRepo.AddIssue(iss)
	return iss
}

func mustAssign(t *testing.T, iss *issue.Issue, assignee *user.User) {
	t.Helper()
	if assignee == nil {
		t.Fatal("seedIssue needs an assignee for this status")
	}
	if err := iss.Assign(assignee.ID()); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
}

func ctx() context.Context {
	return context.Background()
}
