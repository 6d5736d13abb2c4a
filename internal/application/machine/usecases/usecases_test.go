package usecases

import (
	"context"
	"testing"

	"mainta/internal/application/issue/testutil"
	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/domain/user"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/errors"
)

func managerActor(t *testing.T) authorization.Actor {
	t.Helper()
	u, err := user.NewUser("boss", "boss", "$2a$10$hash", authorization.RoleManager, authorization.ServiceMaintenance)
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	if err := u.SetID(99); err != nil {
		t.Fatalf("SetID() error = %v", err)
	}
	return u.Actor()
}

func technicianActor(t *testing.T) authorization.Actor {
	t.Helper()
	u, err := user.NewUser("tech1", "tech1", "$2a$10$hash", authorization.RoleTechnician, authorization.ServiceMaintenance)
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	if err := u.SetID(7); err != nil {
		t.Fatalf("SetID() error = %v", err)
	}
	return u.Actor()
}

func TestCreateMachine_Success(t *testing.T) {
	machineRepo := testutil.NewMockMachineRepository()

	uc := NewCreateMachineUseCase(machineRepo, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), CreateMachineCommand{
		Actor:    managerActor(t),
		Name:     "press 12",
		Location: "hall A",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.ID != "MACH001" {
		t.Errorf("result.ID = %v, want MACH001", result.ID)
	}
	if result.Status != "active" {
		t.Errorf("result.Status = %v, want active", result.Status)
	}
}

func TestCreateMachine_TechnicianForbidden(t *testing.T) {
	machineRepo := testutil.NewMockMachineRepository()

	uc := NewCreateMachineUseCase(machineRepo, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), CreateMachineCommand{
		Actor: technicianActor(t),
		Name:  "press 12",
	})
	if !errors.IsForbiddenError(err) {
		t.Errorf("Execute() error = %v, want forbidden", err)
	}
}

func TestUpdateMachine_Status(t *testing.T) {
	machineRepo := testutil.NewMockMachineRepository()
	createUC := NewCreateMachineUseCase(machineRepo, testutil.NewMockLogger())
	created, err := createUC.Execute(context.Background(), CreateMachineCommand{
		Actor: managerActor(t),
		Name:  "press 12",
	})
	if err != nil {
		t.Fatalf("create Execute() error = %v", err)
	}

	uc := NewUpdateMachineUseCase(machineRepo, testutil.NewMockLogger())

	status := "maintenance"
	result, err := uc.Execute(context.Background(), UpdateMachineCommand{
		Actor:     managerActor(t),
		MachineID: created.ID,
		Status:    &status,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Status != "maintenance" {
		t.Errorf("result.Status = %v, want maintenance", result.Status)
	}
}

func TestUpdateMachine_InvalidStatus(t *testing.T) {
	machineRepo := testutil.NewMockMachineRepository()
	createUC := NewCreateMachineUseCase(machineRepo, testutil.NewMockLogger())
	created, err := createUC.Execute(context.Background(), CreateMachineCommand{
		Actor: managerActor(t),
		Name:  "press 12",
	})
	if err != nil {
		t.Fatalf("create Execute() error = %v", err)
	}

	uc := NewUpdateMachineUseCase(machineRepo, testutil.NewMockLogger())

	status := "broken"
	_, err = uc.Execute(context.Background(), UpdateMachineCommand{
		Actor:     managerActor(t),
		MachineID: created.ID,
		Status:    &status,
	})
	if !errors.IsValidationError(err) {
		t.Errorf("Execute() error = %v, want validation", err)
	}
}

func TestDeleteMachine_RefusedWithHistory(t *testing.T) {
	machineRepo := testutil.NewMockMachineRepository()
	issueRepo := testutil.NewMockIssueRepository()

	createUC := NewCreateMachineUseCase(machineRepo, testutil.NewMockLogger())
	created, err := createUC.Execute(context.Background(), CreateMachineCommand{
		Actor: managerActor(t),
		Name:  "press 12",
	})
	if err != nil {
		t.Fatalf("create Execute() error = %v", err)
	}

	mach, err := machineRepo.GetByPublicID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByPublicID() error = %v", err)
	}
	iss, err := issue.NewIssue(mach.ID(), 1, "belt torn", vo.UrgencyLow)
	if err != nil {
		t.Fatalf("NewIssue() error = %v", err)
	}
	if err := iss.SetPublicID("ISS001"); err != nil {
		t.Fatalf("SetPublicID() error = %v", err)
	}
	issueRepo.AddIssue(iss)

	uc := NewDeleteMachineUseCase(machineRepo, issueRepo, testutil.NewMockLogger())

	err = uc.Execute(context.Background(), DeleteMachineCommand{
		Actor:     managerActor(t),
		MachineID: created.ID,
	})
	if !errors.IsConflictError(err) {
		t.Errorf("Execute() error = %v, want conflict", err)
	}
}

func TestDeleteMachine_NoHistory(t *testing.T) {
	machineRepo := testutil.NewMockMachineRepository()
	issueRepo := testutil.NewMockIssueRepository()

	createUC := NewCreateMachineUseCase(machineRepo, testutil.NewMockLogger())
	created, err := createUC.Execute(context.Background(), CreateMachineCommand{
		Actor: managerActor(t),
		Name:  "press 12",
	})
	if err != nil {
		t.Fatalf("create Execute() error = %v", err)
	}

	uc := NewDeleteMachineUseCase(machineRepo, issueRepo, testutil.NewMockLogger())

	if err := uc.Execute(context.Background(), DeleteMachineCommand{
		Actor:     managerActor(t),
		MachineID: created.ID,
	}); err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if _, err := machineRepo.GetByPublicID(context.Background(), created.ID); !errors.IsNotFoundError(err) {
		t.Errorf("GetByPublicID() error = %v, want not found", err)
	}
}

func TestListMachines_Paginated(t *testing.T) {
	machineRepo := testutil.NewMockMachineRepository()
	createUC := NewCreateMachineUseCase(machineRepo, testutil.NewMockLogger())
	for _, name := range []string{"press 12", "lathe 3", "mill 7"} {
		if _, err := createUC.Execute(context.Background(), CreateMachineCommand{
			Actor: managerActor(t),
			Name:  name,
		}); err != nil {
			t.Fatalf("create Execute() error = %v", err)
		}
	}

	uc := NewListMachinesUseCase(machineRepo, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), ListMachinesQuery{
		Actor:    technicianActor(t),
		Page:     1,
		PageSize: 2,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Total != 3 {
		t.Errorf("result.Total = %v, want 3", result.Total)
	}
	if len(result.Items) != 2 {
		t.Errorf("len(result.Items) = %v, want 2", len(result.Items))
	}
}
