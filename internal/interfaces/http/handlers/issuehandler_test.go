package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"mainta/internal/application/issue/dto"
	"mainta/internal/application/issue/testutil"
	"mainta/internal/application/issue/usecases"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/constants"
	"mainta/internal/shared/errors"
)

type stubCreateIssue struct {
	result *dto.IssueDTO
	err    error
	got    *usecases.CreateIssueCommand
}

func (s *stubCreateIssue) Execute(ctx context.Context, cmd usecases.CreateIssueCommand) (*dto.IssueDTO, error) {
	s.got = &cmd
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func testActor() authorization.Actor {
	return authorization.Actor{
		ID:      1,
		UserID:  "prod1",
		Role:    authorization.RoleTechnician,
		Service: authorization.ServiceProduction,
		Active:  true,
	}
}

// withActor injects an authenticated actor, standing in for RequireAuth.
func withActor(actor authorization.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyActor, actor)
		c.Next()
	}
}

func issueCreateRouter(create usecases.CreateIssueExecutor, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	h := &IssueHandler{createUC: create, logger: testutil.NewMockLogger()}
	if authenticated {
		engine.POST("/api/issues", withActor(testActor()), h.Create)
	} else {
		engine.POST("/api/issues", h.Create)
	}
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, body io.Reader) map[string]json.RawMessage {
	t.Helper()
	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestIssueHandlerCreate_Success(t *testing.T) {
	stub := &stubCreateIssue{result: &dto.IssueDTO{
		ID:          "ISS001",
		Machine:     dto.MachineRef{ID: "MACH001", Name: "press"},
		Description: "belt torn",
		Urgency:     "high",
		Status:      "reported",
		ReportedBy:  dto.UserRef{ID: "prod1", Name: "prod1"},
		CreatedAt:   time.Now(),
	}}
	engine := issueCreateRouter(stub, true)

	rec := postJSON(t, engine, "/api/issues",
		`{"machine_id":"MACH001","description":"belt torn","urgency":"high"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if stub.got == nil {
		t.Fatal("use case was not invoked")
	}
	if stub.got.MachineID != "MACH001" || stub.got.Urgency != "high" {
		t.Errorf("command = %+v", stub.got)
	}
	if stub.got.Actor.UserID != "prod1" {
		t.Errorf("command actor = %+v, want prod1", stub.got.Actor)
	}
}

func TestIssueHandlerCreate_BindingErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing machine", `{"description":"belt torn","urgency":"high"}`, "machine_id is required"},
		{"missing description", `{"machine_id":"MACH001","urgency":"high"}`, "description is required"},
		{"unknown urgency", `{"machine_id":"MACH001","description":"belt torn","urgency":"extreme"}`, "urgency must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCreateIssue{}
			engine := issueCreateRouter(stub, true)

			rec := postJSON(t, engine, "/api/issues", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body = %s, want message containing %q", rec.Body.String(), tt.want)
			}
			if stub.got != nil {
				t.Error("use case must not run on a binding failure")
			}
		})
	}
}

func TestIssueHandlerCreate_Unauthenticated(t *testing.T) {
	engine := issueCreateRouter(&stubCreateIssue{}, false)

	rec := postJSON(t, engine, "/api/issues",
		`{"machine_id":"MACH001","description":"belt torn","urgency":"high"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestIssueHandlerCreate_UseCaseErrorMapped(t *testing.T) {
	stub := &stubCreateIssue{err: errors.NewForbiddenError("maintenance staff cannot report issues")}
	engine := issueCreateRouter(stub, true)

	rec := postJSON(t, engine, "/api/issues",
		`{"machine_id":"MACH001","description":"belt torn","urgency":"high"}`)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	envelope := decodeEnvelope(t, rec.Body)
	if string(envelope["success"]) != "false" {
		t.Errorf("success = %s, want false", envelope["success"])
	}
}
