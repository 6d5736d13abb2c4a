package notification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"mainta/internal/domain/issue"
	"mainta/internal/domain/shared/events"
	"mainta/internal/shared/config"
)

func snapshot(urgency string) issue.Snapshot {
	return issue.Snapshot{
		ID:          "ISS001",
		MachineID:   "MACH001",
		Description: "belt torn",
		Urgency:     urgency,
		Status:      "reported",
		ReportedBy:  "prod1",
		CreatedAt:   time.Now(),
	}
}

func TestRegisterSinksDeliversIssueEvents(t *testing.T) {
	dispatcher := events.NewDispatcher(16, nil)
	if err := dispatcher.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	sink := NewRecordingSink()
	if err := RegisterSinks(dispatcher, sink); err != nil {
		t.Fatalf("RegisterSinks() error = %v", err)
	}

	if err := dispatcher.Publish(issue.NewCreatedEvent(snapshot("high"))); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := dispatcher.Publish(issue.NewClosedEvent(snapshot("high"), "tech1")); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if err := dispatcher.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	got := sink.Events()
	if len(got) != 2 {
		t.Fatalf("len(Events()) = %d, want 2", len(got))
	}
	if got[0].EventName() != issue.EventNewIssue {
		t.Errorf("Events()[0].EventName() = %q, want %q", got[0].EventName(), issue.EventNewIssue)
	}
	if got[1].EventName() != issue.EventIssueClosed {
		t.Errorf("Events()[1].EventName() = %q, want %q", got[1].EventName(), issue.EventIssueClosed)
	}
}

func TestHubBroadcastsToConnectedClient(t *testing.T) {
	hub := NewHub(8, nil, nil)
	go hub.Run()
	defer hub.Stop()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := hub.HandleConnection(w, r); err != nil {
			t.Errorf("HandleConnection() error = %v", err)
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	// Registration goes through the hub goroutine; give it a moment
	// before broadcasting.
	time.Sleep(50 * time.Millisecond)

	if err := hub.Notify(issue.NewCreatedEvent(snapshot("high"))); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}

	var env struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(message, &env); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if env.Event != issue.EventNewIssue {
		t.Errorf("envelope event = %q, want %q", env.Event, issue.EventNewIssue)
	}
	if len(env.Data) == 0 {
		t.Error("envelope data is empty")
	}
}

// A handshake that lands after shutdown must not hang on the stopped
// run loop.
func TestHubHandleConnectionAfterStop(t *testing.T) {
	hub := NewHub(8, nil, nil)
	go hub.Run()
	hub.Stop()

	handled := make(chan error, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled <- hub.HandleConnection(w, r)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	select {
	case err := <-handled:
		if err != nil {
			t.Errorf("HandleConnection() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("HandleConnection() did not return after hub stop")
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://app.local"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "http://app.local")
	if !check(req) {
		t.Error("allowed origin rejected")
	}

	req.Header.Set("Origin", "http://evil.local")
	if check(req) {
		t.Error("unknown origin accepted")
	}

	allowAll := originChecker(nil)
	if !allowAll(req) {
		t.Error("empty allowlist should accept any origin")
	}
}

func TestEmailSinkIgnoresNonHighUrgency(t *testing.T) {
	sink := NewEmailSink(config.EmailConfig{
		Enabled:  true,
		AlertsTo: []string{"maintenance@mainta.local"},
	}, nil)

	// Low urgency never reaches SMTP, so no dialer error can surface.
	if err := sink.Notify(issue.NewCreatedEvent(snapshot("low"))); err != nil {
		t.Errorf("Notify() error = %v, want nil", err)
	}

	disabled := NewEmailSink(config.EmailConfig{Enabled: false}, nil)
	if err := disabled.Notify(issue.NewCreatedEvent(snapshot("high"))); err != nil {
		t.Errorf("Notify() with disabled sink error = %v, want nil", err)
	}
}
