// Package notification fans issue lifecycle events out to best-effort
// side channels: the websocket hub for connected clients and SMTP for
// high-urgency alerts. Sink failures are logged and never affect the
// state mutation that produced the event.
package notification

import (
	"sync"

	"mainta/internal/domain/issue"
	"mainta/internal/domain/shared/events"
)

// Sink is a delivery channel for issue events.
type Sink interface {
	Notify(event events.DomainEvent) error
}

// payloadEvent is implemented by events that carry a serializable body.
type payloadEvent interface {
	events.DomainEvent
	Payload() interface{}
}

var issueEventNames = []string{
	issue.EventNewIssue,
	issue.EventIssueUpdated,
	issue.EventIssueClosed,
	issue.EventNoteAdded,
}

// RegisterSinks subscribes every sink to the issue event names on the
// dispatcher.
func RegisterSinks(dispatcher *events.Dispatcher, sinks ...Sink) error {
	for _, sink := range sinks {
		sink := sink
		handler := events.HandlerFunc(func(event events.DomainEvent) error {
			return sink.Notify(event)
		})
		for _, name := range issueEventNames {
			if err := dispatcher.Subscribe(name, handler); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordingSink captures events in memory. Test support.
type RecordingSink struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Notify(event events.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *RecordingSink) Events() []events.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]events.DomainEvent, len(s.events))
	copy(out, s.events)
	return out
}
