package issue

import "time"

// Event names delivered to realtime subscribers. Clients without the
// realtime channel fall back to polling.
const (
	EventNewIssue     = "new_issue"
	EventIssueUpdated = "issue_updated"
	EventIssueClosed  = "issue_closed"
	EventNoteAdded    = "note_added"
)

// Snapshot is the full issue payload carried by every event.
type Snapshot struct {
	ID          string     `json:"id"`
	MachineID   string     `json:"machine_id"`
	Description string     `json:"description"`
	Urgency     string     `json:"urgency"`
	Status      string     `json:"status"`
	ReportedBy  string     `json:"reported_by"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	Resolution  *string    `json:"resolution,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

// NoteSnapshot is the note payload carried by note_added events.
type NoteSnapshot struct {
	ID        uint      `json:"id"`
	IssueID   string    `json:"issue_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type baseEvent struct {
	name       string
	issue      Snapshot
	occurredAt time.Time
}

func (e baseEvent) EventName() string     { return e.name }
func (e baseEvent) AggregateID() string   { return e.issue.ID }
func (e baseEvent) OccurredAt() time.Time { return e.occurredAt }

// Issue returns the full issue payload at the time of the event.
func (e baseEvent) Issue() Snapshot { return e.issue }

type CreatedEvent struct {
	baseEvent
}

func NewCreatedEvent(snapshot Snapshot) CreatedEvent {
	return CreatedEvent{baseEvent{name: EventNewIssue, issue: snapshot, occurredAt: time.Now()}}
}

// Payload returns the JSON-serializable body sent to realtime subscribers.
func (e CreatedEvent) Payload() interface{} {
	return e.issue
}

type UpdatedEvent struct {
	baseEvent
	ChangedBy string
}

func NewUpdatedEvent(snapshot Snapshot, changedBy string) UpdatedEvent {
	return UpdatedEvent{
		baseEvent: baseEvent{name: EventIssueUpdated, issue: snapshot, occurredAt: time.Now()},
		ChangedBy: changedBy,
	}
}

func (e UpdatedEvent) Payload() interface{} {
	return struct {
		Issue     Snapshot `json:"issue"`
		ChangedBy string   `json:"changed_by"`
	}{e.issue, e.ChangedBy}
}

type ClosedEvent struct {
	baseEvent
	ClosedBy string
}

func NewClosedEvent(snapshot Snapshot, closedBy string) ClosedEvent {
	return ClosedEvent{
		baseEvent: baseEvent{name: EventIssueClosed, issue: snapshot, occurredAt: time.Now()},
		ClosedBy:  closedBy,
	}
}

func (e ClosedEvent) Payload() interface{} {
	return struct {
		Issue    Snapshot `json:"issue"`
		ClosedBy string   `json:"closed_by"`
	}{e.issue, e.ClosedBy}
}

type NoteAddedEvent struct {
	baseEvent
	Note NoteSnapshot
}

func NewNoteAddedEvent(snapshot Snapshot, note NoteSnapshot) NoteAddedEvent {
	return NoteAddedEvent{
		baseEvent: baseEvent{name: EventNoteAdded, issue: snapshot, occurredAt: time.Now()},
		Note:      note,
	}
}

func (e NoteAddedEvent) Payload() interface{} {
	return struct {
		Issue Snapshot     `json:"issue"`
		Note  NoteSnapshot `json:"note"`
	}{e.issue, e.Note}
}
