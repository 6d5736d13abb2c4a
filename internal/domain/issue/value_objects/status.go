package value_objects

import "fmt"

// Status is the issue lifecycle stage. Transitions only move forward;
// closed is terminal.
type Status string

const (
	StatusReported   Status = "reported"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

var validStatuses = map[Status]bool{
	StatusReported:   true,
	StatusAssigned:   true,
	StatusInProgress: true,
	StatusClosed:     true,
}

var statusTransitions = map[Status][]Status{
	StatusReported:   {StatusAssigned},
	StatusAssigned:   {StatusInProgress, StatusClosed},
	StatusInProgress: {StatusClosed},
	StatusClosed:     {},
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid issue status: %s", s)
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s Status) IsReported() bool {
	return s == StatusReported
}

func (s Status) IsAssigned() bool {
	return s == StatusAssigned
}

func (s Status) IsInProgress() bool {
	return s == StatusInProgress
}

func (s Status) IsClosed() bool {
	return s == StatusClosed
}

// IsOpen reports whether the issue still needs work.
func (s Status) IsOpen() bool {
	return s != StatusClosed
}

// AllStatuses returns every lifecycle stage in order. Aggregations use it
// to emit zero-filled counts.
func AllStatuses() []Status {
	return []Status{StatusReported, StatusAssigned, StatusInProgress, StatusClosed}
}
