package issue

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "mainta/internal/domain/issue/value_objects"
)

// Sentinel errors raised by the aggregate's transition methods. Use cases
// map them onto the application error kinds.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyAssigned   = errors.New("issue is already assigned")
	ErrEmptyResolution   = errors.New("resolution text is required")
	ErrClosed            = errors.New("issue is closed")
)

const maxDescriptionLength = 5000

// Issue is the aggregate root of the maintenance lifecycle. All timestamp
// and status mutation happens inside its transition methods so the
// lifecycle invariants hold no matter which caller drives the change.
type Issue struct {
	id          uint
	publicID    string
	machineID   uint
	reporterID  uint
	description string
	urgency     vo.Urgency
	status      vo.Status
	assigneeID  *uint
	resolution  *string
	createdAt   time.Time
	acceptedAt  *time.Time
	closedAt    *time.Time
	updatedAt   time.Time
}

func NewIssue(machineID, reporterID uint, description string, urgency vo.Urgency) (*Issue, error) {
	description = strings.TrimSpace(description)
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if !urgency.IsValid() {
		return nil, fmt.Errorf("invalid urgency")
	}
	if machineID == 0 {
		return nil, fmt.Errorf("machine ID is required")
	}
	if reporterID == 0 {
		return nil, fmt.Errorf("reporter ID is required")
	}

	now := time.Now()
	return &Issue{
		machineID:   machineID,
		reporterID:  reporterID,
		description: description,
		urgency:     urgency,
		status:      vo.StatusReported,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructIssue(
	id uint,
	publicID string,
	machineID uint,
	reporterID uint,
	description string,
	urgency vo.Urgency,
	status vo.Status,
	assigneeID *uint,
	resolution *string,
	createdAt time.Time,
	acceptedAt *time.Time,
	closedAt *time.Time,
	updatedAt time.Time,
) (*Issue, error) {
	if id == 0 {
		return nil, fmt.Errorf("issue ID cannot be zero")
	}
	if len(publicID) == 0 {
		return nil, fmt.Errorf("issue public ID is required")
	}
	if !urgency.IsValid() {
		return nil, fmt.Errorf("invalid urgency")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Issue{
		id:          id,
		publicID:    publicID,
		machineID:   machineID,
		reporterID:  reporterID,
		description: description,
		urgency:     urgency,
		status:      status,
		assigneeID:  assigneeID,
		resolution:  resolution,
		createdAt:   createdAt,
		acceptedAt:  acceptedAt,
		closedAt:    closedAt,
		updatedAt:   updatedAt,
	}, nil
}

func (i *Issue) ID() uint {
	return i.id
}

func (i *Issue) PublicID() string {
	return i.publicID
}

func (i *Issue) MachineID() uint {
	return i.machineID
}

func (i *Issue) ReporterID() uint {
	return i.reporterID
}

func (i *Issue) Description() string {
	return i.description
}

func (i *Issue) Urgency() vo.Urgency {
	return i.urgency
}

func (i *Issue) Status() vo.Status {
	return i.status
}

func (i *Issue) AssigneeID() *uint {
	return i.assigneeID
}

func (i *Issue) Resolution() *string {
	return i.resolution
}

func (i *Issue) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Issue) AcceptedAt() *time.Time {
	return i.acceptedAt
}

func (i *Issue) ClosedAt() *time.Time {
	return i.closedAt
}

func (i *Issue) UpdatedAt() time.Time {
	return i.updatedAt
}

func (i *Issue) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("issue ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("issue ID cannot be zero")
	}
	i.id = id
	return nil
}

func (i *Issue) SetPublicID(publicID string) error {
	if len(i.publicID) > 0 {
		return fmt.Errorf("issue public ID is already set")
	}
	if len(publicID) == 0 {
		return fmt.Errorf("issue public ID cannot be empty")
	}
	i.publicID = publicID
	return nil
}

// Assign accepts a reported issue on behalf of a technician. The issue
// moves to assigned and accepted_at is stamped.
func (i *Issue) Assign(technicianID uint) error {
	if technicianID == 0 {
		return fmt.Errorf("technician ID cannot be zero")
	}
	if i.assigneeID != nil {
		return fmt.Errorf("%w to technician %d", ErrAlreadyAssigned, *i.assigneeID)
	}
	if !i.status.CanTransitionTo(vo.StatusAssigned) {
		return fmt.Errorf("%w: cannot assign issue in status %s", ErrInvalidTransition, i.status)
	}

	now := time.Now()
	i.assigneeID = &technicianID
	i.acceptedAt = &now
	i.status = vo.StatusAssigned
	i.updatedAt = now
	return nil
}

// Start moves an assigned issue to in_progress.
func (i *Issue) Start() error {
	if !i.status.CanTransitionTo(vo.StatusInProgress) {
		return fmt.Errorf("%w: cannot start work on issue in status %s", ErrInvalidTransition, i.status)
	}

	i.status = vo.StatusInProgress
	i.updatedAt = time.Now()
	return nil
}

// Close finishes the issue with a resolution. Closed is terminal; only
// notes may be added afterwards.
func (i *Issue) Close(resolution string) error {
	resolution = strings.TrimSpace(resolution)
	if len(resolution) == 0 {
		return ErrEmptyResolution
	}
	if i.status.IsClosed() {
		return fmt.Errorf("%w: already closed", ErrClosed)
	}
	if !i.status.CanTransitionTo(vo.StatusClosed) {
		return fmt.Errorf("%w: cannot close issue in status %s", ErrInvalidTransition, i.status)
	}

	now := time.Now()
	i.status = vo.StatusClosed
	i.resolution = &resolution
	i.closedAt = &now
	i.updatedAt = now
	return nil
}

// IsAssignedTo reports whether the given user is the current assignee.
func (i *Issue) IsAssignedTo(userID uint) bool {
	return i.assigneeID != nil && *i.assigneeID == userID
}

// ResolutionTime returns closed_at - created_at, or false when the issue
// is not closed yet.
func (i *Issue) ResolutionTime() (time.Duration, bool) {
	if i.closedAt == nil {
		return 0, false
	}
	return i.closedAt.Sub(i.createdAt), true
}

// ReactionTime returns accepted_at - created_at, or false when the issue
// was never accepted.
func (i *Issue) ReactionTime() (time.Duration, bool) {
	if i.acceptedAt == nil {
		return 0, false
	}
	return i.acceptedAt.Sub(i.createdAt), true
}
