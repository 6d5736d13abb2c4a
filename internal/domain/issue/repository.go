package issue

import (
	"context"
	"time"

	vo "mainta/internal/domain/issue/value_objects"
)

// Filter narrows List queries. Nil/zero fields are ignored. PageSize 0
// disables pagination, which analytics uses for full scans.
type Filter struct {
	Statuses   []vo.Status
	Urgency    *vo.Urgency
	MachineID  *uint
	ReporterID *uint
	AssigneeID *uint
	// Day restricts to issues created within that calendar day.
	Day *time.Time
	// AcceptedFrom/AcceptedTo bound accepted_at, inclusive of From and
	// exclusive of To.
	AcceptedFrom *time.Time
	AcceptedTo   *time.Time
	Page         int
	PageSize     int
}

// Repository is the persistence contract for issues and their notes.
type Repository interface {
	// Save inserts a new issue and backfills its numeric ID.
	Save(ctx context.Context, iss *Issue) error

	GetByID(ctx context.Context, id uint) (*Issue, error)
	GetByPublicID(ctx context.Context, publicID string) (*Issue, error)

	// UpdateFromStatus persists the issue's mutated fields only if the
	// stored status still equals expected. A concurrent transition that
	// already moved the row causes ErrInvalidTransition, making the
	// losing caller re-fetch and retry.
	UpdateFromStatus(ctx context.Context, iss *Issue, expected vo.Status) error

	// List returns issues ordered newest first plus the unpaginated total.
	List(ctx context.Context, filter Filter) ([]*Issue, int64, error)

	// NextPublicID reserves the next sequential public identifier
	// (ISS001, ISS002, ...). Identifiers are never reused.
	NextPublicID(ctx context.Context) (string, error)

	SaveNote(ctx context.Context, note *Note) error
	ListNotes(ctx context.Context, issueID uint) ([]*Note, error)

	// CountByMachine reports how many issues reference a machine. Machine
	// deletion is refused while the count is non-zero.
	CountByMachine(ctx context.Context, machineID uint) (int64, error)
}
