// Package testutil provides in-memory mock implementations for testing
// the issue application layer.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mainta/internal/domain/issue"
	vo "mainta/internal/domain/issue/value_objects"
	"mainta/internal/domain/machine"
	"mainta/internal/domain/shared/events"
	"mainta/internal/domain/user"
	"mainta/internal/shared/constants"
	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

// cloneIssue snapshots an aggregate so stored state does not alias the
// caller's copy. Without this, in-memory mutations would be visible
// before UpdateFromStatus commits them and the status guard could never
// detect a stale expectation.
func cloneIssue(iss *issue.Issue) *issue.Issue {
	var assigneeID *uint
	if iss.AssigneeID() != nil {
		v := *iss.AssigneeID()
		assigneeID = &v
	}
	var resolution *string
	if iss.Resolution() != nil {
		v := *iss.Resolution()
		resolution = &v
	}
	var acceptedAt, closedAt *time.Time
	if iss.AcceptedAt() != nil {
		v := *iss.AcceptedAt()
		acceptedAt = &v
	}
	if iss.ClosedAt() != nil {
		v := *iss.ClosedAt()
		closedAt = &v
	}
	clone, err := issue.ReconstructIssue(
		iss.ID(), iss.PublicID(), iss.MachineID(), iss.ReporterID(),
		iss.Description(), iss.Urgency(), iss.Status(),
		assigneeID, resolution,
		iss.CreatedAt(), acceptedAt, closedAt, iss.UpdatedAt(),
	)
	if err != nil {
		panic(fmt.Sprintf("testutil: failed to clone issue: %v", err))
	}
	return clone
}

// MockIssueRepository is an in-memory implementation of issue.Repository.
type MockIssueRepository struct {
	mu     sync.RWMutex
	issues map[uint]*issue.Issue
	notes  map[uint][]*issue.Note
	nextID uint
	noteID uint

	// Error injection for testing
	saveError     error
	getError      error
	updateError   error
	listError     error
	saveNoteError error
}

func NewMockIssueRepository() *MockIssueRepository {
	return &MockIssueRepository{
		issues: make(map[uint]*issue.Issue),
		notes:  make(map[uint][]*issue.Note),
	}
}

func (m *MockIssueRepository) Save(ctx context.Context, iss *issue.Issue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}

	if iss.ID() == 0 {
		m.nextID++
		if err := iss.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.issues[iss.ID()] = cloneIssue(iss)
	return nil
}

func (m *MockIssueRepository) GetByID(ctx context.Context, id uint) (*issue.Issue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	iss, ok := m.issues[id]
	if !ok {
		return nil, errors.NewNotFoundError("issue not found")
	}
	return cloneIssue(iss), nil
}

func (m *MockIssueRepository) GetByPublicID(ctx context.Context, publicID string) (*issue.Issue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	for _, iss := range m.issues {
		if iss.PublicID() == publicID {
			return cloneIssue(iss), nil
		}
	}
	return nil, errors.NewNotFoundError("issue not found")
}

func (m *MockIssueRepository) UpdateFromStatus(ctx context.Context, iss *issue.Issue, expected vo.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}

	stored, ok := m.issues[iss.ID()]
	if !ok {
		return errors.NewNotFoundError("issue not found")
	}
	if stored.Status() != expected {
		return errors.NewInvalidTransitionError("issue was modified concurrently")
	}
	m.issues[iss.ID()] = cloneIssue(iss)
	return nil
}

func (m *MockIssueRepository) List(ctx context.Context, filter issue.Filter) ([]*issue.Issue, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, 0, m.listError
	}

	matched := make([]*issue.Issue, 0, len(m.issues))
	for _, iss := range m.issues {
		if matchesFilter(iss, filter) {
			matched = append(matched, cloneIssue(iss))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})

	total := int64(len(matched))
	if filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func matchesFilter(iss *issue.Issue, filter issue.Filter) bool {
	if len(filter.Statuses) > 0 {
		found := false
		for _, s := range filter.Statuses {
			if iss.Status() == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Urgency != nil && iss.Urgency() != *filter.Urgency {
		return false
	}
	if filter.MachineID != nil && iss.MachineID() != *filter.MachineID {
		return false
	}
	if filter.ReporterID != nil && iss.ReporterID() != *filter.ReporterID {
		return false
	}
	if filter.AssigneeID != nil {
		if iss.AssigneeID() == nil || *iss.AssigneeID() != *filter.AssigneeID {
			return false
		}
	}
	if filter.Day != nil {
		d := *filter.Day
		dayStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)
		created := iss.CreatedAt()
		if created.Before(dayStart) || !created.Before(dayEnd) {
			return false
		}
	}
	if filter.AcceptedFrom != nil || filter.AcceptedTo != nil {
		accepted := iss.AcceptedAt()
		if accepted == nil {
			return false
		}
		if filter.AcceptedFrom != nil && accepted.Before(*filter.AcceptedFrom) {
			return false
		}
		if filter.AcceptedTo != nil && !accepted.Before(*filter.AcceptedTo) {
			return false
		}
	}
	return true
}

func (m *MockIssueRepository) NextPublicID(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fmt.Sprintf("%s%03d", constants.IssueIDPrefix, m.nextID+1), nil
}

func (m *MockIssueRepository) SaveNote(ctx context.Context, note *issue.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveNoteError != nil {
		return m.saveNoteError
	}

	if note.ID() == 0 {
		m.noteID++
		if err := note.SetID(m.noteID); err != nil {
			return err
		}
	}
	m.notes[note.IssueID()] = append(m.notes[note.IssueID()], note)
	return nil
}

func (m *MockIssueRepository) ListNotes(ctx context.Context, issueID uint) ([]*issue.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*issue.Note(nil), m.notes[issueID]...), nil
}

func (m *MockIssueRepository) CountByMachine(ctx context.Context, machineID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, iss := range m.issues {
		if iss.MachineID() == machineID {
			count++
		}
	}
	return count, nil
}

// AddIssue seeds an existing issue, assigning an ID when unset.
func (m *MockIssueRepository) AddIssue(iss *issue.Issue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if iss.ID() == 0 {
		m.nextID++
		_ = iss.SetID(m.nextID)
	} else if iss.ID() > m.nextID {
		m.nextID = iss.ID()
	}
	m.issues[iss.ID()] = cloneIssue(iss)
}

// Notes returns the notes recorded for an issue.
func (m *MockIssueRepository) Notes(issueID uint) []*issue.Note {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*issue.Note(nil), m.notes[issueID]...)
}

func (m *MockIssueRepository) SetSaveError(err error)     { m.saveError = err }
func (m *MockIssueRepository) SetGetError(err error)      { m.getError = err }
func (m *MockIssueRepository) SetUpdateError(err error)   { m.updateError = err }
func (m *MockIssueRepository) SetListError(err error)     { m.listError = err }
func (m *MockIssueRepository) SetSaveNoteError(err error) { m.saveNoteError = err }

// MockMachineRepository is an in-memory implementation of machine.Repository.
type MockMachineRepository struct {
	mu       sync.RWMutex
	machines map[uint]*machine.Machine
	nextID   uint

	saveError   error
	getError    error
	updateError error
	deleteError error
}

func NewMockMachineRepository() *MockMachineRepository {
	return &MockMachineRepository{machines: make(map[uint]*machine.Machine)}
}

func (m *MockMachineRepository) Save(ctx context.Context, mach *machine.Machine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}

	if mach.ID() == 0 {
		m.nextID++
		if err := mach.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.machines[mach.ID()] = mach
	return nil
}

func (m *MockMachineRepository) GetByID(ctx context.Context, id uint) (*machine.Machine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	mach, ok := m.machines[id]
	if !ok {
		return nil, errors.NewNotFoundError("machine not found")
	}
	return mach, nil
}

func (m *MockMachineRepository) GetByPublicID(ctx context.Context, publicID string) (*machine.Machine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	for _, mach := range m.machines {
		if mach.PublicID() == publicID {
			return mach, nil
		}
	}
	return nil, errors.NewNotFoundError("machine not found")
}

func (m *MockMachineRepository) Update(ctx context.Context, mach *machine.Machine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}

	if _, ok := m.machines[mach.ID()]; !ok {
		return errors.NewNotFoundError("machine not found")
	}
	m.machines[mach.ID()] = mach
	return nil
}

func (m *MockMachineRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteError != nil {
		return m.deleteError
	}

	if _, ok := m.machines[id]; !ok {
		return errors.NewNotFoundError("machine not found")
	}
	delete(m.machines, id)
	return nil
}

func (m *MockMachineRepository) List(ctx context.Context, page, pageSize int) ([]*machine.Machine, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*machine.Machine, 0, len(m.machines))
	for _, mach := range m.machines {
		all = append(all, mach)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PublicID() < all[j].PublicID() })

	total := int64(len(all))
	if pageSize > 0 {
		start := (page - 1) * pageSize
		if start > len(all) {
			start = len(all)
		}
		end := start + pageSize
		if end > len(all) {
			end = len(all)
		}
		all = all[start:end]
	}
	return all, total, nil
}

func (m *MockMachineRepository) ListByIDs(ctx context.Context, ids []uint) ([]*machine.Machine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*machine.Machine, 0, len(ids))
	for _, id := range ids {
		if mach, ok := m.machines[id]; ok {
			result = append(result, mach)
		}
	}
	return result, nil
}

func (m *MockMachineRepository) NextPublicID(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fmt.Sprintf("%s%03d", constants.MachineIDPrefix, m.nextID+1), nil
}

// AddMachine seeds an existing machine, assigning an ID when unset.
func (m *MockMachineRepository) AddMachine(mach *machine.Machine) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mach.ID() == 0 {
		m.nextID++
		_ = mach.SetID(m.nextID)
	} else if mach.ID() > m.nextID {
		m.nextID = mach.ID()
	}
	m.machines[mach.ID()] = mach
}

func (m *MockMachineRepository) SetSaveError(err error)   { m.saveError = err }
func (m *MockMachineRepository) SetGetError(err error)    { m.getError = err }
func (m *MockMachineRepository) SetUpdateError(err error) { m.updateError = err }
func (m *MockMachineRepository) SetDeleteError(err error) { m.deleteError = err }

// MockUserRepository is an in-memory implementation of user.Repository.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]*user.User
	nextID uint

	saveError   error
	getError    error
	updateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[uint]*user.User)}
}

func (m *MockUserRepository) Save(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}

	for _, existing := range m.users {
		if existing.UserID() == u.UserID() {
			return errors.NewConflictError("user ID already taken")
		}
	}

	if u.ID() == 0 {
		m.nextID++
		if err := u.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.users[u.ID()] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	u, ok := m.users[id]
	if !ok {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}

func (m *MockUserRepository) GetByUserID(ctx context.Context, userID string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	for _, u := range m.users {
		if u.UserID() == userID {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *MockUserRepository) GetByMatricule(ctx context.Context, matricule string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	for _, u := range m.users {
		if u.Matricule() != nil && *u.Matricule() == matricule {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}

	if _, ok := m.users[u.ID()]; !ok {
		return errors.NewNotFoundError("user not found")
	}
	m.users[u.ID()] = u
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID() < all[j].UserID() })

	total := int64(len(all))
	if pageSize > 0 {
		start := (page - 1) * pageSize
		if start > len(all) {
			start = len(all)
		}
		end := start + pageSize
		if end > len(all) {
			end = len(all)
		}
		all = all[start:end]
	}
	return all, total, nil
}

func (m *MockUserRepository) ListByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

// AddUser seeds an existing account, assigning an ID when unset.
func (m *MockUserRepository) AddUser(u *user.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.ID() == 0 {
		m.nextID++
		_ = u.SetID(m.nextID)
	} else if u.ID() > m.nextID {
		m.nextID = u.ID()
	}
	m.users[u.ID()] = u
}

func (m *MockUserRepository) SetSaveError(err error)   { m.saveError = err }
func (m *MockUserRepository) SetGetError(err error)    { m.getError = err }
func (m *MockUserRepository) SetUpdateError(err error) { m.updateError = err }

// MockPublisher records published domain events.
type MockPublisher struct {
	mu     sync.RWMutex
	events []events.DomainEvent
	err    error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *MockPublisher) PublishAll(evts []events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, evts...)
	return nil
}

// Events returns all recorded events.
func (m *MockPublisher) Events() []events.DomainEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]events.DomainEvent(nil), m.events...)
}

func (m *MockPublisher) SetError(err error) { m.err = err }

// MockLogger discards all log output.
type MockLogger struct{}

func NewMockLogger() *MockLogger { return &MockLogger{} }

func (m *MockLogger) Debug(msg string, args ...any)                  {}
func (m *MockLogger) Info(msg string, args ...any)                   {}
func (m *MockLogger) Warn(msg string, args ...any)                   {}
func (m *MockLogger) Error(msg string, args ...any)                  {}
func (m *MockLogger) With(args ...any) logger.Interface              { return m }
func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *MockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
