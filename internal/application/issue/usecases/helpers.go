package usecases

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"mainta/internal/application/issue/dto"
	"mainta/internal/domain/issue"
	"mainta/internal/domain/machine"
	"mainta/internal/domain/user"
)

// htmlSanitizer strips all markup from user-supplied text before it is
// stored or broadcast.
var htmlSanitizer = bluemonday.StrictPolicy()

func sanitizeText(s string) string {
	return strings.TrimSpace(htmlSanitizer.Sanitize(s))
}

// refResolver batch-resolves the machine and user references of issues
// into display payloads, avoiding per-row lookups in list responses.
type refResolver struct {
	machineRepo machine.Repository
	userRepo    user.Repository
}

func newRefResolver(machineRepo machine.Repository, userRepo user.Repository) *refResolver {
	return &refResolver{machineRepo: machineRepo, userRepo: userRepo}
}

type refMaps struct {
	machines map[uint]*machine.Machine
	users    map[uint]*user.User
}

func (r *refResolver) load(ctx context.Context, issues []*issue.Issue, extraUserIDs ...uint) (*refMaps, error) {
	machineIDSet := make(map[uint]struct{})
	userIDSet := make(map[uint]struct{})

	for _, iss := range issues {
		machineIDSet[iss.MachineID()] = struct{}{}
		userIDSet[iss.ReporterID()] = struct{}{}
		if iss.AssigneeID() != nil {
			userIDSet[*iss.AssigneeID()] = struct{}{}
		}
	}
	for _, id := range extraUserIDs {
		userIDSet[id] = struct{}{}
	}

	machineIDs := make([]uint, 0, len(machineIDSet))
	for id := range machineIDSet {
		machineIDs = append(machineIDs, id)
	}
	userIDs := make([]uint, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}

	machines, err := r.machineRepo.ListByIDs(ctx, machineIDs)
	if err != nil {
		return nil, err
	}
	users, err := r.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	maps := &refMaps{
		machines: make(map[uint]*machine.Machine, len(machines)),
		users:    make(map[uint]*user.User, len(users)),
	}
	for _, m := range machines {
		maps.machines[m.ID()] = m
	}
	for _, u := range users {
		maps.users[u.ID()] = u
	}

	return maps, nil
}

func (m *refMaps) machineRef(id uint) dto.MachineRef {
	if mach, ok := m.machines[id]; ok {
		return dto.MachineRef{ID: mach.PublicID(), Name: mach.Name()}
	}
	return dto.MachineRef{}
}

func (m *refMaps) userRef(id uint) dto.UserRef {
	if u, ok := m.users[id]; ok {
		return dto.UserRef{ID: u.UserID(), Name: u.Name()}
	}
	return dto.UserRef{}
}

func (m *refMaps) toDTO(iss *issue.Issue) dto.IssueDTO {
	d := dto.IssueDTO{
		ID:          iss.PublicID(),
		Machine:     m.machineRef(iss.MachineID()),
		Description: iss.Description(),
		Urgency:     iss.Urgency().String(),
		Status:      iss.Status().String(),
		ReportedBy:  m.userRef(iss.ReporterID()),
		Resolution:  iss.Resolution(),
		CreatedAt:   iss.CreatedAt(),
		AcceptedAt:  iss.AcceptedAt(),
		ClosedAt:    iss.ClosedAt(),
	}
	if iss.AssigneeID() != nil {
		ref := m.userRef(*iss.AssigneeID())
		d.AssignedTo = &ref
	}
	return d
}

func (m *refMaps) noteToDTO(issuePublicID string, note *issue.Note) dto.NoteDTO {
	return dto.NoteDTO{
		ID:        note.ID(),
		IssueID:   issuePublicID,
		Author:    m.userRef(note.AuthorID()),
		Text:      note.Text(),
		CreatedAt: note.CreatedAt(),
	}
}

// snapshot builds the event payload for the issue using already resolved
// references.
func (m *refMaps) snapshot(iss *issue.Issue) issue.Snapshot {
	s := issue.Snapshot{
		ID:          iss.PublicID(),
		MachineID:   m.machineRef(iss.MachineID()).ID,
		Description: iss.Description(),
		Urgency:     iss.Urgency().String(),
		Status:      iss.Status().String(),
		ReportedBy:  m.userRef(iss.ReporterID()).ID,
		Resolution:  iss.Resolution(),
		CreatedAt:   iss.CreatedAt(),
		AcceptedAt:  iss.AcceptedAt(),
		ClosedAt:    iss.ClosedAt(),
	}
	if iss.AssigneeID() != nil {
		assignee := m.userRef(*iss.AssigneeID()).ID
		s.AssignedTo = &assignee
	}
	return s
}
