package dto

import "time"

// UserRef identifies a user in API payloads by public ID and name.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MachineRef identifies a machine in API payloads.
type MachineRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type IssueDTO struct {
	ID          string     `json:"id"`
	Machine     MachineRef `json:"machine"`
	Description string     `json:"description"`
	Urgency     string     `json:"urgency"`
	Status      string     `json:"status"`
	ReportedBy  UserRef    `json:"reported_by"`
	AssignedTo  *UserRef   `json:"assigned_to,omitempty"`
	Resolution  *string    `json:"resolution,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	Notes       []NoteDTO  `json:"notes,omitempty"`
}

type NoteDTO struct {
	ID        uint      `json:"id"`
	IssueID   string    `json:"issue_id"`
	Author    UserRef   `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
