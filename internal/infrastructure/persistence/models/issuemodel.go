package models

type IssueModel struct {
	ID          uint    `gorm:"primaryKey"`
	PublicID    string  `gorm:"uniqueIndex;size:20;not null"`
	MachineID   uint    `gorm:"not null;index"`
	ReporterID  uint    `gorm:"not null;index"`
	Description string  `gorm:"type:text;not null"`
	Urgency     string  `gorm:"size:20;not null;index"`
	Status      string  `gorm:"size:20;not null;index"`
	AssigneeID  *uint   `gorm:"index"`
	Resolution  *string `gorm:"type:text"`
	AcceptedAt  *int64
	ClosedAt    *int64
	CreatedAt   int64 `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt   int64 `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (IssueModel) TableName() string {
	return "issues"
}

type NoteModel struct {
	ID        uint   `gorm:"primaryKey"`
	IssueID   uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (NoteModel) TableName() string {
	return "issue_notes"
}
