package issue

import (
	"fmt"
	"strings"
	"time"
)

const maxNoteLength = 2000

// Note is a free-form progress entry on an issue. Notes stay writable
// after closure; they never mutate the issue lifecycle.
type Note struct {
	id        uint
	issueID   uint
	authorID  uint
	text      string
	createdAt time.Time
}

func NewNote(issueID, authorID uint, text string) (*Note, error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return nil, fmt.Errorf("note text is required")
	}
	if len(text) > maxNoteLength {
		return nil, fmt.Errorf("note text exceeds maximum length of %d characters", maxNoteLength)
	}
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}

	return &Note{
		issueID:   issueID,
		authorID:  authorID,
		text:      text,
		createdAt: time.Now(),
	}, nil
}

func ReconstructNote(id, issueID, authorID uint, text string, createdAt time.Time) (*Note, error) {
	if id == 0 {
		return nil, fmt.Errorf("note ID cannot be zero")
	}
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}

	return &Note{
		id:        id,
		issueID:   issueID,
		authorID:  authorID,
		text:      text,
		createdAt: createdAt,
	}, nil
}

func (n *Note) ID() uint {
	return n.id
}

func (n *Note) IssueID() uint {
	return n.issueID
}

func (n *Note) AuthorID() uint {
	return n.authorID
}

func (n *Note) Text() string {
	return n.text
}

func (n *Note) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Note) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("note ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("note ID cannot be zero")
	}
	n.id = id
	return nil
}
