package issue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "mainta/internal/domain/issue/value_objects"
)

func newReportedIssue(t *testing.T) *Issue {
	t.Helper()
	iss, err := NewIssue(1, 2, "conveyor belt squeals under load", vo.UrgencyHigh)
	require.NoError(t, err)
	return iss
}

func TestNewIssue(t *testing.T) {
	tests := []struct {
		name        string
		machineID   uint
		reporterID  uint
		description string
		urgency     vo.Urgency
		wantErr     string
	}{
		{"valid issue", 1, 2, "belt worn", vo.UrgencyLow, ""},
		{"empty description", 1, 2, "", vo.UrgencyLow, "description is required"},
		{"whitespace description", 1, 2, "   \t", vo.UrgencyLow, "description is required"},
		{"invalid urgency", 1, 2, "belt worn", vo.Urgency("critical"), "invalid urgency"},
		{"missing machine", 0, 2, "belt worn", vo.UrgencyLow, "machine ID is required"},
		{"missing reporter", 1, 0, "belt worn", vo.UrgencyLow, "reporter ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iss, err := NewIssue(tt.machineID, tt.reporterID, tt.description, tt.urgency)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusReported, iss.Status())
			assert.Nil(t, iss.AssigneeID())
			assert.Nil(t, iss.AcceptedAt())
			assert.Nil(t, iss.ClosedAt())
			assert.Nil(t, iss.Resolution())
			assert.False(t, iss.CreatedAt().IsZero())
		})
	}
}

func TestIssue_Assign(t *testing.T) {
	t.Run("assign reported issue", func(t *testing.T) {
		iss := newReportedIssue(t)

		require.NoError(t, iss.Assign(7))

		assert.Equal(t, vo.StatusAssigned, iss.Status())
		require.NotNil(t, iss.AssigneeID())
		assert.Equal(t, uint(7), *iss.AssigneeID())
		require.NotNil(t, iss.AcceptedAt())
		assert.False(t, iss.AcceptedAt().Before(iss.CreatedAt()))
	})

	t.Run("double assignment rejected", func(t *testing.T) {
		iss := newReportedIssue(t)
		require.NoError(t, iss.Assign(7))

		err := iss.Assign(8)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyAssigned)
		assert.Equal(t, uint(7), *iss.AssigneeID())
	})

	t.Run("zero technician rejected", func(t *testing.T) {
		iss := newReportedIssue(t)
		assert.Error(t, iss.Assign(0))
	})
}

func TestIssue_Start(t *testing.T) {
	t.Run("assigned issue starts", func(t *testing.T) {
		iss := newReportedIssue(t)
		require.NoError(t, iss.Assign(7))

		require.NoError(t, iss.Start())
		assert.Equal(t, vo.StatusInProgress, iss.Status())
	})

	t.Run("reported issue cannot start", func(t *testing.T) {
		iss := newReportedIssue(t)

		err := iss.Start()
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, vo.StatusReported, iss.Status())
	})

	t.Run("closed issue cannot start", func(t *testing.T) {
		iss := newReportedIssue(t)
		require.NoError(t, iss.Assign(7))
		require.NoError(t, iss.Close("replaced belt"))

		assert.ErrorIs(t, iss.Start(), ErrInvalidTransition)
	})
}

func TestIssue_Close(t *testing.T) {
	t.Run("close from in_progress", func(t *testing.T) {
		iss := newReportedIssue(t)
		require.NoError(t, iss.Assign(7))
		require.NoError(t, iss.Start())

		require.NoError(t, iss.Close("replaced belt"))

		assert.Equal(t, vo.StatusClosed, iss.Status())
		require.NotNil(t, iss.Resolution())
		assert.Equal(t, "replaced belt", *iss.Resolution())
		require.NotNil(t, iss.ClosedAt())
		assert.False(t, iss.ClosedAt().Before(*iss.AcceptedAt()))
	})

	t.Run("close straight from assigned", func(t *testing.T) {
		iss := newReportedIssue(t)
		require.NoError(t, iss.Assign(7))

		require.NoError(t, iss.Close("false alarm, sensor glitch"))
		assert.Equal(t, vo.StatusClosed, iss.Status())
	})

	t.Run("empty resolution rejected", func(t *testing.T) {
		iss := newReportedIssue(t)
		require.NoError(t, iss.Assign(7))

		assert.ErrorIs(t, iss.Close(""), ErrEmptyResolution)
		assert.ErrorIs(t, iss.Close("   \n"), ErrEmptyResolution)
		assert.Equal(t, vo.StatusAssigned, iss.Status())
		assert.Nil(t, iss.ClosedAt())
	})

	t.Run("resolution is trimmed", func(t *testing.T) {
		iss := newReportedIssue(t)
		require.NoError(t, iss.Assign(7))

		require.NoError(t, iss.Close("  tightened coupling  "))
		assert.Equal(t, "tightened coupling", *iss.Resolution())
	})

	t.Run("cannot close reported issue", func(t *testing.T) {
		iss := newReportedIssue(t)

		assert.ErrorIs(t, iss.Close("nope"), ErrInvalidTransition)
	})

	t.Run("cannot close twice", func(t *testing.T) {
		iss := newReportedIssue(t)
		require.NoError(t, iss.Assign(7))
		require.NoError(t, iss.Close("done"))

		assert.ErrorIs(t, iss.Close("again"), ErrClosed)
	})
}

func TestIssue_IsAssignedTo(t *testing.T) {
	iss := newReportedIssue(t)
	assert.False(t, iss.IsAssignedTo(7))

	require.NoError(t, iss.Assign(7))
	assert.True(t, iss.IsAssignedTo(7))
	assert.False(t, iss.IsAssignedTo(8))
}

func TestIssue_Durations(t *testing.T) {
	t.Run("open issue has no durations", func(t *testing.T) {
		iss := newReportedIssue(t)

		_, ok := iss.ReactionTime()
		assert.False(t, ok)
		_, ok = iss.ResolutionTime()
		assert.False(t, ok)
	})

	t.Run("closed issue reports both", func(t *testing.T) {
		created := time.Now().Add(-2 * time.Hour)
		accepted := created.Add(30 * time.Minute)
		closed := created.Add(90 * time.Minute)
		res := "fixed"

		assignee := uint(7)
		iss, err := ReconstructIssue(1, "ISS001", 1, 2, "belt worn", vo.UrgencyLow,
			vo.StatusClosed, &assignee, &res, created, &accepted, &closed, closed)
		require.NoError(t, err)

		reaction, ok := iss.ReactionTime()
		require.True(t, ok)
		assert.Equal(t, 30*time.Minute, reaction)

		resolution, ok := iss.ResolutionTime()
		require.True(t, ok)
		assert.Equal(t, 90*time.Minute, resolution)
	})
}

func TestNewNote(t *testing.T) {
	t.Run("valid note", func(t *testing.T) {
		note, err := NewNote(1, 7, "  waiting on spare part  ")
		require.NoError(t, err)
		assert.Equal(t, "waiting on spare part", note.Text())
		assert.Equal(t, uint(1), note.IssueID())
		assert.Equal(t, uint(7), note.AuthorID())
	})

	t.Run("empty text rejected", func(t *testing.T) {
		_, err := NewNote(1, 7, "   ")
		assert.Error(t, err)
	})

	t.Run("missing issue rejected", func(t *testing.T) {
		_, err := NewNote(0, 7, "text")
		assert.Error(t, err)
	})
}
