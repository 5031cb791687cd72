package kitchen

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTicket(t *testing.T, courses ...CourseInput) *Ticket {
	t.Helper()
	ticket, err := NewTicket(uuid.New(), uuid.New(), "ORD-2001", courses)
	require.NoError(t, err)
	return ticket
}

func TestNewTicket(t *testing.T) {
	t.Run("fires the first course immediately", func(t *testing.T) {
		ticket := newTestTicket(t,
			CourseInput{PrepMinutes: 10, ItemCount: 2},
			CourseInput{PrepMinutes: 15, ItemCount: 3},
		)

		assert.Equal(t, CourseFired, ticket.Courses[0].Status)
		require.NotNil(t, ticket.Courses[0].FiredAt)
		assert.Equal(t, CoursePending, ticket.Courses[1].Status)
		assert.Equal(t, 5, ticket.TotalItems())
	})

	t.Run("requires at least one course", func(t *testing.T) {
		_, err := NewTicket(uuid.New(), uuid.New(), "ORD-1", nil)

		require.Error(t, err)
	})
}

func TestTicket_EvaluateAutoFire(t *testing.T) {
	t.Run("fires the next course inside the fire-ahead window", func(t *testing.T) {
		ticket := newTestTicket(t,
			CourseInput{PrepMinutes: 10, ItemCount: 2},
			CourseInput{PrepMinutes: 15, ItemCount: 3},
		)
		firedAt := time.Now().Add(-6 * time.Minute)
		ticket.Courses[0].FiredAt = &firedAt // 4 minutes remaining

		fired := ticket.EvaluateAutoFire(time.Now(), DefaultFireAheadMinutes)

		assert.Equal(t, []int{2}, fired)
		assert.Equal(t, CourseFired, ticket.Courses[1].Status)
	})

	t.Run("holds the next course while too much prep remains", func(t *testing.T) {
		ticket := newTestTicket(t,
			CourseInput{PrepMinutes: 20, ItemCount: 2},
			CourseInput{PrepMinutes: 15, ItemCount: 3},
		)
		firedAt := time.Now().Add(-2 * time.Minute)
		ticket.Courses[0].FiredAt = &firedAt // 18 minutes remaining

		fired := ticket.EvaluateAutoFire(time.Now(), DefaultFireAheadMinutes)

		assert.Empty(t, fired)
		assert.Equal(t, CoursePending, ticket.Courses[1].Status)
	})

	t.Run("cascades when overdue courses leave no remaining prep", func(t *testing.T) {
		ticket := newTestTicket(t,
			CourseInput{PrepMinutes: 5, ItemCount: 1},
			CourseInput{PrepMinutes: 0, ItemCount: 1},
			CourseInput{PrepMinutes: 10, ItemCount: 1},
		)
		firedAt := time.Now().Add(-30 * time.Minute)
		ticket.Courses[0].FiredAt = &firedAt

		fired := ticket.EvaluateAutoFire(time.Now(), DefaultFireAheadMinutes)

		assert.Equal(t, []int{2, 3}, fired)
	})

	t.Run("is inert on a completed ticket", func(t *testing.T) {
		ticket := newTestTicket(t, CourseInput{PrepMinutes: 1, ItemCount: 1})
		require.NoError(t, ticket.CompleteCourse(1, time.Now(), DefaultFireAheadMinutes))

		assert.Empty(t, ticket.EvaluateAutoFire(time.Now(), DefaultFireAheadMinutes))
	})
}

func TestTicket_CompleteCourse(t *testing.T) {
	t.Run("completing a course fires the next", func(t *testing.T) {
		ticket := newTestTicket(t,
			CourseInput{PrepMinutes: 10, ItemCount: 2},
			CourseInput{PrepMinutes: 15, ItemCount: 3},
		)

		require.NoError(t, ticket.CompleteCourse(1, time.Now(), DefaultFireAheadMinutes))

		assert.Equal(t, CourseCompleted, ticket.Courses[0].Status)
		assert.Equal(t, CourseFired, ticket.Courses[1].Status)
		assert.Equal(t, TicketStatusOpen, ticket.Status)
	})

	t.Run("completing the last course completes the ticket", func(t *testing.T) {
		ticket := newTestTicket(t,
			CourseInput{PrepMinutes: 10, ItemCount: 2},
			CourseInput{PrepMinutes: 15, ItemCount: 3},
		)
		now := time.Now()
		require.NoError(t, ticket.CompleteCourse(1, now, DefaultFireAheadMinutes))

		require.NoError(t, ticket.CompleteCourse(2, now, DefaultFireAheadMinutes))

		assert.Equal(t, TicketStatusCompleted, ticket.Status)
	})

	t.Run("rejects completing a pending course", func(t *testing.T) {
		ticket := newTestTicket(t,
			CourseInput{PrepMinutes: 20, ItemCount: 2},
			CourseInput{PrepMinutes: 15, ItemCount: 3},
		)

		require.Error(t, ticket.CompleteCourse(2, time.Now(), DefaultFireAheadMinutes))
	})

	t.Run("rejects unknown sequence", func(t *testing.T) {
		ticket := newTestTicket(t, CourseInput{PrepMinutes: 10, ItemCount: 1})

		require.Error(t, ticket.CompleteCourse(9, time.Now(), DefaultFireAheadMinutes))
	})
}

func TestTicket_Void(t *testing.T) {
	ticket := newTestTicket(t, CourseInput{PrepMinutes: 10, ItemCount: 1})

	require.NoError(t, ticket.Void())
	assert.Equal(t, TicketStatusVoided, ticket.Status)
	require.Error(t, ticket.Void())
}
