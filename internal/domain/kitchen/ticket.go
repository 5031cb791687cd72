package kitchen

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/shared"
)

// TicketStatus represents the lifecycle state of a kitchen ticket
type TicketStatus string

const (
	TicketStatusOpen      TicketStatus = "open"
	TicketStatusCompleted TicketStatus = "completed"
	TicketStatusVoided    TicketStatus = "voided"
)

// CourseStatus represents the state of one course on a ticket
type CourseStatus string

const (
	CoursePending   CourseStatus = "pending"
	CourseFired     CourseStatus = "fired"
	CourseCompleted CourseStatus = "completed"
)

// DefaultFireAheadMinutes is how much remaining prep on the current course
// triggers firing the next one.
const DefaultFireAheadMinutes = 5

// Ticket is the aggregate root for a coursed kitchen ticket. The first course
// fires on creation; later courses fire as earlier ones near completion.
type Ticket struct {
	shared.VenueAggregateRoot
	OrderRef  string       `gorm:"size:128;not null;index"`
	StationID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Status    TicketStatus `gorm:"size:16;not null;default:'open'"`

	Courses []Course `gorm:"foreignKey:TicketID;references:ID"`
}

// TableName returns the table name for GORM
func (Ticket) TableName() string {
	return "kitchen_tickets"
}

// Course is one seating course on a ticket
type Course struct {
	shared.BaseEntity
	TicketID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Sequence    int          `gorm:"not null"` // 1-based
	Status      CourseStatus `gorm:"size:16;not null;default:'pending'"`
	PrepMinutes int          `gorm:"not null"` // Estimated prep for the longest item
	ItemCount   int          `gorm:"not null"`
	FiredAt     *time.Time
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (Course) TableName() string {
	return "kitchen_courses"
}

// CourseInput describes a course when opening a ticket
type CourseInput struct {
	PrepMinutes int
	ItemCount   int
}

// NewTicket opens a ticket routed to a station and fires its first course
func NewTicket(venueID, stationID uuid.UUID, orderRef string, courses []CourseInput) (*Ticket, error) {
	if orderRef == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_REF", "Order reference is required")
	}
	if len(courses) == 0 {
		return nil, shared.NewDomainError("INVALID_TICKET", "Ticket requires at least one course")
	}

	ticket := &Ticket{
		VenueAggregateRoot: shared.NewVenueAggregateRoot(venueID),
		OrderRef:           orderRef,
		StationID:          stationID,
		Status:             TicketStatusOpen,
		Courses:            make([]Course, 0, len(courses)),
	}

	now := time.Now()
	for i, input := range courses {
		if input.PrepMinutes < 0 || input.ItemCount <= 0 {
			return nil, shared.NewDomainError("INVALID_COURSE", "Course needs a non-negative prep time and at least one item")
		}
		course := Course{
			BaseEntity:  shared.NewBaseEntity(),
			TicketID:    ticket.ID,
			Sequence:    i + 1,
			Status:      CoursePending,
			PrepMinutes: input.PrepMinutes,
			ItemCount:   input.ItemCount,
		}
		if i == 0 {
			course.Status = CourseFired
			course.FiredAt = &now
		}
		ticket.Courses = append(ticket.Courses, course)
	}

	ticket.AddDomainEvent(NewTicketRoutedEvent(ticket))
	return ticket, nil
}

// TotalItems returns the item count across all courses
func (t *Ticket) TotalItems() int {
	total := 0
	for i := range t.Courses {
		total += t.Courses[i].ItemCount
	}
	return total
}

// RemainingPrepMinutes estimates the prep time left on a course at the given
// instant. Pending courses report their full estimate.
func (c *Course) RemainingPrepMinutes(now time.Time) float64 {
	switch c.Status {
	case CourseCompleted:
		return 0
	case CourseFired:
		elapsed := now.Sub(*c.FiredAt).Minutes()
		remaining := float64(c.PrepMinutes) - elapsed
		if remaining < 0 {
			return 0
		}
		return remaining
	default:
		return float64(c.PrepMinutes)
	}
}

// EvaluateAutoFire fires every pending course whose predecessor is completed
// or has at most fireAheadMinutes of estimated prep left. Returns the
// sequences fired. The evaluation mutates only course state.
func (t *Ticket) EvaluateAutoFire(now time.Time, fireAheadMinutes float64) []int {
	if t.Status != TicketStatusOpen {
		return nil
	}

	fired := make([]int, 0)
	for i := 1; i < len(t.Courses); i++ {
		course := &t.Courses[i]
		if course.Status != CoursePending {
			continue
		}
		prev := &t.Courses[i-1]
		if prev.Status == CoursePending {
			break
		}
		if prev.Status == CourseFired && prev.RemainingPrepMinutes(now) > fireAheadMinutes {
			break
		}
		firedAt := now
		course.Status = CourseFired
		course.FiredAt = &firedAt
		fired = append(fired, course.Sequence)
		t.AddDomainEvent(NewCourseFiredEvent(t, course.Sequence))
	}

	if len(fired) > 0 {
		t.UpdatedAt = now
		t.IncrementVersion()
	}
	return fired
}

// CompleteCourse marks a fired course done and auto-fires successors.
// Completing the last course completes the ticket.
func (t *Ticket) CompleteCourse(sequence int, now time.Time, fireAheadMinutes float64) error {
	if t.Status != TicketStatusOpen {
		return shared.ErrInvalidState
	}

	var target *Course
	for i := range t.Courses {
		if t.Courses[i].Sequence == sequence {
			target = &t.Courses[i]
			break
		}
	}
	if target == nil {
		return shared.ErrNotFound
	}
	if target.Status != CourseFired {
		return shared.NewDomainError("COURSE_NOT_FIRED", "Only a fired course can be completed")
	}

	completedAt := now
	target.Status = CourseCompleted
	target.CompletedAt = &completedAt
	t.UpdatedAt = now
	t.IncrementVersion()

	t.EvaluateAutoFire(now, fireAheadMinutes)

	if t.allCoursesCompleted() {
		t.Status = TicketStatusCompleted
		t.AddDomainEvent(NewTicketCompletedEvent(t))
	}
	return nil
}

// Void cancels an open ticket
func (t *Ticket) Void() error {
	if t.Status != TicketStatusOpen {
		return shared.ErrInvalidState
	}
	t.Status = TicketStatusVoided
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

func (t *Ticket) allCoursesCompleted() bool {
	for i := range t.Courses {
		if t.Courses[i].Status != CourseCompleted {
			return false
		}
	}
	return true
}
