package kitchen

import (
	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/shared"
)

// Event types emitted by the kitchen domain
const (
	EventTypeTicketRouted    = "kitchen.ticket_routed"
	EventTypeCourseFired     = "kitchen.course_fired"
	EventTypeTicketCompleted = "kitchen.ticket_completed"
)

// TicketRoutedEvent is emitted when a ticket is assigned to a station
type TicketRoutedEvent struct {
	shared.BaseDomainEvent
	OrderRef  string    `json:"order_ref"`
	StationID uuid.UUID `json:"station_id"`
	ItemCount int       `json:"item_count"`
}

// NewTicketRoutedEvent creates a TicketRoutedEvent
func NewTicketRoutedEvent(ticket *Ticket) *TicketRoutedEvent {
	return &TicketRoutedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketRouted, "KitchenTicket", ticket.ID, ticket.VenueID),
		OrderRef:        ticket.OrderRef,
		StationID:       ticket.StationID,
		ItemCount:       ticket.TotalItems(),
	}
}

// CourseFiredEvent is emitted when a course starts prep
type CourseFiredEvent struct {
	shared.BaseDomainEvent
	OrderRef string `json:"order_ref"`
	Sequence int    `json:"sequence"`
}

// NewCourseFiredEvent creates a CourseFiredEvent
func NewCourseFiredEvent(ticket *Ticket, sequence int) *CourseFiredEvent {
	return &CourseFiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCourseFired, "KitchenTicket", ticket.ID, ticket.VenueID),
		OrderRef:        ticket.OrderRef,
		Sequence:        sequence,
	}
}

// TicketCompletedEvent is emitted when every course on a ticket is done
type TicketCompletedEvent struct {
	shared.BaseDomainEvent
	OrderRef  string    `json:"order_ref"`
	StationID uuid.UUID `json:"station_id"`
}

// NewTicketCompletedEvent creates a TicketCompletedEvent
func NewTicketCompletedEvent(ticket *Ticket) *TicketCompletedEvent {
	return &TicketCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketCompleted, "KitchenTicket", ticket.ID, ticket.VenueID),
		OrderRef:        ticket.OrderRef,
		StationID:       ticket.StationID,
	}
}
