package kitchen

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/kitchen"
)

// StationResponse represents a prep station in API responses
type StationResponse struct {
	ID           uuid.UUID `json:"id"`
	VenueID      uuid.UUID `json:"venue_id"`
	Name         string    `json:"name"`
	Capabilities []string  `json:"capabilities"`
	MaxLoad      int       `json:"max_load"`
	CurrentLoad  int       `json:"current_load"`
	LoadRatio    float64   `json:"load_ratio"`
	Active       bool      `json:"active"`
}

// ToStationResponse maps a station to its response DTO
func ToStationResponse(station *kitchen.Station) StationResponse {
	return StationResponse{
		ID:           station.ID,
		VenueID:      station.VenueID,
		Name:         station.Name,
		Capabilities: station.Capabilities,
		MaxLoad:      station.MaxLoad,
		CurrentLoad:  station.CurrentLoad,
		LoadRatio:    station.LoadRatio(),
		Active:       station.Active,
	}
}

// TicketResponse represents a kitchen ticket in API responses
type TicketResponse struct {
	ID        uuid.UUID        `json:"id"`
	VenueID   uuid.UUID        `json:"venue_id"`
	OrderRef  string           `json:"order_ref"`
	StationID uuid.UUID        `json:"station_id"`
	Status    string           `json:"status"`
	Courses   []CourseResponse `json:"courses"`
	CreatedAt time.Time        `json:"created_at"`
}

// CourseResponse represents one course on a ticket
type CourseResponse struct {
	Sequence    int        `json:"sequence"`
	Status      string     `json:"status"`
	PrepMinutes int        `json:"prep_minutes"`
	ItemCount   int        `json:"item_count"`
	FiredAt     *time.Time `json:"fired_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ToTicketResponse maps a ticket to its response DTO
func ToTicketResponse(ticket *kitchen.Ticket) TicketResponse {
	courses := make([]CourseResponse, 0, len(ticket.Courses))
	for i := range ticket.Courses {
		c := &ticket.Courses[i]
		courses = append(courses, CourseResponse{
			Sequence:    c.Sequence,
			Status:      string(c.Status),
			PrepMinutes: c.PrepMinutes,
			ItemCount:   c.ItemCount,
			FiredAt:     c.FiredAt,
			CompletedAt: c.CompletedAt,
		})
	}
	return TicketResponse{
		ID:        ticket.ID,
		VenueID:   ticket.VenueID,
		OrderRef:  ticket.OrderRef,
		StationID: ticket.StationID,
		Status:    string(ticket.Status),
		Courses:   courses,
		CreatedAt: ticket.CreatedAt,
	}
}

// RegisterStationRequest registers a prep station
type RegisterStationRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=128"`
	Capabilities []string `json:"capabilities" binding:"required,min=1,dive,min=1"`
	MaxLoad      int      `json:"max_load" binding:"required,min=1"`
}

// CourseRequest describes one course when opening a ticket
type CourseRequest struct {
	PrepMinutes int `json:"prep_minutes" binding:"min=0"`
	ItemCount   int `json:"item_count" binding:"required,min=1"`
}

// RouteTicketRequest opens a ticket and routes it to a station
type RouteTicketRequest struct {
	OrderRef   string          `json:"order_ref" binding:"required,min=1,max=128"`
	Capability string          `json:"capability" binding:"required,min=1"`
	Courses    []CourseRequest `json:"courses" binding:"required,min=1,dive"`
}

// LoadResponse reports current station loads
type LoadResponse struct {
	Stations []StationResponse `json:"stations"`
}
