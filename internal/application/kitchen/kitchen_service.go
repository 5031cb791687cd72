package kitchen

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/kitchen"
	"github.com/venuehq/backend/internal/domain/shared"
)

// KitchenService routes tickets to stations and drives course firing
type KitchenService struct {
	stationRepo      kitchen.StationRepository
	ticketRepo       kitchen.TicketRepository
	fireAheadMinutes float64
	eventPublisher   shared.EventPublisher
}

// NewKitchenService creates a new KitchenService
func NewKitchenService(stationRepo kitchen.StationRepository, ticketRepo kitchen.TicketRepository) *KitchenService {
	return &KitchenService{
		stationRepo:      stationRepo,
		ticketRepo:       ticketRepo,
		fireAheadMinutes: kitchen.DefaultFireAheadMinutes,
	}
}

// SetFireAheadMinutes overrides the fire-ahead window
func (s *KitchenService) SetFireAheadMinutes(minutes float64) {
	if minutes > 0 {
		s.fireAheadMinutes = minutes
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *KitchenService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *KitchenService) publishTicketEvents(ctx context.Context, ticket *kitchen.Ticket) {
	if s.eventPublisher == nil {
		return
	}
	events := ticket.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	ticket.ClearDomainEvents()
}

// RegisterStation registers a prep station
func (s *KitchenService) RegisterStation(ctx context.Context, venueID uuid.UUID, req RegisterStationRequest) (*StationResponse, error) {
	station, err := kitchen.NewStation(venueID, req.Name, req.Capabilities, req.MaxLoad)
	if err != nil {
		return nil, err
	}
	if err := s.stationRepo.Save(ctx, station); err != nil {
		return nil, err
	}
	response := ToStationResponse(station)
	return &response, nil
}

// RouteTicket opens a ticket on the least-loaded capable station
func (s *KitchenService) RouteTicket(ctx context.Context, venueID uuid.UUID, req RouteTicketRequest) (*TicketResponse, error) {
	stations, err := s.stationRepo.FindActiveForVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	station, err := kitchen.SelectStation(stations, req.Capability)
	if err != nil {
		return nil, err
	}

	courses := make([]kitchen.CourseInput, 0, len(req.Courses))
	for _, c := range req.Courses {
		courses = append(courses, kitchen.CourseInput{
			PrepMinutes: c.PrepMinutes,
			ItemCount:   c.ItemCount,
		})
	}

	ticket, err := kitchen.NewTicket(venueID, station.ID, req.OrderRef, courses)
	if err != nil {
		return nil, err
	}
	if err := station.AddLoad(ticket.TotalItems()); err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	if err := s.stationRepo.Save(ctx, station); err != nil {
		return nil, err
	}
	s.publishTicketEvents(ctx, ticket)

	response := ToTicketResponse(ticket)
	return &response, nil
}

// GetTicket retrieves a ticket by ID
func (s *KitchenService) GetTicket(ctx context.Context, venueID, ticketID uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByIDForVenue(ctx, venueID, ticketID)
	if err != nil {
		return nil, err
	}
	response := ToTicketResponse(ticket)
	return &response, nil
}

// CompleteCourse marks a course done, auto-fires successors, and releases the
// completed course's load from the station. A completed ticket releases
// nothing extra: each course's items come off as the course finishes.
func (s *KitchenService) CompleteCourse(ctx context.Context, venueID, ticketID uuid.UUID, sequence int) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByIDForVenue(ctx, venueID, ticketID)
	if err != nil {
		return nil, err
	}

	var itemCount int
	for i := range ticket.Courses {
		if ticket.Courses[i].Sequence == sequence {
			itemCount = ticket.Courses[i].ItemCount
		}
	}

	if err := ticket.CompleteCourse(sequence, time.Now(), s.fireAheadMinutes); err != nil {
		return nil, err
	}

	station, err := s.stationRepo.FindByID(ctx, ticket.StationID)
	if err != nil {
		return nil, err
	}
	station.ReleaseLoad(itemCount)

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	if err := s.stationRepo.Save(ctx, station); err != nil {
		return nil, err
	}
	s.publishTicketEvents(ctx, ticket)

	response := ToTicketResponse(ticket)
	return &response, nil
}

// EvaluateAutoFire re-evaluates open tickets on a station and fires courses
// whose predecessors are inside the fire-ahead window
func (s *KitchenService) EvaluateAutoFire(ctx context.Context, stationID uuid.UUID) (int, error) {
	tickets, err := s.ticketRepo.FindOpenForStation(ctx, stationID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	totalFired := 0
	for _, ticket := range tickets {
		fired := ticket.EvaluateAutoFire(now, s.fireAheadMinutes)
		if len(fired) == 0 {
			continue
		}
		totalFired += len(fired)
		if err := s.ticketRepo.Save(ctx, ticket); err != nil {
			return totalFired, err
		}
		s.publishTicketEvents(ctx, ticket)
	}
	return totalFired, nil
}

// StationLoads reports every active station's current load
func (s *KitchenService) StationLoads(ctx context.Context, venueID uuid.UUID) (*LoadResponse, error) {
	stations, err := s.stationRepo.FindActiveForVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	response := &LoadResponse{Stations: make([]StationResponse, 0, len(stations))}
	for _, station := range stations {
		response.Stations = append(response.Stations, ToStationResponse(station))
	}
	return response, nil
}
