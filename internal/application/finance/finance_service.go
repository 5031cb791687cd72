package finance

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/venuehq/backend/internal/domain/finance"
	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// FinanceService handles cash drawer sessions
type FinanceService struct {
	sessionRepo    finance.Repository
	bands          finance.VarianceBands
	eventPublisher shared.EventPublisher
}

// NewFinanceService creates a new FinanceService with the standard variance bands
func NewFinanceService(sessionRepo finance.Repository) *FinanceService {
	return &FinanceService{
		sessionRepo: sessionRepo,
		bands:       finance.DefaultVarianceBands(),
	}
}

// SetVarianceBands overrides the close-out severity bands
func (s *FinanceService) SetVarianceBands(bands finance.VarianceBands) {
	s.bands = bands
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *FinanceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *FinanceService) publishDomainEvents(ctx context.Context, session *finance.CashSession) {
	if s.eventPublisher == nil {
		return
	}
	events := session.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	session.ClearDomainEvents()
}

// OpenSession opens a drawer with a starting float. A drawer can hold only
// one open session at a time.
func (s *FinanceService) OpenSession(ctx context.Context, venueID uuid.UUID, req OpenSessionRequest) (*SessionResponse, error) {
	open, err := s.sessionRepo.FindOpenByDrawer(ctx, venueID, req.DrawerName)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if open != nil {
		return nil, shared.NewDomainError("DRAWER_IN_USE", "Drawer already has an open session")
	}

	session, err := finance.NewCashSession(venueID, req.DrawerName, valueobject.NewMoneyUSD(req.OpeningFloat))
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	response := ToSessionResponse(session)
	return &response, nil
}

// GetSession retrieves a session by ID
func (s *FinanceService) GetSession(ctx context.Context, venueID, sessionID uuid.UUID) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindByIDForVenue(ctx, venueID, sessionID)
	if err != nil {
		return nil, err
	}
	response := ToSessionResponse(session)
	return &response, nil
}

// RecordSale adds a cash sale to an open session
func (s *FinanceService) RecordSale(ctx context.Context, venueID, sessionID uuid.UUID, req RecordSaleRequest) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindByIDForVenue(ctx, venueID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.RecordSale(valueobject.NewMoneyUSD(req.Amount)); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	response := ToSessionResponse(session)
	return &response, nil
}

// RecordDrop moves cash from the drawer to the safe
func (s *FinanceService) RecordDrop(ctx context.Context, venueID, sessionID uuid.UUID, req RecordDropRequest) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindByIDForVenue(ctx, venueID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.RecordDrop(valueobject.NewMoneyUSD(req.Amount)); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	response := ToSessionResponse(session)
	return &response, nil
}

// CloseSession counts the drawer and records variance and severity
func (s *FinanceService) CloseSession(ctx context.Context, venueID, sessionID uuid.UUID, req CloseSessionRequest) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindByIDForVenue(ctx, venueID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Close(valueobject.NewMoneyUSD(req.CountedAmount), s.bands); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, session)

	response := ToSessionResponse(session)
	return &response, nil
}

// List retrieves the venue's sessions with pagination
func (s *FinanceService) List(ctx context.Context, venueID uuid.UUID, filter shared.Filter) (*shared.Paginated[SessionResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	sessions, total, err := s.sessionRepo.FindAllForVenue(ctx, venueID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, ToSessionResponse(&sessions[i]))
	}
	paginated := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &paginated, nil
}
