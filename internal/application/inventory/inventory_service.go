package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/backend/internal/domain/inventory"
	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

// DefaultLookbackDays bounds valuation and demand windows when the request
// does not specify one.
const DefaultLookbackDays = 90

// InventoryService handles stock operations and inventory intelligence reports
type InventoryService struct {
	itemRepo       inventory.StockItemRepository
	movementRepo   inventory.StockMovementRepository
	eventPublisher shared.EventPublisher
	lookbackDays   int
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	itemRepo inventory.StockItemRepository,
	movementRepo inventory.StockMovementRepository,
) *InventoryService {
	return &InventoryService{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		lookbackDays: DefaultLookbackDays,
	}
}

// SetLookbackDays overrides the default demand and valuation window
func (s *InventoryService) SetLookbackDays(days int) {
	if days > 0 {
		s.lookbackDays = days
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *InventoryService) publishDomainEvents(ctx context.Context, item *inventory.StockItem) {
	if s.eventPublisher == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	item.ClearDomainEvents()
}

// CreateItem registers a product at a location
func (s *InventoryService) CreateItem(ctx context.Context, venueID uuid.UUID, req CreateItemRequest) (*StockItemResponse, error) {
	existing, err := s.itemRepo.FindByLocationAndProduct(ctx, venueID, req.LocationID, req.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	item, err := inventory.NewStockItem(venueID, req.LocationID, req.ProductID, req.ProductName)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToStockItemResponse(item)
	return &response, nil
}

// GetItem retrieves a stock item by ID
func (s *InventoryService) GetItem(ctx context.Context, venueID, itemID uuid.UUID) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByIDForVenue(ctx, venueID, itemID)
	if err != nil {
		return nil, err
	}
	response := ToStockItemResponse(item)
	return &response, nil
}

// ListByLocation retrieves stock items at a location with pagination
func (s *InventoryService) ListByLocation(ctx context.Context, venueID, locationID uuid.UUID, filter shared.Filter) (*shared.Paginated[StockItemResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, total, err := s.itemRepo.FindByLocation(ctx, venueID, locationID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToStockItemResponse(&items[i]))
	}
	paginated := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// Receive records an inbound receipt and updates the moving average cost
func (s *InventoryService) Receive(ctx context.Context, venueID uuid.UUID, req ReceiveStockRequest) (*MovementResponse, error) {
	item, err := s.itemRepo.FindByLocationAndProduct(ctx, venueID, req.LocationID, req.ProductID)
	if err != nil {
		return nil, err
	}

	movement, err := item.Receive(req.Quantity, valueobject.NewMoneyUSD(req.UnitCost))
	if err != nil {
		return nil, err
	}
	movement.Reference = req.Reference

	if err := s.itemRepo.SaveWithMovement(ctx, item, movement); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, item)

	response := ToMovementResponse(movement)
	return &response, nil
}

// RecordSale deducts sold stock at the current unit cost
func (s *InventoryService) RecordSale(ctx context.Context, venueID uuid.UUID, req RecordSaleRequest) (*MovementResponse, error) {
	return s.deduct(ctx, venueID, req.LocationID, req.ProductID, req.Quantity, req.Reference, false)
}

// RecordWaste deducts wasted stock; the movement carries reason "waste"
func (s *InventoryService) RecordWaste(ctx context.Context, venueID uuid.UUID, req RecordWasteRequest) (*MovementResponse, error) {
	return s.deduct(ctx, venueID, req.LocationID, req.ProductID, req.Quantity, req.Reference, true)
}

func (s *InventoryService) deduct(ctx context.Context, venueID, locationID, productID uuid.UUID, quantity decimal.Decimal, reference string, waste bool) (*MovementResponse, error) {
	item, err := s.itemRepo.FindByLocationAndProduct(ctx, venueID, locationID, productID)
	if err != nil {
		return nil, err
	}

	var movement *inventory.StockMovement
	if waste {
		movement, err = item.RecordWaste(quantity, reference)
	} else {
		movement, err = item.RecordSale(quantity, reference)
	}
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.SaveWithMovement(ctx, item, movement); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, item)

	response := ToMovementResponse(movement)
	return &response, nil
}

// Transfer moves stock from one location to another at the sender's cost
func (s *InventoryService) Transfer(ctx context.Context, venueID uuid.UUID, req TransferStockRequest) ([]MovementResponse, error) {
	if req.FromLocationID == req.ToLocationID {
		return nil, shared.NewDomainError("INVALID_TRANSFER", "Source and destination locations must differ")
	}

	source, err := s.itemRepo.FindByLocationAndProduct(ctx, venueID, req.FromLocationID, req.ProductID)
	if err != nil {
		return nil, err
	}

	dest, err := s.itemRepo.FindByLocationAndProduct(ctx, venueID, req.ToLocationID, req.ProductID)
	if errors.Is(err, shared.ErrNotFound) {
		dest, err = inventory.NewStockItem(venueID, req.ToLocationID, req.ProductID, source.ProductName)
	}
	if err != nil {
		return nil, err
	}

	transferCost := valueobject.NewMoneyUSD(source.UnitCost)
	outMovement, err := source.TransferOut(req.Quantity, req.Reference)
	if err != nil {
		return nil, err
	}
	inMovement, err := dest.TransferIn(req.Quantity, transferCost, req.Reference)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.SaveWithMovement(ctx, source, outMovement); err != nil {
		return nil, err
	}
	if err := s.itemRepo.SaveWithMovement(ctx, dest, inMovement); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, source)
	s.publishDomainEvents(ctx, dest)

	return []MovementResponse{ToMovementResponse(outMovement), ToMovementResponse(inMovement)}, nil
}

// Adjust sets on-hand to a counted quantity
func (s *InventoryService) Adjust(ctx context.Context, venueID uuid.UUID, req AdjustStockRequest) (*MovementResponse, error) {
	item, err := s.itemRepo.FindByLocationAndProduct(ctx, venueID, req.LocationID, req.ProductID)
	if err != nil {
		return nil, err
	}

	movement, err := item.Adjust(req.CountedQuantity, req.Reason)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.SaveWithMovement(ctx, item, movement); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, item)

	response := ToMovementResponse(movement)
	return &response, nil
}

// SetLevels updates par level and reorder point for an item
func (s *InventoryService) SetLevels(ctx context.Context, venueID uuid.UUID, req SetLevelsRequest) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByLocationAndProduct(ctx, venueID, req.LocationID, req.ProductID)
	if err != nil {
		return nil, err
	}

	if req.ParLevel != nil {
		if err := item.SetParLevel(*req.ParLevel); err != nil {
			return nil, err
		}
	}
	if req.ReorderPoint != nil {
		if err := item.SetReorderPoint(*req.ReorderPoint); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToStockItemResponse(item)
	return &response, nil
}

// Valuation values a location's on-hand stock using the requested method.
// Receipt movements inside the lookback window form the cost layers; items
// with no receipts fall back to their moving average cost.
func (s *InventoryService) Valuation(ctx context.Context, venueID uuid.UUID, req ValuationRequest) (*ValuationResponse, error) {
	method, err := inventory.ParseValuationMethod(req.Method)
	if err != nil {
		return nil, err
	}
	lookback := req.LookbackDays
	if lookback <= 0 {
		lookback = s.lookbackDays
	}

	items, _, err := s.itemRepo.FindByLocation(ctx, venueID, req.LocationID, allRows())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := now.AddDate(0, 0, -lookback)
	receipts, err := s.movementRepo.FindReceipts(ctx, venueID, req.LocationID, from, now)
	if err != nil {
		return nil, err
	}

	layersByProduct := make(map[uuid.UUID][]inventory.CostLayer)
	for i := range receipts {
		r := &receipts[i]
		layersByProduct[r.ProductID] = append(layersByProduct[r.ProductID], inventory.CostLayer{
			Quantity:   r.Quantity,
			UnitCost:   r.UnitCost,
			OccurredAt: r.OccurredAt,
		})
	}

	response := &ValuationResponse{
		LocationID: req.LocationID,
		Method:     string(method),
		AsOf:       now,
		Lines:      make([]ValuationLine, 0, len(items)),
		TotalValue: decimal.Zero,
	}
	for i := range items {
		item := &items[i]
		value := inventory.ItemValue(method, inventory.ItemValuationInput{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			OnHand:       item.OnHand,
			Layers:       layersByProduct[item.ProductID],
			FallbackCost: item.UnitCost,
		})
		response.Lines = append(response.Lines, ValuationLine{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			OnHand:      item.OnHand,
			Value:       value,
		})
		response.TotalValue = response.TotalValue.Add(value)
	}
	return response, nil
}

// ClassifyABC buckets a location's items into A/B/C by cumulative value share
func (s *InventoryService) ClassifyABC(ctx context.Context, venueID uuid.UUID, req ABCRequest) (*ABCResponse, error) {
	thresholds := inventory.DefaultABCThresholds()
	if req.ThresholdA != nil {
		thresholds.A = decimal.NewFromFloat(*req.ThresholdA)
	}
	if req.ThresholdB != nil {
		thresholds.B = decimal.NewFromFloat(*req.ThresholdB)
	}
	if thresholds.B.LessThan(thresholds.A) {
		return nil, shared.NewDomainError("INVALID_THRESHOLDS", "B threshold must not be below A threshold")
	}

	items, _, err := s.itemRepo.FindByLocation(ctx, venueID, req.LocationID, allRows())
	if err != nil {
		return nil, err
	}

	inputs := make([]inventory.ABCInput, 0, len(items))
	for i := range items {
		item := &items[i]
		inputs = append(inputs, inventory.ABCInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			TotalValue:  item.TotalValue().Amount(),
		})
	}

	return &ABCResponse{
		LocationID: req.LocationID,
		Lines:      inventory.ClassifyABC(inputs, thresholds),
	}, nil
}

// COGS sums sale and waste movement value inside [from, to)
func (s *InventoryService) COGS(ctx context.Context, venueID uuid.UUID, req COGSRequest) (*COGSResponse, error) {
	if !req.From.Before(req.To) {
		return nil, shared.NewDomainError("INVALID_WINDOW", "From must be before to")
	}

	movements, err := s.movementRepo.FindByLocation(ctx, venueID, req.LocationID, req.From, req.To)
	if err != nil {
		return nil, err
	}

	return &COGSResponse{
		LocationID: req.LocationID,
		From:       req.From,
		To:         req.To,
		Total:      inventory.CostOfGoodsSold(movements, req.From, req.To),
	}, nil
}

// SuggestReorders computes EOQ suggestions for items at or below their reorder
// point, deriving annual demand from outbound movements in the lookback window.
func (s *InventoryService) SuggestReorders(ctx context.Context, venueID uuid.UUID, req ReorderRequest) (*ReorderResponse, error) {
	lookback := req.LookbackDays
	if lookback <= 0 {
		lookback = s.lookbackDays
	}

	items, _, err := s.itemRepo.FindByLocation(ctx, venueID, req.LocationID, allRows())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := now.AddDate(0, 0, -lookback)
	movements, err := s.movementRepo.FindByLocation(ctx, venueID, req.LocationID, from, now)
	if err != nil {
		return nil, err
	}

	demandByProduct := make(map[uuid.UUID]decimal.Decimal)
	for i := range movements {
		m := &movements[i]
		if m.Type != inventory.MovementSale {
			continue
		}
		demandByProduct[m.ProductID] = demandByProduct[m.ProductID].Add(m.Quantity.Abs())
	}

	// Scale window demand to a yearly figure for the Wilson formula
	scale := decimal.NewFromInt(365).Div(decimal.NewFromInt(int64(lookback)))

	response := &ReorderResponse{
		LocationID:  req.LocationID,
		Suggestions: make([]inventory.ReorderSuggestion, 0),
	}
	for i := range items {
		item := &items[i]
		if item.ReorderPoint.LessThanOrEqual(decimal.Zero) || item.OnHand.GreaterThan(item.ReorderPoint) {
			continue
		}
		suggestion := inventory.SuggestReorder(inventory.EOQInput{
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			AnnualDemand:       demandByProduct[item.ProductID].Mul(scale).Round(2),
			OrderCost:          req.OrderCost,
			HoldingCostPerUnit: req.HoldingCostPerUnit,
			OnHand:             item.OnHand,
			ReorderPoint:       item.ReorderPoint,
		})
		response.Suggestions = append(response.Suggestions, suggestion)
	}
	return response, nil
}

// allRows returns a filter wide enough to fetch every item at a location.
// Report queries need the full set, not a page.
func allRows() shared.Filter {
	filter := shared.DefaultFilter()
	filter.PageSize = 10000
	return filter
}
