package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/venuehq/backend/internal/application/inventory"
)

// InventoryHandler handles stock tracking and inventory analysis endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.POST("/items", h.CreateItem)
		inventory.GET("/items/:id", h.GetItem)
		inventory.GET("/locations/:locationId/items", h.ListByLocation)

		inventory.POST("/receipts", h.Receive)
		inventory.POST("/sales", h.RecordSale)
		inventory.POST("/waste", h.RecordWaste)
		inventory.POST("/transfers", h.Transfer)
		inventory.POST("/adjustments", h.Adjust)
		inventory.PUT("/levels", h.SetLevels)

		inventory.GET("/valuation", h.Valuation)
		inventory.GET("/abc", h.ClassifyABC)
		inventory.GET("/cogs", h.COGS)
		inventory.POST("/reorder-suggestions", h.SuggestReorders)
	}
}

// CreateItem registers a product for stock tracking at a location
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req inventoryapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// GetItem returns a single stock item
func (h *InventoryHandler) GetItem(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.inventoryService.GetItem(c.Request.Context(), venueID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// ListByLocation lists stock items at a location
func (h *InventoryHandler) ListByLocation(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.inventoryService.ListByLocation(c.Request.Context(), venueID, locationID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items.Items, items.Total, items.Page, items.PageSize)
}

// Receive records an inbound stock receipt
func (h *InventoryHandler) Receive(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req inventoryapp.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.inventoryService.Receive(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// RecordSale deducts sold stock
func (h *InventoryHandler) RecordSale(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req inventoryapp.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.inventoryService.RecordSale(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// RecordWaste deducts wasted stock
func (h *InventoryHandler) RecordWaste(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req inventoryapp.RecordWasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.inventoryService.RecordWaste(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// Transfer moves stock between locations
func (h *InventoryHandler) Transfer(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req inventoryapp.TransferStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movements, err := h.inventoryService.Transfer(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movements)
}

// Adjust reconciles on-hand stock to a counted quantity
func (h *InventoryHandler) Adjust(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.inventoryService.Adjust(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// SetLevels updates par level and reorder point
func (h *InventoryHandler) SetLevels(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req inventoryapp.SetLevelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.inventoryService.SetLevels(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Valuation values a location's stock by the requested method
func (h *InventoryHandler) Valuation(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req inventoryapp.ValuationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	valuation, err := h.inventoryService.Valuation(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, valuation)
}

// ClassifyABC ranks a location's products into ABC classes by consumption value
func (h *InventoryHandler) ClassifyABC(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req inventoryapp.ABCRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.inventoryService.ClassifyABC(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// COGS reports cost of goods sold over a period
func (h *InventoryHandler) COGS(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req inventoryapp.COGSRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.inventoryService.COGS(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// SuggestReorders computes EOQ reorder suggestions for items below their
// reorder point
func (h *InventoryHandler) SuggestReorders(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req inventoryapp.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suggestions, err := h.inventoryService.SuggestReorders(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, suggestions)
}
