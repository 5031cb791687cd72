package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	kitchenapp "github.com/venuehq/backend/internal/application/kitchen"
)

// KitchenHandler handles station routing and ticket endpoints
type KitchenHandler struct {
	BaseHandler
	kitchenService *kitchenapp.KitchenService
}

// NewKitchenHandler creates a new KitchenHandler
func NewKitchenHandler(kitchenService *kitchenapp.KitchenService) *KitchenHandler {
	return &KitchenHandler{
		kitchenService: kitchenService,
	}
}

// RegisterRoutes registers kitchen routes
func (h *KitchenHandler) RegisterRoutes(rg *gin.RouterGroup) {
	kitchen := rg.Group("/kitchen")
	{
		kitchen.POST("/stations", h.RegisterStation)
		kitchen.GET("/stations/loads", h.StationLoads)
		kitchen.POST("/stations/:id/auto-fire", h.EvaluateAutoFire)

		kitchen.POST("/tickets", h.RouteTicket)
		kitchen.GET("/tickets/:id", h.GetTicket)
		kitchen.POST("/tickets/:id/courses/:sequence/complete", h.CompleteCourse)
	}
}

// RegisterStation registers a prep station with its capabilities
func (h *KitchenHandler) RegisterStation(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req kitchenapp.RegisterStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	station, err := h.kitchenService.RegisterStation(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, station)
}

// StationLoads reports current load across the venue's stations
func (h *KitchenHandler) StationLoads(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	loads, err := h.kitchenService.StationLoads(c.Request.Context(), venueID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, loads)
}

// EvaluateAutoFire fires courses on the station's tickets whose lead time
// has come due, returning how many were fired
func (h *KitchenHandler) EvaluateAutoFire(c *gin.Context) {
	stationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid station ID format")
		return
	}

	fired, err := h.kitchenService.EvaluateAutoFire(c.Request.Context(), stationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"fired": fired})
}

// RouteTicket opens a coursed ticket and routes it to the least-loaded
// capable station
func (h *KitchenHandler) RouteTicket(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req kitchenapp.RouteTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.kitchenService.RouteTicket(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ticket)
}

// GetTicket returns a single ticket with its courses
func (h *KitchenHandler) GetTicket(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	ticket, err := h.kitchenService.GetTicket(c.Request.Context(), venueID, ticketID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// CompleteCourse marks a fired course as completed
func (h *KitchenHandler) CompleteCourse(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	sequence, err := strconv.Atoi(c.Param("sequence"))
	if err != nil || sequence < 1 {
		h.BadRequest(c, "Invalid course sequence")
		return
	}

	ticket, err := h.kitchenService.CompleteCourse(c.Request.Context(), venueID, ticketID, sequence)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}
