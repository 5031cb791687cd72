package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/venuehq/backend/internal/application/finance"
)

// FinanceHandler handles cash drawer session endpoints
type FinanceHandler struct {
	BaseHandler
	financeService *financeapp.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService *financeapp.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// RegisterRoutes registers cash session routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/cash-sessions")
	{
		sessions.POST("", h.OpenSession)
		sessions.GET("", h.List)
		sessions.GET("/:id", h.GetSession)
		sessions.POST("/:id/sales", h.RecordSale)
		sessions.POST("/:id/drops", h.RecordDrop)
		sessions.POST("/:id/close", h.CloseSession)
	}
}

// OpenSession opens a drawer session with an opening float
func (h *FinanceHandler) OpenSession(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req financeapp.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.financeService.OpenSession(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// List lists the venue's drawer sessions
func (h *FinanceHandler) List(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sessions, err := h.financeService.List(c.Request.Context(), venueID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, sessions.Items, sessions.Total, sessions.Page, sessions.PageSize)
}

// GetSession returns a single drawer session
func (h *FinanceHandler) GetSession(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	session, err := h.financeService.GetSession(c.Request.Context(), venueID, sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// RecordSale adds a cash sale to the open drawer
func (h *FinanceHandler) RecordSale(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	var req financeapp.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.financeService.RecordSale(c.Request.Context(), venueID, sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// RecordDrop moves cash from the drawer to the safe
func (h *FinanceHandler) RecordDrop(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	var req financeapp.RecordDropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.financeService.RecordDrop(c.Request.Context(), venueID, sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// CloseSession closes the drawer against a counted amount and grades the
// variance
func (h *FinanceHandler) CloseSession(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	var req financeapp.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.financeService.CloseSession(c.Request.Context(), venueID, sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}
