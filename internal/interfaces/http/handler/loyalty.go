package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	loyaltyapp "github.com/venuehq/backend/internal/application/loyalty"
)

// LoyaltyHandler handles loyalty program endpoints
type LoyaltyHandler struct {
	BaseHandler
	loyaltyService *loyaltyapp.LoyaltyService
}

// NewLoyaltyHandler creates a new LoyaltyHandler
func NewLoyaltyHandler(loyaltyService *loyaltyapp.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyService: loyaltyService,
	}
}

// RegisterRoutes registers loyalty routes
func (h *LoyaltyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/loyalty/accounts")
	{
		accounts.POST("", h.Enroll)
		accounts.GET("", h.List)
		accounts.GET("/:id", h.Get)
		accounts.POST("/:id/earnings", h.Earn)
		accounts.POST("/:id/redemptions", h.Redeem)
	}
}

// Enroll enrolls a guest into the loyalty program
func (h *LoyaltyHandler) Enroll(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req loyaltyapp.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.loyaltyService.Enroll(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// List lists the venue's loyalty accounts
func (h *LoyaltyHandler) List(c *gin.Context) {
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

	accounts, err := h.loyaltyService.List(c.Request.Context(), venueID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, accounts.Items, accounts.Total, accounts.Page, accounts.PageSize)
}

// Get returns a single loyalty account
func (h *LoyaltyHandler) Get(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	account, err := h.loyaltyService.Get(c.Request.Context(), venueID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Earn accrues points from an order total at the account's tier rate
func (h *LoyaltyHandler) Earn(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	var req loyaltyapp.EarnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.loyaltyService.Earn(c.Request.Context(), venueID, accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Redeem spends points from an account
func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return
	}

	var req loyaltyapp.RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.loyaltyService.Redeem(c.Request.Context(), venueID, accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}
