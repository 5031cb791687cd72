package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	paymentapp "github.com/venuehq/backend/internal/application/payment"
)

// PaymentHandler handles installment plan and house account endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/installment-plans")
	{
		plans.POST("", h.CreatePlan)
		plans.GET("/:id", h.GetPlan)
		plans.POST("/:id/installments/:sequence/payments", h.PayInstallment)
		plans.POST("/:id/cancel", h.CancelPlan)
	}

	accounts := rg.Group("/house-accounts")
	{
		accounts.POST("", h.OpenHouseAccount)
		accounts.GET("/:id", h.GetHouseAccount)
		accounts.POST("/:id/charges", h.Charge)
		accounts.POST("/:id/payments", h.RecordPayment)
		accounts.GET("/:id/statement", h.Statement)
	}
}

// CreatePlan opens an installment plan for an order
func (h *PaymentHandler) CreatePlan(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req paymentapp.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.paymentService.CreatePlan(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}

// GetPlan returns a single installment plan
func (h *PaymentHandler) GetPlan(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	plan, err := h.paymentService.GetPlan(c.Request.Context(), venueID, planID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// PayInstallment settles one scheduled installment. Installments must be
// paid in sequence order.
func (h *PaymentHandler) PayInstallment(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	sequence, err := strconv.Atoi(c.Param("sequence"))
	if err != nil || sequence < 1 {
		h.BadRequest(c, "Invalid installment sequence")
		return
	}

	plan, err := h.paymentService.PayInstallment(c.Request.Context(), venueID, planID, sequence)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// CancelPlan cancels an installment plan with no payments recorded
func (h *PaymentHandler) CancelPlan(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	plan, err := h.paymentService.CancelPlan(c.Request.Context(), venueID, planID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// OpenHouseAccount opens a house account with a credit limit
func (h *PaymentHandler) OpenHouseAccount(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req paymentapp.OpenHouseAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.paymentService.OpenHouseAccount(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// GetHouseAccount returns a single house account
func (h *PaymentHandler) GetHouseAccount(c *gin.Context) {
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

	account, err := h.paymentService.GetHouseAccount(c.Request.Context(), venueID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Charge posts a charge against the account's credit limit
func (h *PaymentHandler) Charge(c *gin.Context) {
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

	var req paymentapp.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.paymentService.Charge(c.Request.Context(), venueID, accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// RecordPayment posts a payment that reduces the account balance
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
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

	var req paymentapp.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.paymentService.RecordPayment(c.Request.Context(), venueID, accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Statement builds an account statement over a period
func (h *PaymentHandler) Statement(c *gin.Context) {
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

	var req paymentapp.StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	statement, err := h.paymentService.Statement(c.Request.Context(), venueID, accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}
