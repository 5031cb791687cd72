package handler

import (
	"github.com/gin-gonic/gin"

	giftcardapp "github.com/venuehq/backend/internal/application/giftcard"
)

// GiftCardHandler handles stored-value card endpoints
type GiftCardHandler struct {
	BaseHandler
	cardService *giftcardapp.GiftCardService
}

// NewGiftCardHandler creates a new GiftCardHandler
func NewGiftCardHandler(cardService *giftcardapp.GiftCardService) *GiftCardHandler {
	return &GiftCardHandler{
		cardService: cardService,
	}
}

// RegisterRoutes registers gift card routes. Cards are addressed by their
// card number, not their internal ID, matching how terminals identify them.
func (h *GiftCardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cards := rg.Group("/gift-cards")
	{
		cards.POST("", h.Issue)
		cards.GET("", h.List)
		cards.POST("/:number/activate", h.Activate)
		cards.GET("/:number/balance", h.Balance)
		cards.POST("/:number/redemptions", h.Redeem)
		cards.POST("/:number/reloads", h.Reload)
		cards.POST("/:number/disable", h.Disable)
	}
}

// Issue issues a new gift card
func (h *GiftCardHandler) Issue(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req giftcardapp.IssueCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	card, err := h.cardService.Issue(c.Request.Context(), venueID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, card)
}

// List lists the venue's gift cards
func (h *GiftCardHandler) List(c *gin.Context) {
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

	cards, err := h.cardService.List(c.Request.Context(), venueID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, cards.Items, cards.Total, cards.Page, cards.PageSize)
}

// Activate activates an issued card
func (h *GiftCardHandler) Activate(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	card, err := h.cardService.Activate(c.Request.Context(), venueID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, card)
}

// Balance returns the card's current balance
func (h *GiftCardHandler) Balance(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	balance, err := h.cardService.Balance(c.Request.Context(), venueID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// Redeem deducts value from a card. Retries carrying the same idempotency
// key replay the original result instead of double-charging.
func (h *GiftCardHandler) Redeem(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req giftcardapp.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.cardService.Redeem(c.Request.Context(), venueID, c.Param("number"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tx)
}

// Reload adds value to a card
func (h *GiftCardHandler) Reload(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	var req giftcardapp.ReloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.cardService.Reload(c.Request.Context(), venueID, c.Param("number"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tx)
}

// Disable permanently disables a card
func (h *GiftCardHandler) Disable(c *gin.Context) {
	venueID, err := getVenueID(c)
	if err != nil {
		h.BadRequest(c, "Invalid venue ID")
		return
	}

	card, err := h.cardService.Disable(c.Request.Context(), venueID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, card)
}
