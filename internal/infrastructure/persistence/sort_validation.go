package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// StockItemSortFields contains allowed sort fields for stock items
var StockItemSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"product_name":  true,
	"on_hand":       true,
	"unit_cost":     true,
	"par_level":     true,
	"reorder_point": true,
}

// GiftCardSortFields contains allowed sort fields for gift cards
var GiftCardSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"card_number": true,
	"status":      true,
	"balance":     true,
}

// LoyaltyAccountSortFields contains allowed sort fields for loyalty accounts
var LoyaltyAccountSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"guest_name":      true,
	"guest_email":     true,
	"points":          true,
	"lifetime_points": true,
	"tier":            true,
}

// InstallmentPlanSortFields contains allowed sort fields for installment plans
var InstallmentPlanSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"order_ref":  true,
	"status":     true,
	"total":      true,
}

// HouseAccountSortFields contains allowed sort fields for house accounts
var HouseAccountSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"account_name": true,
	"status":       true,
	"balance":      true,
	"credit_limit": true,
}

// TicketSortFields contains allowed sort fields for kitchen tickets
var TicketSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"order_ref":  true,
	"status":     true,
	"station_id": true,
}

// CashSessionSortFields contains allowed sort fields for cash sessions
var CashSessionSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"drawer_name": true,
	"status":      true,
	"opened_at":   true,
	"closed_at":   true,
	"variance":    true,
}
