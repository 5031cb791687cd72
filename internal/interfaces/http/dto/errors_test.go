package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"already exists", ErrCodeAlreadyExists, http.StatusConflict},
		{"concurrency conflict", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"unauthorized", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"insufficient stock", ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{"insufficient balance", ErrCodeInsufficientBalance, http.StatusUnprocessableEntity},
		{"insufficient points", ErrCodeInsufficientPoints, http.StatusUnprocessableEntity},
		{"credit limit exceeded", ErrCodeCreditLimitExceeded, http.StatusUnprocessableEntity},
		{"no capable station", ErrCodeNoCapableStation, http.StatusUnprocessableEntity},
		{"rate limited", ErrCodeRateLimited, http.StatusTooManyRequests},
		{"unknown code falls back to 500", "ERR_SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"domain not found", "NOT_FOUND", ErrCodeNotFound},
		{"domain insufficient stock", "INSUFFICIENT_STOCK", ErrCodeInsufficientStock},
		{"domain insufficient points", "INSUFFICIENT_POINTS", ErrCodeInsufficientPoints},
		{"input guard", "INVALID_QUANTITY", ErrCodeInvalidInput},
		{"card state", "CARD_EXPIRED", ErrCodeInvalidState},
		{"drawer conflict", "DRAWER_IN_USE", ErrCodeConflict},
		{"overpayment", "OVERPAYMENT", ErrCodeBusinessRule},
		{"already normalized", ErrCodeNotFound, ErrCodeNotFound},
		{"unknown passes through", "SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.code))
		})
	}
}

func TestNormalizedCodesResolveToStatus(t *testing.T) {
	// Every domain code in the mapping must land on a code with a known status.
	for domainCode, wireCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[wireCode]
		assert.True(t, ok, "domain code %s maps to %s which has no HTTP status", domainCode, wireCode)
	}
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "amount", Message: "amount is required"},
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 41, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
