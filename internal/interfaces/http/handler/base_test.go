package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/interfaces/http/dto"
	"github.com/venuehq/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_Success(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.Success(c, gin.H{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandler_Created(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.Created(c, gin.H{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBaseHandler_HandleError_DomainError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"insufficient balance", shared.ErrInsufficientBalance, http.StatusUnprocessableEntity, dto.ErrCodeInsufficientBalance},
		{"credit limit", shared.ErrCreditLimitExceeded, http.StatusUnprocessableEntity, dto.ErrCodeCreditLimitExceeded},
		{"no capable station", shared.ErrNoCapableStation, http.StatusUnprocessableEntity, dto.ErrCodeNoCapableStation},
		{"concurrency conflict", shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"input guard", shared.NewDomainError("INVALID_QUANTITY", "quantity must be positive"), http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"card expired", shared.NewDomainError("CARD_EXPIRED", "card has expired"), http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandler_HandleError_UnknownError(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.HandleError(c, errors.New("database exploded"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	// Internal details must not leak to the client
	assert.NotContains(t, resp.Error.Message, "database exploded")
}

func TestBaseHandler_HandleError_NilIsNoop(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.HandleError(c, nil)

	assert.Empty(t, w.Body.String())
}

func TestBaseHandler_ErrorIncludesRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()
	c.Set(middleware.RequestIDContextKey, "req-42")

	h.NotFound(c, "nothing here")

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}

func TestGetVenueID(t *testing.T) {
	t.Run("from jwt claims", func(t *testing.T) {
		c, _ := newTestContext()
		want := uuid.New()
		c.Set(middleware.JWTVenueIDKey, want.String())

		got, err := getVenueID(c)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("from header fallback", func(t *testing.T) {
		c, _ := newTestContext()
		want := uuid.New()
		c.Request.Header.Set("X-Venue-ID", want.String())

		got, err := getVenueID(c)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing", func(t *testing.T) {
		c, _ := newTestContext()

		_, err := getVenueID(c)
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		c, _ := newTestContext()
		c.Request.Header.Set("X-Venue-ID", "not-a-uuid")

		_, err := getVenueID(c)
		assert.Error(t, err)
	})
}

func TestBindFilter_Defaults(t *testing.T) {
	c, _ := newTestContext()

	filter, err := bindFilter(c)
	require.NoError(t, err)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 20, filter.PageSize)
	assert.Equal(t, "created_at", filter.OrderBy)
	assert.Equal(t, "desc", filter.OrderDir)
}

func TestBindFilter_Overrides(t *testing.T) {
	c, _ := newTestContext()
	c.Request = httptest.NewRequest(http.MethodGet, "/test?page=3&page_size=50&order_dir=asc&search=latte", nil)

	filter, err := bindFilter(c)
	require.NoError(t, err)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 50, filter.PageSize)
	assert.Equal(t, "asc", filter.OrderDir)
	assert.Equal(t, "latte", filter.Search)
}
