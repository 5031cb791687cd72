package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping() error { return s.err }

func newSystemRouter(db Pinger) *gin.Engine {
	engine := gin.New()
	NewSystemHandler(db, "venue-backend", "1.0.0").RegisterRoutes(engine)
	return engine
}

func TestSystemHandler_Health(t *testing.T) {
	r := newSystemRouter(&stubPinger{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "venue-backend")
}

func TestSystemHandler_ReadyWhenDBUp(t *testing.T) {
	r := newSystemRouter(&stubPinger{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSystemHandler_NotReadyWhenDBDown(t *testing.T) {
	r := newSystemRouter(&stubPinger{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSystemHandler_ReadyWithoutDB(t *testing.T) {
	r := newSystemRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
