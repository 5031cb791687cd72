package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venuehq/backend/internal/interfaces/http/dto"
)

// Pinger reports whether a backing dependency is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      Pinger
	appName string
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, appName, version string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		appName: appName,
		version: version,
	}
}

// RegisterRoutes registers system routes directly on the engine so they sit
// outside the versioned API prefix
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", h.Health)
	engine.GET("/readyz", h.Ready)
}

// Health reports process liveness
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"status":  "ok",
		"app":     h.appName,
		"version": h.version,
	}))
}

// Ready reports whether the service can take traffic
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
				dto.ErrCodeInternal,
				"database unreachable",
			))
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"status": "ready",
	}))
}
