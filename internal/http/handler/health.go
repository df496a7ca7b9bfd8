package handler

import (
	"net/http"

	"copilot.dev/backend/core/db"
	"copilot.dev/backend/internal/http/dto"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	db *db.DB
}

func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Health answers GET /health with a liveness check only.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// HealthDB answers GET /health/db, pinging the Postgres pool.
func (h *HealthHandler) HealthDB(c *gin.Context) {
	if err := h.db.Pool().Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
