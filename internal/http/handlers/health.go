package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platziflix/catalog-backend/internal/http/response"
	"github.com/platziflix/catalog-backend/internal/services"
)

type HealthHandler struct {
	health services.HealthService
}

func NewHealthHandler(health services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// GET /health
// Always 200; a database failure shows up as status "degraded".
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response.RespondOK(c, h.health.Check(c.Request.Context()))
}
