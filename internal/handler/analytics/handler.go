package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ateriyan143-bot/school-clinic/internal/handler"
	"github.com/ateriyan143-bot/school-clinic/internal/middleware"
	"github.com/ateriyan143-bot/school-clinic/internal/service/analytics"
)

type Handler struct {
	service *analytics.Service
}

func NewHandler(service *analytics.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/analytics")
	{
		stats.GET("/stats", h.GetStats)
		stats.GET("/illness-frequency", h.GetIllnessFrequency)
	}
}

func (h *Handler) GetStats(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Unauthorized"))
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), identity.TenantID)
	if err != nil {
		handler.Error(c, err, "Failed to fetch statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetIllnessFrequency(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Unauthorized"))
		return
	}

	rows, err := h.service.IllnessFrequency(c.Request.Context(), identity.TenantID)
	if err != nil {
		handler.Error(c, err, "Failed to fetch illness frequency")
		return
	}

	c.JSON(http.StatusOK, rows)
}
