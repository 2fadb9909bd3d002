package visit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ateriyan143-bot/school-clinic/internal/handler"
	"github.com/ateriyan143-bot/school-clinic/internal/middleware"
	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/service/visit"
)

type Handler struct {
	service *visit.Service
}

func NewHandler(service *visit.Service) *Handler {
	return &Handler{service: service}
}

// Visits are never deleted directly; they go away with their student.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/visits", h.ListVisits)
	r.POST("/visits", h.CreateVisit)
	r.PUT("/visits/:id", h.UpdateVisit)
	r.GET("/students/:id/visits", h.ListStudentVisits)
}

func tenantID(c *gin.Context) (string, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Unauthorized"))
		return "", false
	}
	return identity.TenantID, true
}

func (h *Handler) ListVisits(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	visits, err := h.service.ListWithStudents(c.Request.Context(), tenant)
	if err != nil {
		handler.Error(c, err, "Failed to fetch visits")
		return
	}

	c.JSON(http.StatusOK, visits)
}

func (h *Handler) ListStudentVisits(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Invalid student ID"))
		return
	}

	visits, err := h.service.ListByStudent(c.Request.Context(), tenant, studentID)
	if err != nil {
		handler.Error(c, err, "Failed to fetch visits")
		return
	}

	c.JSON(http.StatusOK, visits)
}

func (h *Handler) CreateVisit(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	var req model.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Missing required visit fields"))
		return
	}

	created, err := h.service.Create(c.Request.Context(), tenant, &req)
	if err != nil {
		handler.Error(c, err, "Failed to create visit")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateVisit(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Invalid visit ID"))
		return
	}

	var req model.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Missing required visit fields"))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), tenant, id, &req)
	if err != nil {
		handler.Error(c, err, "Failed to update visit")
		return
	}

	c.JSON(http.StatusOK, updated)
}
