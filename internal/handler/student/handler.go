package student

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ateriyan143-bot/school-clinic/internal/handler"
	"github.com/ateriyan143-bot/school-clinic/internal/middleware"
	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/service/student"
)

type Handler struct {
	service *student.Service
}

func NewHandler(service *student.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	students := r.Group("/students")
	{
		students.GET("", h.ListStudents)
		students.POST("", h.CreateStudent)
		students.GET("/:id", h.GetStudent)
		students.PUT("/:id", h.UpdateStudent)
		students.DELETE("/:id", h.DeleteStudent)
	}
}

func tenantID(c *gin.Context) (string, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Unauthorized"))
		return "", false
	}
	return identity.TenantID, true
}

func (h *Handler) ListStudents(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	students, err := h.service.List(c.Request.Context(), tenant)
	if err != nil {
		handler.Error(c, err, "Failed to fetch students")
		return
	}

	c.JSON(http.StatusOK, students)
}

func (h *Handler) GetStudent(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Invalid student ID"))
		return
	}

	s, err := h.service.Get(c.Request.Context(), tenant, id)
	if err != nil {
		handler.Error(c, err, "Failed to fetch student")
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *Handler) CreateStudent(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	var req model.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Missing required student fields"))
		return
	}

	created, err := h.service.Create(c.Request.Context(), tenant, &req)
	if err != nil {
		handler.Error(c, err, "Failed to create student")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateStudent(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Invalid student ID"))
		return
	}

	var req model.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Invalid request body"))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), tenant, id, &req)
	if err != nil {
		handler.Error(c, err, "Failed to update student")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteStudent(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Invalid student ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenant, id); err != nil {
		handler.Error(c, err, "Failed to delete student")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully"})
}
