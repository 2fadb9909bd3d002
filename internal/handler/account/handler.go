package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ateriyan143-bot/school-clinic/internal/handler"
	"github.com/ateriyan143-bot/school-clinic/internal/middleware"
	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/service/account"
)

type Handler struct {
	service *account.Service
}

func NewHandler(service *account.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/admin/users")
	{
		users.POST("", h.CreateAccount)
		users.GET("", h.ListAccounts)
		users.PUT("/:id", h.UpdateAccount)
		users.DELETE("/:id", h.DeleteAccount)
		users.POST("/:id/reveal-password", h.RevealPassword)
	}
}

func (h *Handler) CreateAccount(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Unauthorized"))
		return
	}

	var req model.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("All required fields must be provided"))
		return
	}

	created, err := h.service.Create(c.Request.Context(), identity, &req)
	if err != nil {
		handler.Error(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) ListAccounts(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Unauthorized"))
		return
	}

	accounts, err := h.service.List(c.Request.Context(), identity)
	if err != nil {
		handler.Error(c, err, "Failed to fetch accounts")
		return
	}

	c.JSON(http.StatusOK, accounts)
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Invalid account ID"))
		return
	}

	var req model.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("All required fields must be provided"))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), identity, id, &req)
	if err != nil {
		handler.Error(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) RevealPassword(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Invalid account ID"))
		return
	}

	resp, err := h.service.RevealPassword(c.Request.Context(), identity, id)
	if err != nil {
		handler.Error(c, err, "Failed to reveal account password")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Invalid account ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		handler.Error(c, err, "Failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}
