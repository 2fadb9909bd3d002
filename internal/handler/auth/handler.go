package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ateriyan143-bot/school-clinic/internal/handler"
	"github.com/ateriyan143-bot/school-clinic/internal/middleware"
	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/service/account"
	"github.com/ateriyan143-bot/school-clinic/internal/service/auth"
)

type Handler struct {
	authSvc    *auth.Service
	accountSvc *account.Service
}

func NewHandler(authSvc *auth.Service, accountSvc *account.Service) *Handler {
	return &Handler{
		authSvc:    authSvc,
		accountSvc: accountSvc,
	}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.PUT("/auth/profile", h.UpdateProfile)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Email and password are required"))
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.Error(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Unauthorized"))
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("Display name and email are required"))
		return
	}

	resp, err := h.accountSvc.UpdateProfile(c.Request.Context(), identity, &req)
	if err != nil {
		handler.Error(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, resp)
}
