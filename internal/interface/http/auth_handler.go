package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devconnector/devconnector-api/internal/application"
	"github.com/devconnector/devconnector-api/internal/interface/middleware"
	"github.com/devconnector/devconnector-api/pkg/response"
	"github.com/devconnector/devconnector-api/pkg/validation"
)

// AuthHandler serves login and current-user resolution.
type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}

	token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.Token(c, token)
}

// CurrentUser GET /api/auth (auth required)
// Returns the authenticated user without the password hash.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.CurrentUser(c.Request.Context(), uid)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
