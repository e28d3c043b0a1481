package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devconnector/devconnector-api/internal/application"
	"github.com/devconnector/devconnector-api/pkg/response"
	"github.com/devconnector/devconnector-api/pkg/validation"
)

// UserHandler serves registration.
type UserHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.AuthService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register POST /api/users
// Registration always issues a session token, same contract as login.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}

	token, _, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.Token(c, token)
}
