package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/devconnector/devconnector-api/internal/interface/http"
	"github.com/devconnector/devconnector-api/internal/interface/middleware"
	"github.com/devconnector/devconnector-api/pkg/helpers"
)

// AuthModule wires login and current-user routes.
// Public: POST /api/auth
// Protected: GET /api/auth
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Logger: logger}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth", m.Handler.Login)
	rg.GET("/auth", middleware.Auth(m.JWT, m.Logger), m.Handler.CurrentUser)
}
