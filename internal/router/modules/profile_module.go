package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/devconnector/devconnector-api/internal/interface/http"
	"github.com/devconnector/devconnector-api/internal/interface/middleware"
	"github.com/devconnector/devconnector-api/pkg/helpers"
)

// ProfileModule wires profile routes.
// Public: GET /api/profile
// Protected: GET /api/profile/me, POST /api/profile, DELETE /api/profile
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager, logger *logrus.Logger) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt, Logger: logger}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", m.Handler.List)

	auth := middleware.Auth(m.JWT, m.Logger)
	rg.GET("/profile/me", auth, m.Handler.Me)
	rg.POST("/profile", auth, m.Handler.Upsert)
	rg.DELETE("/profile", auth, m.Handler.DeleteAccount)
}
