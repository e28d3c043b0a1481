package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/devconnector/devconnector-api/internal/interface/http"
	"github.com/devconnector/devconnector-api/internal/interface/middleware"
	"github.com/devconnector/devconnector-api/pkg/helpers"
)

// PostModule wires post routes; all require authentication.
type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager, logger *logrus.Logger) *PostModule {
	return &PostModule{Handler: h, JWT: jwt, Logger: logger}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	posts.Use(middleware.Auth(m.JWT, m.Logger))
	{
		posts.POST("", m.Handler.Create)
		posts.GET("", m.Handler.List)
		posts.GET("/:id", m.Handler.Get)
		posts.DELETE("/:id", m.Handler.Delete)
	}
}
