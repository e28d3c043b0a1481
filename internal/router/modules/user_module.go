package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/devconnector/devconnector-api/internal/interface/http"
)

// UserModule wires registration.
// Public: POST /api/users
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Register)
}
