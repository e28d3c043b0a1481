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

// PostHandler serves post CRUD.
type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Text string `json:"text" binding:"required"`
}

// Create POST /api/posts (auth required)
func (h *PostHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), uid, req.Text)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// List GET /api/posts (auth required)
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get GET /api/posts/:id (auth required)
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete DELETE /api/posts/:id (auth required, owner only)
func (h *PostHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		response.WriteError(c, err)
		return
	}
	response.Msg(c, http.StatusOK, "Post Removed")
}
