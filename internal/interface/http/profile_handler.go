package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devconnector/devconnector-api/internal/application"
	"github.com/devconnector/devconnector-api/internal/domain/apperr"
	"github.com/devconnector/devconnector-api/internal/domain/entity"
	"github.com/devconnector/devconnector-api/internal/interface/middleware"
	"github.com/devconnector/devconnector-api/pkg/response"
	"github.com/devconnector/devconnector-api/pkg/validation"
)

// ProfileHandler serves profile CRUD and account deletion.
type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type profileRequest struct {
	Company        string              `json:"company"`
	Website        string              `json:"website"`
	Location       string              `json:"location"`
	Status         string              `json:"status" binding:"required"`
	Skills         string              `json:"skills" binding:"required"`
	Bio            string              `json:"bio"`
	GithubUsername string              `json:"githubusername"`
	Experience     []entity.Experience `json:"experience"`
	Education      []entity.Education  `json:"education"`
	Youtube        string              `json:"youtube"`
	Twitter        string              `json:"twitter"`
	Instagram      string              `json:"instagram"`
	Linkedin       string              `json:"linkedin"`
	Facebook       string              `json:"facebook"`
}

// Me GET /api/profile/me (auth required)
func (h *ProfileHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Me(c.Request.Context(), uid)
	if err != nil {
		// Missing own profile has always been a 400 with this exact
		// message, not a 404.
		if apperr.IsNotFound(err) {
			response.Msg(c, http.StatusBadRequest, "No Profile Exists for this user")
			return
		}
		response.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Upsert POST /api/profile (auth required)
// Creates the caller's profile or updates it in place.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validation.ToFieldErrors(err))
		return
	}

	p, err := h.Svc.Upsert(c.Request.Context(), uid, application.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Experience:     req.Experience,
		Education:      req.Education,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Instagram:      req.Instagram,
		Linkedin:       req.Linkedin,
		Facebook:       req.Facebook,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// List GET /api/profile (public)
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// DeleteAccount DELETE /api/profile (auth required)
// Removes the caller's profile and identity. Posts survive.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteAccount(c.Request.Context(), uid); err != nil {
		response.WriteError(c, err)
		return
	}
	response.Msg(c, http.StatusOK, "User Deleted")
}
