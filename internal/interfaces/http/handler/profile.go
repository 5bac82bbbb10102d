package handler

import (
	"github.com/gin-gonic/gin"
	profileapp "github.com/tlsy/handicrafts/internal/application/profile"
)

// ProfileHandler serves the crafter profile
type ProfileHandler struct {
	BaseHandler
	profileService *profileapp.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *profileapp.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the profile, or the default one before it is first saved
// GET /api/v1/profile and GET /api/v1/admin/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profileService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Update saves the profile
// PUT /api/v1/admin/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req profileapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	p, err := h.profileService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}
