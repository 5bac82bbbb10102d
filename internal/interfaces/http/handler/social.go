package handler

import (
	"github.com/gin-gonic/gin"
	socialapp "github.com/tlsy/handicrafts/internal/application/social"
)

// SocialHandler serves social links
type SocialHandler struct {
	BaseHandler
	socialService *socialapp.SocialService
}

// NewSocialHandler creates a new SocialHandler
func NewSocialHandler(socialService *socialapp.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

// ShopeeResponse carries the resolved Shopee shop URL
type ShopeeResponse struct {
	URL string `json:"url"`
}

// ListActive returns the links shown in the footer
// GET /api/v1/social-links
func (h *SocialHandler) ListActive(c *gin.Context) {
	links, err := h.socialService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, links)
}

// Shopee returns the Shopee shop URL
// GET /api/v1/social-links/shopee
func (h *SocialHandler) Shopee(c *gin.Context) {
	h.Success(c, ShopeeResponse{URL: h.socialService.ShopeeURL(c.Request.Context())})
}

// List returns every link including inactive ones
// GET /api/v1/admin/social-links
func (h *SocialHandler) List(c *gin.Context) {
	links, err := h.socialService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, links)
}

// Create adds a link
// POST /api/v1/admin/social-links
func (h *SocialHandler) Create(c *gin.Context) {
	var req socialapp.SocialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	link, err := h.socialService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, link)
}

// Update edits a link
// PUT /api/v1/admin/social-links/:id
func (h *SocialHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req socialapp.SocialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	link, err := h.socialService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}

// Delete removes a link
// DELETE /api/v1/admin/social-links/:id
func (h *SocialHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	if err := h.socialService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
