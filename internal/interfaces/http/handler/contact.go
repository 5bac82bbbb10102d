package handler

import (
	"github.com/gin-gonic/gin"
	inquiryapp "github.com/tlsy/handicrafts/internal/application/inquiry"
	"github.com/tlsy/handicrafts/internal/domain/inquiry"
	"github.com/tlsy/handicrafts/internal/interfaces/http/middleware"
)

// ContactHandler accepts inquiries and serves the admin inbox
type ContactHandler struct {
	BaseHandler
	contactService *inquiryapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *inquiryapp.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit stores a contact form submission
// POST /api/v1/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req inquiryapp.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.LanguagePreference == "" {
		req.LanguagePreference = middleware.GetLocale(c).String()
	}

	submission, err := h.contactService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, submission)
}

// List returns messages filtered by ?filter=all|unread|read
// GET /api/v1/admin/messages
func (h *ContactHandler) List(c *gin.Context) {
	filter := inquiry.ParseReadFilter(c.Query("filter"))
	messages, err := h.contactService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, messages)
}

// ToggleRead flips a message between read and unread
// POST /api/v1/admin/messages/:id/toggle-read
func (h *ContactHandler) ToggleRead(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	message, err := h.contactService.ToggleRead(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, message)
}

// Delete removes a message
// DELETE /api/v1/admin/messages/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
