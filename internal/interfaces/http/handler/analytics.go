package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/tlsy/handicrafts/internal/application/analytics"
	"github.com/tlsy/handicrafts/internal/infrastructure/logger"
	"github.com/tlsy/handicrafts/internal/interfaces/http/middleware"
)

// maxDashboardDays caps the ?days= window of the dashboard
const maxDashboardDays = 365

// AnalyticsHandler records visitor activity and serves the admin dashboard
type AnalyticsHandler struct {
	BaseHandler
	trackingService *analyticsapp.TrackingService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(trackingService *analyticsapp.TrackingService) *AnalyticsHandler {
	return &AnalyticsHandler{trackingService: trackingService}
}

// RecordPageView stores a page view
// POST /api/v1/analytics/page-views
func (h *AnalyticsHandler) RecordPageView(c *gin.Context) {
	var req analyticsapp.PageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.UserLanguage == "" {
		req.UserLanguage = middleware.GetLocale(c).String()
	}

	ctx := logger.WithSessionID(c.Request.Context(), req.SessionID)
	if err := h.trackingService.RecordPageView(ctx, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RecordEvent stores a named interaction event
// POST /api/v1/analytics/events
func (h *AnalyticsHandler) RecordEvent(c *gin.Context) {
	var req analyticsapp.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.UserLanguage == "" {
		req.UserLanguage = middleware.GetLocale(c).String()
	}

	ctx := logger.WithSessionID(c.Request.Context(), req.SessionID)
	if err := h.trackingService.RecordEvent(ctx, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Dashboard returns the admin overview for the last ?days= days (default 30)
// GET /api/v1/admin/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	window := analyticsapp.DefaultDashboardWindow
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 || days > maxDashboardDays {
			h.BadRequest(c, "days must be between 1 and "+strconv.Itoa(maxDashboardDays))
			return
		}
		window = time.Duration(days) * 24 * time.Hour
	}

	dashboard, err := h.trackingService.Dashboard(c.Request.Context(), window)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}
