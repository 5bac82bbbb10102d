package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/analytics"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Dashboard defaults
const (
	DefaultDashboardWindow = 30 * 24 * time.Hour
	TopPagesLimit          = 5
)

// PageViewRequest is sent by the storefront on every page load
type PageViewRequest struct {
	PagePath     string `json:"page_path" binding:"required,max=500"`
	SessionID    string `json:"session_id" binding:"required,max=64"`
	UserLanguage string `json:"user_language" binding:"omitempty,oneof=en tl"`
	Referrer     string `json:"referrer" binding:"max=1000"`
}

// EventRequest is sent by the storefront for tracked interactions
type EventRequest struct {
	EventName      string         `json:"event_name" binding:"required,max=50"`
	Page           string         `json:"page" binding:"max=500"`
	ProductID      *uuid.UUID     `json:"product_id"`
	SessionID      string         `json:"session_id" binding:"required,max=64"`
	UserLanguage   string         `json:"user_language" binding:"omitempty,oneof=en tl"`
	AdditionalData map[string]any `json:"additional_data"`
}

// DashboardResponse is the admin overview
type DashboardResponse struct {
	ProductCount   int64                 `json:"product_count"`
	UnreadMessages int64                 `json:"unread_messages"`
	PageViews      int64                 `json:"page_views"`
	Sessions       int64                 `json:"sessions"`
	EventsByName   map[string]int64      `json:"events_by_name"`
	TopPages       []analytics.PageCount `json:"top_pages"`
	Since          time.Time             `json:"since"`
}

// ProductCounter counts catalog products
type ProductCounter interface {
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// UnreadCounter counts unread inbox messages
type UnreadCounter interface {
	CountUnread(ctx context.Context) (int64, error)
}

// TrackingService records storefront analytics and builds the admin dashboard
type TrackingService struct {
	repo     analytics.Repository
	products ProductCounter
	messages UnreadCounter
	metrics  *telemetry.StorefrontMetrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(
	repo analytics.Repository,
	products ProductCounter,
	messages UnreadCounter,
	metrics *telemetry.StorefrontMetrics,
	logger *zap.Logger,
) *TrackingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackingService{
		repo:     repo,
		products: products,
		messages: messages,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// RecordPageView stores a page view
func (s *TrackingService) RecordPageView(ctx context.Context, req PageViewRequest) error {
	view, err := analytics.NewPageView(req.PagePath, req.SessionID, req.UserLanguage, req.Referrer)
	if err != nil {
		return err
	}
	return s.repo.SavePageView(ctx, view)
}

// RecordEvent stores a named interaction
func (s *TrackingService) RecordEvent(ctx context.Context, req EventRequest) error {
	event, err := analytics.NewEvent(analytics.EventName(req.EventName), req.Page, req.SessionID, req.UserLanguage, req.ProductID, req.AdditionalData)
	if err != nil {
		return err
	}
	if err := s.repo.SaveEvent(ctx, event); err != nil {
		return err
	}
	s.metrics.RecordEvent(ctx, req.EventName)
	return nil
}

// Dashboard aggregates catalog, inbox and traffic figures over window
func (s *TrackingService) Dashboard(ctx context.Context, window time.Duration) (*DashboardResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "analytics", "dashboard")
	defer span.End()

	if window <= 0 {
		window = DefaultDashboardWindow
	}
	since := s.now().Add(-window)

	products, err := s.products.Count(ctx, shared.DefaultFilter())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	unread, err := s.messages.CountUnread(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	views, err := s.repo.CountPageViewsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	sessions, err := s.repo.CountSessionsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.CountEventsByNameSince(ctx, since)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopPagesSince(ctx, since, TopPagesLimit)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []analytics.PageCount{}
	}
	if events == nil {
		events = map[string]int64{}
	}

	return &DashboardResponse{
		ProductCount:   products,
		UnreadMessages: unread,
		PageViews:      views,
		Sessions:       sessions,
		EventsByName:   events,
		TopPages:       top,
		Since:          since,
	}, nil
}
