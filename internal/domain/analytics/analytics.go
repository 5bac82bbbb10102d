package analytics

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// EventName identifies a tracked storefront interaction
type EventName string

const (
	EventCategoryClick     EventName = "category_click"
	EventCategoryFilter    EventName = "category_filter"
	EventContactFormSubmit EventName = "contact_form_submit"
	EventProductView       EventName = "product_view"
)

var knownEvents = map[EventName]struct{}{
	EventCategoryClick:     {},
	EventCategoryFilter:    {},
	EventContactFormSubmit: {},
	EventProductView:       {},
}

// IsKnown reports whether the event name is accepted
func (n EventName) IsKnown() bool {
	_, ok := knownEvents[n]
	return ok
}

// PageView records one storefront page load in a browsing session
type PageView struct {
	ID              uuid.UUID
	PagePath        string
	SessionID       string
	UserLanguage    shared.Locale
	Referrer        string
	Timestamp       time.Time
	DurationSeconds *int
}

// MaxReferrerLength is the number of referrer characters kept on a page view
const MaxReferrerLength = 1000

// NewPageView validates and creates a page view
func NewPageView(path, sessionID, language, referrer string) (*PageView, error) {
	path = strings.TrimSpace(path)
	sessionID = strings.TrimSpace(sessionID)
	if path == "" || !strings.HasPrefix(path, "/") || utf8.RuneCountInString(path) > 500 {
		return nil, shared.NewDomainError("INVALID_PAGE_PATH", "Page path must be an absolute path")
	}
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	locale, _ := shared.ParseLocale(language)
	referrer = truncateRunes(strings.TrimSpace(referrer), MaxReferrerLength)
	return &PageView{
		ID:           uuid.New(),
		PagePath:     path,
		SessionID:    sessionID,
		UserLanguage: locale,
		Referrer:     referrer,
		Timestamp:    time.Now(),
	}, nil
}

// Event records a named interaction, optionally tied to a product
type Event struct {
	ID             uuid.UUID
	EventName      EventName
	Page           string
	ProductID      *uuid.UUID
	SessionID      string
	UserLanguage   shared.Locale
	Timestamp      time.Time
	AdditionalData map[string]any
}

// NewEvent validates and creates an event
func NewEvent(name EventName, page, sessionID, language string, productID *uuid.UUID, data map[string]any) (*Event, error) {
	if !name.IsKnown() {
		return nil, shared.NewDomainError("UNKNOWN_EVENT", "Unknown analytics event: "+string(name))
	}
	sessionID = strings.TrimSpace(sessionID)
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	locale, _ := shared.ParseLocale(language)
	if data == nil {
		data = map[string]any{}
	}
	return &Event{
		ID:             uuid.New(),
		EventName:      name,
		Page:           strings.TrimSpace(page),
		ProductID:      productID,
		SessionID:      sessionID,
		UserLanguage:   locale,
		Timestamp:      time.Now(),
		AdditionalData: data,
	}, nil
}

func validateSessionID(sessionID string) error {
	if sessionID == "" {
		return shared.NewDomainError("INVALID_SESSION", "Session ID is required")
	}
	if len(sessionID) > 64 {
		return shared.NewDomainError("INVALID_SESSION", "Session ID cannot exceed 64 characters")
	}
	return nil
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// PageCount is a page path with its view count
type PageCount struct {
	PagePath string `json:"page_path"`
	Views    int64  `json:"views"`
}

// Repository persists page views and events and answers dashboard aggregates
type Repository interface {
	SavePageView(ctx context.Context, view *PageView) error
	SaveEvent(ctx context.Context, event *Event) error
	CountPageViewsSince(ctx context.Context, since time.Time) (int64, error)
	CountSessionsSince(ctx context.Context, since time.Time) (int64, error)
	CountEventsByNameSince(ctx context.Context, since time.Time) (map[string]int64, error)
	TopPagesSince(ctx context.Context, since time.Time, limit int) ([]PageCount, error)
}
