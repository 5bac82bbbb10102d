package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/analytics"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// PageViewModel is the persistence model for a PageView.
type PageViewModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PagePath        string    `gorm:"type:varchar(500);not null;index"`
	SessionID       string    `gorm:"type:varchar(64);not null;index"`
	UserLanguage    string    `gorm:"type:varchar(5);not null"`
	Referrer        *string   `gorm:"type:text"`
	Timestamp       time.Time `gorm:"column:timestamp;not null;index"`
	DurationSeconds *int
}

// TableName returns the table name for GORM
func (PageViewModel) TableName() string {
	return "page_views"
}

// PageViewModelFromDomain creates a persistence model from a domain PageView.
func PageViewModelFromDomain(v *analytics.PageView) *PageViewModel {
	m := &PageViewModel{
		ID:              v.ID,
		PagePath:        v.PagePath,
		SessionID:       v.SessionID,
		UserLanguage:    v.UserLanguage.String(),
		Timestamp:       v.Timestamp,
		DurationSeconds: v.DurationSeconds,
	}
	if v.Referrer != "" {
		ref := v.Referrer
		m.Referrer = &ref
	}
	return m
}

// ToDomain converts the persistence model to a domain PageView.
func (m *PageViewModel) ToDomain() *analytics.PageView {
	v := &analytics.PageView{
		ID:              m.ID,
		PagePath:        m.PagePath,
		SessionID:       m.SessionID,
		UserLanguage:    shared.Locale(m.UserLanguage),
		Timestamp:       m.Timestamp,
		DurationSeconds: m.DurationSeconds,
	}
	if m.Referrer != nil {
		v.Referrer = *m.Referrer
	}
	return v
}

// AnalyticsEventModel is the persistence model for an analytics Event.
type AnalyticsEventModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EventName      string         `gorm:"type:varchar(50);not null;index"`
	Page           string         `gorm:"type:varchar(500)"`
	ProductID      *uuid.UUID     `gorm:"type:uuid;index"`
	SessionID      string         `gorm:"type:varchar(64);not null"`
	UserLanguage   string         `gorm:"type:varchar(5);not null"`
	Timestamp      time.Time      `gorm:"column:timestamp;not null;index"`
	AdditionalData map[string]any `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (AnalyticsEventModel) TableName() string {
	return "analytics_events"
}

// AnalyticsEventModelFromDomain creates a persistence model from a domain Event.
func AnalyticsEventModelFromDomain(e *analytics.Event) *AnalyticsEventModel {
	return &AnalyticsEventModel{
		ID:             e.ID,
		EventName:      string(e.EventName),
		Page:           e.Page,
		ProductID:      e.ProductID,
		SessionID:      e.SessionID,
		UserLanguage:   e.UserLanguage.String(),
		Timestamp:      e.Timestamp,
		AdditionalData: e.AdditionalData,
	}
}

// ToDomain converts the persistence model to a domain Event.
func (m *AnalyticsEventModel) ToDomain() *analytics.Event {
	return &analytics.Event{
		ID:             m.ID,
		EventName:      analytics.EventName(m.EventName),
		Page:           m.Page,
		ProductID:      m.ProductID,
		SessionID:      m.SessionID,
		UserLanguage:   shared.Locale(m.UserLanguage),
		Timestamp:      m.Timestamp,
		AdditionalData: m.AdditionalData,
	}
}
