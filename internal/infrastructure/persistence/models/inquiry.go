package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/inquiry"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// ContactSubmissionModel is the persistence model for a ContactSubmission.
type ContactSubmissionModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"type:varchar(100);not null"`
	Email              string    `gorm:"type:varchar(254);not null"`
	Phone              *string   `gorm:"type:varchar(30)"`
	Subject            string    `gorm:"type:varchar(200);not null"`
	Message            string    `gorm:"type:text;not null"`
	LanguagePreference string    `gorm:"type:varchar(5);not null"`
	IsRead             bool      `gorm:"not null;index"`
	CreatedAt          time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ContactSubmissionModel) TableName() string {
	return "contact_submissions"
}

// ToDomain converts the persistence model to a domain ContactSubmission.
func (m *ContactSubmissionModel) ToDomain() *inquiry.ContactSubmission {
	s := &inquiry.ContactSubmission{
		BaseEntity:         shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.CreatedAt},
		Name:               m.Name,
		Email:              m.Email,
		Subject:            m.Subject,
		Message:            m.Message,
		LanguagePreference: shared.Locale(m.LanguagePreference),
		IsRead:             m.IsRead,
	}
	if m.Phone != nil {
		s.Phone = *m.Phone
	}
	return s
}

// ContactSubmissionModelFromDomain creates a persistence model from a domain ContactSubmission.
// An empty phone is stored as NULL.
func ContactSubmissionModelFromDomain(s *inquiry.ContactSubmission) *ContactSubmissionModel {
	m := &ContactSubmissionModel{
		ID:                 s.ID,
		Name:               s.Name,
		Email:              s.Email,
		Subject:            s.Subject,
		Message:            s.Message,
		LanguagePreference: s.LanguagePreference.String(),
		IsRead:             s.IsRead,
		CreatedAt:          s.CreatedAt,
	}
	if s.Phone != "" {
		phone := s.Phone
		m.Phone = &phone
	}
	return m
}
