package inquiry

import (
	"time"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/inquiry"
)

// SubmitContactRequest is the public contact form payload
type SubmitContactRequest struct {
	Name               string `json:"name" form:"name" binding:"required,max=100"`
	Email              string `json:"email" form:"email" binding:"required,email,max=254"`
	Phone              string `json:"phone" form:"phone" binding:"max=30"`
	Subject            string `json:"subject" form:"subject" binding:"required,max=200"`
	Message            string `json:"message" form:"message" binding:"required,max=5000"`
	LanguagePreference string `json:"language_preference" form:"language_preference" binding:"omitempty,oneof=en tl"`
	SessionID          string `json:"session_id" form:"session_id" binding:"max=64"`
}

// SubmissionResponse represents a contact submission
type SubmissionResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Subject            string    `json:"subject"`
	Message            string    `json:"message"`
	LanguagePreference string    `json:"language_preference"`
	IsRead             bool      `json:"is_read"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToSubmissionResponse converts a domain submission
func ToSubmissionResponse(s *inquiry.ContactSubmission) SubmissionResponse {
	return SubmissionResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Email:              s.Email,
		Phone:              s.Phone,
		Subject:            s.Subject,
		Message:            s.Message,
		LanguagePreference: s.LanguagePreference.String(),
		IsRead:             s.IsRead,
		CreatedAt:          s.CreatedAt,
	}
}

// MessageListResponse is the admin inbox
type MessageListResponse struct {
	Items       []SubmissionResponse `json:"items"`
	UnreadCount int64                `json:"unread_count"`
	Filter      string               `json:"filter"`
}
