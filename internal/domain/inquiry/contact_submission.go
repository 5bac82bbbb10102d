package inquiry

import (
	"crypto/sha256"
	"encoding/hex"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// Field limits for a submission
const (
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MaxPhoneLength   = 30
	MaxSubjectLength = 200
	MaxMessageLength = 5000
)

// ContactSubmission is an inquiry left through the storefront contact form
type ContactSubmission struct {
	shared.BaseEntity
	Name               string
	Email              string
	Phone              string
	Subject            string
	Message            string
	LanguagePreference shared.Locale
	IsRead             bool
}

// NewContactSubmission validates the form input and creates an unread submission
func NewContactSubmission(name, email, phone, subject, message, language string) (*ContactSubmission, error) {
	s := &ContactSubmission{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		Phone:      strings.TrimSpace(phone),
		Subject:    strings.TrimSpace(subject),
		Message:    strings.TrimSpace(message),
	}
	s.LanguagePreference, _ = shared.ParseLocale(language)

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ContactSubmission) validate() error {
	switch {
	case s.Name == "":
		return shared.NewDomainError("INVALID_NAME", "Name is required")
	case utf8.RuneCountInString(s.Name) > MaxNameLength:
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	case s.Email == "":
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	case utf8.RuneCountInString(s.Email) > MaxEmailLength || !isEmail(s.Email):
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	case utf8.RuneCountInString(s.Phone) > MaxPhoneLength:
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 30 characters")
	case s.Subject == "":
		return shared.NewDomainError("INVALID_SUBJECT", "Subject is required")
	case utf8.RuneCountInString(s.Subject) > MaxSubjectLength:
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot exceed 200 characters")
	case s.Message == "":
		return shared.NewDomainError("INVALID_MESSAGE", "Message is required")
	case utf8.RuneCountInString(s.Message) > MaxMessageLength:
		return shared.NewDomainError("INVALID_MESSAGE", "Message cannot exceed 5000 characters")
	}
	return nil
}

// isEmail accepts a bare address only, not "Name <addr>"
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}

// ToggleRead flips the read flag
func (s *ContactSubmission) ToggleRead() {
	s.IsRead = !s.IsRead
	s.UpdatedAt = time.Now()
}

// MarkRead marks the submission as read
func (s *ContactSubmission) MarkRead() {
	if s.IsRead {
		return
	}
	s.IsRead = true
	s.UpdatedAt = time.Now()
}

// Fingerprint identifies the content of a submission for duplicate detection
func (s *ContactSubmission) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(s.Email)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(s.Subject)))
	h.Write([]byte{0})
	h.Write([]byte(s.Message))
	return hex.EncodeToString(h.Sum(nil))
}

// ReadFilter selects submissions by read state in the admin inbox
type ReadFilter string

const (
	ReadFilterAll    ReadFilter = "all"
	ReadFilterUnread ReadFilter = "unread"
	ReadFilterRead   ReadFilter = "read"
)

// ParseReadFilter returns ReadFilterAll for anything unrecognized
func ParseReadFilter(s string) ReadFilter {
	switch ReadFilter(strings.ToLower(strings.TrimSpace(s))) {
	case ReadFilterUnread:
		return ReadFilterUnread
	case ReadFilterRead:
		return ReadFilterRead
	}
	return ReadFilterAll
}

// IsReadValue returns the is_read value to filter on, or nil for all
func (f ReadFilter) IsReadValue() *bool {
	var v bool
	switch f {
	case ReadFilterUnread:
		v = false
	case ReadFilterRead:
		v = true
	default:
		return nil
	}
	return &v
}
