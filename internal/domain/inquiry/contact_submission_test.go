package inquiry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

func TestNewContactSubmission(t *testing.T) {
	t.Run("creates unread submission", func(t *testing.T) {
		s, err := NewContactSubmission(" Ana ", "ana@example.com", "", "Quote", "Need 100 invitations", "tl")
		require.NoError(t, err)
		assert.Equal(t, "Ana", s.Name)
		assert.Equal(t, shared.LocaleTagalog, s.LanguagePreference)
		assert.False(t, s.IsRead)
		assert.Empty(t, s.Phone)
		assert.NotEmpty(t, s.ID)
	})

	t.Run("unsupported language falls back to english", func(t *testing.T) {
		s, err := NewContactSubmission("Ana", "ana@example.com", "", "Quote", "Hi", "ja")
		require.NoError(t, err)
		assert.Equal(t, shared.LocaleEnglish, s.LanguagePreference)
	})

	t.Run("limits count characters not bytes", func(t *testing.T) {
		name := strings.Repeat("ñ", MaxNameLength)
		subject := strings.Repeat("é", MaxSubjectLength)
		s, err := NewContactSubmission(name, "ana@example.com", "", subject, strings.Repeat("ü", MaxMessageLength), "tl")
		require.NoError(t, err)
		assert.Equal(t, name, s.Name)

		_, err = NewContactSubmission(name+"ñ", "ana@example.com", "", "Quote", "Hi", "tl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Name cannot exceed 100 characters")
	})

	tests := []struct {
		name    string
		email   string
		subject string
		message string
		sender  string
		wantErr string
	}{
		{"missing name", "ana@example.com", "s", "m", "", "Name is required"},
		{"missing email", "", "s", "m", "Ana", "Email is required"},
		{"malformed email", "ana-at-example", "s", "m", "Ana", "Email address is not valid"},
		{"display name email", "Ana <ana@example.com>", "s", "m", "Ana", "Email address is not valid"},
		{"missing subject", "ana@example.com", "", "m", "Ana", "Subject is required"},
		{"missing message", "ana@example.com", "s", "  ", "Ana", "Message is required"},
		{"message too long", "ana@example.com", "s", strings.Repeat("m", MaxMessageLength+1), "Ana", "cannot exceed 5000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContactSubmission(tt.sender, tt.email, "", tt.subject, tt.message, "en")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestContactSubmission_ReadState(t *testing.T) {
	s, err := NewContactSubmission("Ana", "ana@example.com", "0917", "Quote", "Hi", "en")
	require.NoError(t, err)

	s.ToggleRead()
	assert.True(t, s.IsRead)
	s.ToggleRead()
	assert.False(t, s.IsRead)
	s.MarkRead()
	s.MarkRead()
	assert.True(t, s.IsRead)
}

func TestContactSubmission_Fingerprint(t *testing.T) {
	a, err := NewContactSubmission("Ana", "Ana@Example.com", "", "Quote", "Hello", "en")
	require.NoError(t, err)
	b, err := NewContactSubmission("Someone Else", "ana@example.com", "0917", "QUOTE", "Hello", "tl")
	require.NoError(t, err)
	c, err := NewContactSubmission("Ana", "ana@example.com", "", "Quote", "Hello again", "en")
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)
}

func TestParseReadFilter(t *testing.T) {
	assert.Equal(t, ReadFilterUnread, ParseReadFilter("UNREAD"))
	assert.Equal(t, ReadFilterRead, ParseReadFilter("read"))
	assert.Equal(t, ReadFilterAll, ParseReadFilter("bogus"))
	assert.Equal(t, ReadFilterAll, ParseReadFilter(""))

	assert.Nil(t, ReadFilterAll.IsReadValue())
	require.NotNil(t, ReadFilterUnread.IsReadValue())
	assert.False(t, *ReadFilterUnread.IsReadValue())
	assert.True(t, *ReadFilterRead.IsReadValue())
}
