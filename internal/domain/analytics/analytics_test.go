package analytics

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

func TestNewPageView(t *testing.T) {
	v, err := NewPageView("/tl/products", "sess-1", "tl", "https://google.com")
	require.NoError(t, err)
	assert.Equal(t, shared.LocaleTagalog, v.UserLanguage)
	assert.Equal(t, "https://google.com", v.Referrer)
	assert.False(t, v.Timestamp.IsZero())

	_, err = NewPageView("products", "sess-1", "en", "")
	require.Error(t, err)

	_, err = NewPageView("/en", "", "en", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Session ID is required")

	_, err = NewPageView("/en", strings.Repeat("s", 65), "en", "")
	require.Error(t, err)
}

func TestNewPageView_TruncatesReferrerOnRuneBoundary(t *testing.T) {
	referrer := "https://example.ph/" + strings.Repeat("ñ", MaxReferrerLength)
	v, err := NewPageView("/en", "sess-1", "en", referrer)
	require.NoError(t, err)
	assert.Equal(t, MaxReferrerLength, utf8.RuneCountInString(v.Referrer))
	assert.True(t, utf8.ValidString(v.Referrer))
	assert.True(t, strings.HasPrefix(v.Referrer, "https://example.ph/ñ"))
}

func TestNewEvent(t *testing.T) {
	productID := uuid.New()
	e, err := NewEvent(EventCategoryClick, "/en", "sess-1", "xx", &productID, nil)
	require.NoError(t, err)
	assert.Equal(t, shared.LocaleEnglish, e.UserLanguage)
	assert.NotNil(t, e.AdditionalData)
	assert.Equal(t, productID, *e.ProductID)

	_, err = NewEvent("button_mash", "/en", "sess-1", "en", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown analytics event")

	_, err = NewEvent(EventContactFormSubmit, "/en/contact", " ", "en", nil, nil)
	require.Error(t, err)
}
