package shared

import "strings"

// Locale is a storefront language
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleTagalog Locale = "tl"

	DefaultLocale = LocaleEnglish
)

// SupportedLocales lists storefront languages in display order
var SupportedLocales = []Locale{LocaleEnglish, LocaleTagalog}

// ParseLocale normalizes s and reports whether it names a supported locale.
// Unsupported input yields DefaultLocale.
func ParseLocale(s string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleEnglish:
		return LocaleEnglish, true
	case LocaleTagalog:
		return LocaleTagalog, true
	}
	return DefaultLocale, false
}

// String returns the locale code
func (l Locale) String() string {
	return string(l)
}

// Localized holds a text in every supported locale
type Localized struct {
	EN string `json:"en"`
	TL string `json:"tl"`
}

// NewLocalized creates a Localized text
func NewLocalized(en, tl string) Localized {
	return Localized{EN: en, TL: tl}
}

// In returns the text for the locale, falling back to English when the translation is empty
func (l Localized) In(locale Locale) string {
	if locale == LocaleTagalog && strings.TrimSpace(l.TL) != "" {
		return l.TL
	}
	return l.EN
}

// IsEmpty reports whether neither translation has content
func (l Localized) IsEmpty() bool {
	return strings.TrimSpace(l.EN) == "" && strings.TrimSpace(l.TL) == ""
}

// Trimmed returns a copy with surrounding whitespace removed
func (l Localized) Trimmed() Localized {
	return Localized{EN: strings.TrimSpace(l.EN), TL: strings.TrimSpace(l.TL)}
}
