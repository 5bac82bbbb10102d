package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// Locale context and cookie keys
const (
	LocaleKey        = "locale"
	LocaleCookieName = "lang"
	LocaleQueryParam = "lang"
	localeCookieAge  = 365 * 24 * 60 * 60
)

// LanguageMatcher picks a supported locale from an Accept-Language header
type LanguageMatcher interface {
	Match(acceptLanguage string) shared.Locale
}

// ResolveLocale picks the request locale from the lang query parameter, then
// the lang cookie, then Accept-Language, then the default.
func ResolveLocale(c *gin.Context, matcher LanguageMatcher, fallback shared.Locale) shared.Locale {
	if loc, ok := shared.ParseLocale(c.Query(LocaleQueryParam)); ok {
		return loc
	}
	if cookie, err := c.Cookie(LocaleCookieName); err == nil {
		if loc, ok := shared.ParseLocale(cookie); ok {
			return loc
		}
	}
	if header := c.GetHeader("Accept-Language"); header != "" && matcher != nil {
		return matcher.Match(header)
	}
	return fallback
}

// Locale stores the resolved locale in the gin context. A supported :locale
// path parameter wins over every other source.
func Locale(matcher LanguageMatcher, fallback shared.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc, ok := shared.ParseLocale(c.Param("locale"))
		if !ok {
			loc = ResolveLocale(c, matcher, fallback)
		}
		c.Set(LocaleKey, loc)
		c.Next()
	}
}

// GetLocale returns the locale stored by Locale, or the default
func GetLocale(c *gin.Context) shared.Locale {
	if v, ok := c.Get(LocaleKey); ok {
		if loc, ok := v.(shared.Locale); ok {
			return loc
		}
	}
	return shared.DefaultLocale
}

// SetLocaleCookie remembers the chosen language for a year
func SetLocaleCookie(c *gin.Context, loc shared.Locale) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(LocaleCookieName, loc.String(), localeCookieAge, "/", "", false, false)
}
