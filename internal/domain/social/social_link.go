package social

import (
	"context"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// DefaultShopeeURL is used when no active Shopee link is configured
const DefaultShopeeURL = "https://shopee.ph/tlsyhandicrafts"

// PlatformShopee names the marketplace link shown on the shopee page
const PlatformShopee = "Shopee"

// SocialLink is an external profile shown in the storefront footer
type SocialLink struct {
	shared.BaseEntity
	Platform string
	URL      string
	IsActive bool
	IconName string
}

// NewSocialLink creates an active link
func NewSocialLink(platform, rawURL, iconName string) (*SocialLink, error) {
	l := &SocialLink{BaseEntity: shared.NewBaseEntity(), IsActive: true}
	if err := l.Update(platform, rawURL, iconName, true); err != nil {
		return nil, err
	}
	return l, nil
}

// Update replaces the link fields
func (l *SocialLink) Update(platform, rawURL, iconName string, active bool) error {
	platform = strings.TrimSpace(platform)
	rawURL = strings.TrimSpace(rawURL)
	if platform == "" {
		return shared.NewDomainError("INVALID_PLATFORM", "Platform cannot be empty")
	}
	if utf8.RuneCountInString(platform) > 50 {
		return shared.NewDomainError("INVALID_PLATFORM", "Platform cannot exceed 50 characters")
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return shared.NewDomainError("INVALID_URL", "Link must be an absolute http(s) URL")
	}

	l.Platform = platform
	l.URL = rawURL
	l.IconName = strings.TrimSpace(iconName)
	l.IsActive = active
	l.UpdatedAt = time.Now()
	return nil
}

// ShopeeURL picks the active Shopee link from links, or fallback when there is none.
// An empty fallback means DefaultShopeeURL.
func ShopeeURL(links []SocialLink, fallback string) string {
	for _, l := range links {
		if l.IsActive && strings.EqualFold(l.Platform, PlatformShopee) && l.URL != "" {
			return l.URL
		}
	}
	if fallback == "" {
		return DefaultShopeeURL
	}
	return fallback
}

// LinkRepository defines the interface for social link persistence
type LinkRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SocialLink, error)
	FindAll(ctx context.Context) ([]SocialLink, error)
	FindActive(ctx context.Context) ([]SocialLink, error)
	Save(ctx context.Context, link *SocialLink) error
	Delete(ctx context.Context, id uuid.UUID) error
}
