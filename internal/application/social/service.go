package social

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/social"
	"go.uber.org/zap"
)

// SocialLinkRequest is the admin payload for a social link
type SocialLinkRequest struct {
	Platform string `json:"platform" binding:"required,max=50"`
	URL      string `json:"url" binding:"required,url,max=500"`
	IconName string `json:"icon_name" binding:"max=50"`
	IsActive *bool  `json:"is_active"`
}

func (r SocialLinkRequest) active() bool {
	return r.IsActive == nil || *r.IsActive
}

// SocialLinkResponse represents a social link
type SocialLinkResponse struct {
	ID        uuid.UUID `json:"id"`
	Platform  string    `json:"platform"`
	URL       string    `json:"url"`
	IconName  string    `json:"icon_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToSocialLinkResponse converts a domain link
func ToSocialLinkResponse(l *social.SocialLink) SocialLinkResponse {
	return SocialLinkResponse{
		ID:        l.ID,
		Platform:  l.Platform,
		URL:       l.URL,
		IconName:  l.IconName,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
	}
}

func toResponses(links []social.SocialLink) []SocialLinkResponse {
	out := make([]SocialLinkResponse, len(links))
	for i := range links {
		out[i] = ToSocialLinkResponse(&links[i])
	}
	return out
}

// SocialService manages the footer links and resolves the Shopee shop URL
type SocialService struct {
	repo      social.LinkRepository
	shopeeURL string
	logger    *zap.Logger
}

// NewSocialService creates a new SocialService. shopeeURL is the fallback used
// when no active Shopee link exists.
func NewSocialService(repo social.LinkRepository, shopeeURL string, logger *zap.Logger) *SocialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SocialService{repo: repo, shopeeURL: shopeeURL, logger: logger}
}

// ListActive returns the links shown in the storefront footer
func (s *SocialService) ListActive(ctx context.Context) ([]SocialLinkResponse, error) {
	links, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(links), nil
}

// ShopeeURL returns the active Shopee link, or the configured fallback.
// Lookup failures are logged and resolve to the fallback.
func (s *SocialService) ShopeeURL(ctx context.Context) string {
	links, err := s.repo.FindActive(ctx)
	if err != nil {
		s.logger.Warn("Failed to load social links", zap.Error(err))
		links = nil
	}
	return social.ShopeeURL(links, s.shopeeURL)
}

// List returns all links for the admin panel
func (s *SocialService) List(ctx context.Context) ([]SocialLinkResponse, error) {
	links, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(links), nil
}

// Create creates a link
func (s *SocialService) Create(ctx context.Context, req SocialLinkRequest) (*SocialLinkResponse, error) {
	link, err := social.NewSocialLink(req.Platform, req.URL, req.IconName)
	if err != nil {
		return nil, err
	}
	link.IsActive = req.active()
	if err := s.repo.Save(ctx, link); err != nil {
		return nil, err
	}
	s.logger.Info("Social link created", zap.String("platform", link.Platform))
	response := ToSocialLinkResponse(link)
	return &response, nil
}

// Update replaces a link
func (s *SocialService) Update(ctx context.Context, id uuid.UUID, req SocialLinkRequest) (*SocialLinkResponse, error) {
	link, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := link.Update(req.Platform, req.URL, req.IconName, req.active()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, link); err != nil {
		return nil, err
	}
	response := ToSocialLinkResponse(link)
	return &response, nil
}

// Delete deletes a link
func (s *SocialService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
