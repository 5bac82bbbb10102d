package profile

import (
	"context"
	"errors"

	"github.com/tlsy/handicrafts/internal/domain/profile"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"go.uber.org/zap"
)

// ProfileService reads and edits the crafter profile
type ProfileService struct {
	repo   profile.ProfileRepository
	logger *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(repo profile.ProfileRepository, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, logger: logger}
}

// Get returns the saved profile, or the default profile when none exists yet
func (s *ProfileService) Get(ctx context.Context) (*ProfileResponse, error) {
	p, err := s.repo.Get(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		p = profile.DefaultCrafterProfile()
	} else if err != nil {
		return nil, err
	}
	response := ToProfileResponse(p)
	return &response, nil
}

// Update creates the profile on first save and updates it afterwards
func (s *ProfileService) Update(ctx context.Context, req UpdateProfileRequest) (*ProfileResponse, error) {
	p, err := s.repo.Get(ctx)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		p, err = profile.NewCrafterProfile(shared.NewLocalized(req.CrafterName, req.CrafterNameTL))
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if err := p.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Crafter profile updated", zap.String("profile_id", p.ID.String()))
	response := ToProfileResponse(p)
	return &response, nil
}
