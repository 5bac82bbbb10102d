package persistence

import (
	"context"
	"errors"

	"github.com/tlsy/handicrafts/internal/domain/profile"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProfileRepository implements ProfileRepository using GORM.
// The table holds at most one row; the oldest row wins if more exist.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Get returns the crafter profile
func (r *GormProfileRepository) Get(ctx context.Context) (*profile.CrafterProfile, error) {
	var model models.CrafterProfileModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the crafter profile
func (r *GormProfileRepository) Save(ctx context.Context, p *profile.CrafterProfile) error {
	return r.db.WithContext(ctx).Save(models.CrafterProfileModelFromDomain(p)).Error
}
