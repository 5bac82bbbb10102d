package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/domain/social"
	"github.com/tlsy/handicrafts/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSocialLinkRepository implements LinkRepository using GORM
type GormSocialLinkRepository struct {
	db *gorm.DB
}

// NewGormSocialLinkRepository creates a new GormSocialLinkRepository
func NewGormSocialLinkRepository(db *gorm.DB) *GormSocialLinkRepository {
	return &GormSocialLinkRepository{db: db}
}

// FindByID finds a link by its ID
func (r *GormSocialLinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.SocialLink, error) {
	var model models.SocialLinkModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists every link ordered by platform
func (r *GormSocialLinkRepository) FindAll(ctx context.Context) ([]social.SocialLink, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindActive lists active links ordered by platform
func (r *GormSocialLinkRepository) FindActive(ctx context.Context) ([]social.SocialLink, error) {
	return r.find(r.db.WithContext(ctx).Where("is_active = ?", true))
}

func (r *GormSocialLinkRepository) find(query *gorm.DB) ([]social.SocialLink, error) {
	var linkModels []models.SocialLinkModel
	if err := query.Order("platform ASC").Find(&linkModels).Error; err != nil {
		return nil, err
	}
	links := make([]social.SocialLink, len(linkModels))
	for i := range linkModels {
		links[i] = *linkModels[i].ToDomain()
	}
	return links, nil
}

// Save creates or updates a link
func (r *GormSocialLinkRepository) Save(ctx context.Context, link *social.SocialLink) error {
	return r.db.WithContext(ctx).Save(models.SocialLinkModelFromDomain(link)).Error
}

// Delete deletes a link
func (r *GormSocialLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SocialLinkModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
