package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/inquiry"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSubmissionRepository implements SubmissionRepository using GORM
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewGormSubmissionRepository creates a new GormSubmissionRepository
func NewGormSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// FindByID finds a submission by its ID
func (r *GormSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inquiry.ContactSubmission, error) {
	var model models.ContactSubmissionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists submissions matching the read filter, newest first
func (r *GormSubmissionRepository) FindAll(ctx context.Context, filter inquiry.ReadFilter) ([]inquiry.ContactSubmission, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if read := filter.IsReadValue(); read != nil {
		query = query.Where("is_read = ?", *read)
	}

	var submissionModels []models.ContactSubmissionModel
	if err := query.Find(&submissionModels).Error; err != nil {
		return nil, err
	}
	submissions := make([]inquiry.ContactSubmission, len(submissionModels))
	for i := range submissionModels {
		submissions[i] = *submissionModels[i].ToDomain()
	}
	return submissions, nil
}

// Save creates or updates a submission
func (r *GormSubmissionRepository) Save(ctx context.Context, submission *inquiry.ContactSubmission) error {
	return r.db.WithContext(ctx).Save(models.ContactSubmissionModelFromDomain(submission)).Error
}

// Delete deletes a submission
func (r *GormSubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContactSubmissionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountUnread counts submissions not yet read
func (r *GormSubmissionRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ContactSubmissionModel{}).
		Where("is_read = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
