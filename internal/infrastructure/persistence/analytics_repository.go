package persistence

import (
	"context"
	"time"

	"github.com/tlsy/handicrafts/internal/domain/analytics"
	"github.com/tlsy/handicrafts/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAnalyticsRepository implements analytics.Repository using GORM
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormAnalyticsRepository creates a new GormAnalyticsRepository
func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// SavePageView stores a page view
func (r *GormAnalyticsRepository) SavePageView(ctx context.Context, view *analytics.PageView) error {
	return r.db.WithContext(ctx).Create(models.PageViewModelFromDomain(view)).Error
}

// SaveEvent stores an interaction event
func (r *GormAnalyticsRepository) SaveEvent(ctx context.Context, event *analytics.Event) error {
	return r.db.WithContext(ctx).Create(models.AnalyticsEventModelFromDomain(event)).Error
}

// CountPageViewsSince counts page views recorded at or after since
func (r *GormAnalyticsRepository) CountPageViewsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PageViewModel{}).
		Where(`"timestamp" >= ?`, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountSessionsSince counts distinct browsing sessions with a page view at or after since
func (r *GormAnalyticsRepository) CountSessionsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PageViewModel{}).
		Where(`"timestamp" >= ?`, since).
		Distinct("session_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type eventCountRow struct {
	EventName string
	Count     int64
}

// CountEventsByNameSince counts events per event name at or after since
func (r *GormAnalyticsRepository) CountEventsByNameSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	var rows []eventCountRow
	if err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEventModel{}).
		Select("event_name, count(*) as count").
		Where(`"timestamp" >= ?`, since).
		Group("event_name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EventName] = row.Count
	}
	return counts, nil
}

// TopPagesSince returns the most viewed pages at or after since
func (r *GormAnalyticsRepository) TopPagesSince(ctx context.Context, since time.Time, limit int) ([]analytics.PageCount, error) {
	if limit <= 0 {
		limit = 10
	}
	var pages []analytics.PageCount
	if err := r.db.WithContext(ctx).
		Model(&models.PageViewModel{}).
		Select("page_path, count(*) as views").
		Where(`"timestamp" >= ?`, since).
		Group("page_path").
		Order("views DESC, page_path ASC").
		Limit(limit).
		Scan(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}
