package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/catalog"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(productModels), nil
}

// FindAvailable finds all products visible in the storefront, newest first
func (r *GormProductRepository) FindAvailable(ctx context.Context) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("availability = ?", true).
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(productModels), nil
}

// FindFeatured finds featured and available products, newest first
func (r *GormProductRepository) FindFeatured(ctx context.Context, limit int) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.db.WithContext(ctx).
		Where("featured = ? AND availability = ?", true, true).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(productModels), nil
}

// Save creates the product or updates it when the stored version still matches.
// A stale version yields shared.ErrConcurrencyConflict; on success product.Version
// reflects the stored row.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	db := r.db.WithContext(ctx)
	model := models.ProductModelFromDomain(product)

	var existing int64
	if err := db.Model(&models.ProductModel{}).Where("id = ?", product.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing == 0 {
		if model.Version == 0 {
			model.Version = 1
		}
		if err := db.Create(model).Error; err != nil {
			return err
		}
		product.Version = model.Version
		return nil
	}

	current := product.Version
	model.Version = current + 1
	result := db.Model(model).
		Where("version = ?", current).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	product.Version = model.Version
	return nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options, pagination and ordering to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query.Order(productOrderClause(filter.OrderBy, filter.OrderDir))
}

// applyFilterWithoutPagination applies search and field filters.
// Search is case-insensitive over both name and description translations.
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(product_name) LIKE ? OR LOWER(product_name_tl) LIKE ? OR LOWER(description) LIKE ? OR LOWER(description_tl) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			if k, ok := value.(catalog.CategoryKey); ok {
				value = string(k)
			}
			if s, ok := value.(string); ok && s != "" && s != string(catalog.CategoryAll) {
				query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(s)+"%")
			}
		case "featured":
			query = query.Where("featured = ?", value)
		case "availability":
			query = query.Where("availability = ?", value)
		}
	}

	return query
}

func toDomainProducts(productModels []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = *productModels[i].ToDomain()
	}
	return products
}
