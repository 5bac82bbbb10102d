package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/catalog"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// FeaturedLimit is how many featured products the home page shows
const FeaturedLimit = 4

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	images      ImageRemover
	logger      *zap.Logger
}

// NewProductService creates a new ProductService.
// images may be nil, in which case product deletion leaves stored images alone.
func NewProductService(productRepo catalog.ProductRepository, images ImageRemover, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		images:      images,
		logger:      logger,
	}
}

// ListPublic returns available products narrowed by category key and search query
func (s *ProductService) ListPublic(ctx context.Context, category, query string, locale shared.Locale) ([]ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "list_public",
		telemetry.WithAttribute(telemetry.SpanAttrCategory, category),
		telemetry.WithAttribute(telemetry.SpanAttrLocale, locale.String()),
	)
	defer span.End()

	products, err := s.productRepo.FindAvailable(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	filtered := catalog.FilterProducts(products, catalog.ParseCategoryKey(category), query, locale)
	telemetry.SetAttributes(span, telemetry.SpanAttrResultCount, len(filtered))
	return ToProductResponses(filtered), nil
}

// ListFeatured returns up to FeaturedLimit featured, available products
func (s *ProductService) ListFeatured(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindFeatured(ctx, FeaturedLimit)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// GetPublic returns an available product; hidden products are reported as not found
func (s *ProductService) GetPublic(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.Availability {
		return nil, shared.ErrNotFound
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns a page of products for the admin panel
func (s *ProductService) List(ctx context.Context, query ListProductsQuery) (*shared.Paginated[ProductResponse], error) {
	filter := query.toFilter()

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetByID returns any product, including hidden ones
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "create")
	defer span.End()

	product, err := catalog.NewProductFromDetails(req.details())
	if err != nil {
		return nil, err
	}
	if err := product.SetImages(req.Images); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrProductID, product.ID.String())
	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("category", product.Category),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// Update replaces the editable fields and gallery of a product.
// Images dropped from the gallery are removed from storage.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "update",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, id.String()))
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := append([]string(nil), product.Images...)
	if err := product.Update(req.details()); err != nil {
		return nil, err
	}
	if err := product.SetImages(req.Images); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.deleteImages(ctx, removedImages(previous, product.Images))

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product and, best effort, its stored images
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, id.String()))
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.deleteImages(ctx, product.Images)
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// ToggleFeatured flips the featured flag of a product
func (s *ProductService) ToggleFeatured(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.ToggleFeatured()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// SetAvailability shows or hides a product in the storefront
func (s *ProductService) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.SetAvailability(available)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Count returns the number of products, used by the dashboard
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.productRepo.Count(ctx, shared.DefaultFilter())
}

// deleteImages removes stored images; failures are logged and otherwise ignored
func (s *ProductService) deleteImages(ctx context.Context, urls []string) {
	if s.images == nil {
		return
	}
	for _, url := range urls {
		if err := s.images.Delete(ctx, url); err != nil {
			s.logger.Warn("Failed to delete product image",
				zap.String("url", url),
				zap.Error(err),
			)
		}
	}
}

func removedImages(before, after []string) []string {
	kept := make(map[string]struct{}, len(after))
	for _, u := range after {
		kept[u] = struct{}{}
	}
	var removed []string
	for _, u := range before {
		if _, ok := kept[u]; !ok {
			removed = append(removed, u)
		}
	}
	return removed
}
