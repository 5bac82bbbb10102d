package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tlsy/handicrafts/internal/domain/catalog"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAvailable(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindFeatured(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockImageRemover is a mock implementation of ImageRemover
type MockImageRemover struct {
	mock.Mock
}

func (m *MockImageRemover) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func newTestProduct(t *testing.T, en, tl, category string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(shared.NewLocalized(en, tl), category, decimal.NewFromInt(150))
	require.NoError(t, err)
	return p
}

func validProductRequest() ProductRequest {
	stock := 5
	return ProductRequest{
		ProductName:   "Personalized Mug",
		ProductNameTL: "Personalisadong Tasa",
		Category:      "Souvenirs",
		Price:         decimal.NewFromInt(250),
		Images:        []string{"http://localhost:9000/products/a.jpg"},
		StockQuantity: &stock,
	}
}

func TestProductService_ListPublic(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)

	products := []catalog.Product{
		*newTestProduct(t, "Tarpaulin Print", "Tarpaulin", "Printing Services"),
		*newTestProduct(t, "Wedding Invitation", "Imbitasyon sa Kasal", "Invitations"),
		*newTestProduct(t, "Keychain", "Susian", "Souvenirs"),
	}
	repo.On("FindAvailable", mock.Anything).Return(products, nil)

	t.Run("all categories", func(t *testing.T) {
		got, err := svc.ListPublic(ctx, "", "", shared.LocaleEnglish)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("category key", func(t *testing.T) {
		got, err := svc.ListPublic(ctx, "printing", "", shared.LocaleEnglish)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Tarpaulin Print", got[0].ProductName)
	})

	t.Run("query matches localized name", func(t *testing.T) {
		got, err := svc.ListPublic(ctx, "all", "kasal", shared.LocaleTagalog)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Wedding Invitation", got[0].ProductName)
	})
}

func TestProductService_ListFeatured(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)

	repo.On("FindFeatured", mock.Anything, FeaturedLimit).Return([]catalog.Product{*newTestProduct(t, "Mug", "", "Souvenirs")}, nil)

	got, err := svc.ListFeatured(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	repo.AssertExpectations(t)
}

func TestProductService_GetPublic(t *testing.T) {
	ctx := context.Background()

	t.Run("available product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, nil, nil)
		p := newTestProduct(t, "Mug", "", "Souvenirs")
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		got, err := svc.GetPublic(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, "PHP", got.Currency)
	})

	t.Run("hidden product is not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, nil, nil)
		p := newTestProduct(t, "Mug", "", "Souvenirs")
		p.SetAvailability(false)
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := svc.GetPublic(ctx, p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, nil, nil)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetPublic(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)

	featured := true
	query := ListProductsQuery{Page: 2, PageSize: 1, Category: "Souvenirs", Featured: &featured}
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 1 &&
			f.Filters["category"] == catalog.CategorySouvenirs &&
			f.Filters["featured"] == true
	})).Return([]catalog.Product{*newTestProduct(t, "Mug", "", "Souvenirs")}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(3), nil)

	page, err := svc.List(ctx, query)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	repo.AssertExpectations(t)
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with defaults", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, nil, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		got, err := svc.Create(ctx, validProductRequest())
		require.NoError(t, err)
		assert.Equal(t, "Personalized Mug", got.ProductName)
		assert.Equal(t, "Personalisadong Tasa", got.ProductNameTL)
		assert.True(t, got.Availability)
		assert.Equal(t, "PHP", got.Currency)
		assert.Equal(t, []string{"http://localhost:9000/products/a.jpg"}, got.Images)
		assert.NotNil(t, got.Specifications)
		repo.AssertExpectations(t)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, nil, nil)
		req := validProductRequest()
		req.Price = decimal.NewFromInt(-1)

		_, err := svc.Create(ctx, req)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("propagates save error", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, nil, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := svc.Create(ctx, validProductRequest())
		assert.EqualError(t, err, "db down")
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	images := new(MockImageRemover)
	svc := NewProductService(repo, images, nil)

	p := newTestProduct(t, "Mug", "", "Souvenirs")
	require.NoError(t, p.SetImages([]string{"http://x/products/old.jpg", "http://localhost:9000/products/a.jpg"}))
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)
	images.On("Delete", mock.Anything, "http://x/products/old.jpg").Return(nil)

	req := validProductRequest()
	hidden := false
	req.Availability = &hidden

	got, err := svc.Update(ctx, p.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Personalized Mug", got.ProductName)
	assert.False(t, got.Availability)
	assert.Equal(t, []string{"http://localhost:9000/products/a.jpg"}, got.Images)
	images.AssertExpectations(t)
}

func TestProductService_Update_Conflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)

	p := newTestProduct(t, "Mug", "", "Souvenirs")
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(shared.ErrConcurrencyConflict)

	_, err := svc.Update(ctx, p.ID, validProductRequest())
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes images best effort", func(t *testing.T) {
		repo := new(MockProductRepository)
		images := new(MockImageRemover)
		svc := NewProductService(repo, images, nil)

		p := newTestProduct(t, "Mug", "", "Souvenirs")
		require.NoError(t, p.SetImages([]string{"http://x/products/1.jpg", "http://x/products/2.jpg"}))
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		repo.On("Delete", mock.Anything, p.ID).Return(nil)
		images.On("Delete", mock.Anything, "http://x/products/1.jpg").Return(errors.New("storage down"))
		images.On("Delete", mock.Anything, "http://x/products/2.jpg").Return(nil)

		require.NoError(t, svc.Delete(ctx, p.ID))
		images.AssertNumberOfCalls(t, "Delete", 2)
	})

	t.Run("keeps images when row delete fails", func(t *testing.T) {
		repo := new(MockProductRepository)
		images := new(MockImageRemover)
		svc := NewProductService(repo, images, nil)

		p := newTestProduct(t, "Mug", "", "Souvenirs")
		require.NoError(t, p.SetImages([]string{"http://x/products/1.jpg"}))
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		repo.On("Delete", mock.Anything, p.ID).Return(errors.New("db down"))

		require.Error(t, svc.Delete(ctx, p.ID))
		images.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestProductService_ToggleFeatured(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil, nil)

	p := newTestProduct(t, "Mug", "", "Souvenirs")
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	got, err := svc.ToggleFeatured(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Featured)
}

func TestRemovedImages(t *testing.T) {
	assert.Equal(t, []string{"a"}, removedImages([]string{"a", "b"}, []string{"b", "c"}))
	assert.Empty(t, removedImages([]string{"a"}, []string{"a"}))
}
