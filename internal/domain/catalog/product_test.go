package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(shared.NewLocalized(" Wedding Invitation ", "Imbitasyon sa Kasal"), "Invitations", decimal.NewFromInt(45))
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "Wedding Invitation", product.Name.EN)
		assert.Equal(t, "Invitations", product.Category)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(45)))
		assert.Equal(t, "PHP", product.Currency)
		assert.True(t, product.Availability)
		assert.False(t, product.Featured)
		assert.Empty(t, product.Images)
		assert.NotNil(t, product.Specifications)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("fails with empty english name", func(t *testing.T) {
		_, err := NewProduct(shared.NewLocalized("", "Pangalan"), "Souvenirs", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewProduct(shared.NewLocalized(strings.Repeat("a", 201), ""), "Souvenirs", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})

	t.Run("accepts multibyte names up to the character limit", func(t *testing.T) {
		name := strings.Repeat("ñ", 200)
		product, err := NewProduct(shared.NewLocalized("Keychain", name), strings.Repeat("ó", 100), decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, name, product.Name.TL)

		_, err = NewProduct(shared.NewLocalized("Keychain", name+"ñ"), "Souvenirs", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})

	t.Run("fails with empty category", func(t *testing.T) {
		_, err := NewProduct(shared.NewLocalized("Keychain", ""), "  ", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "category cannot be empty")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct(shared.NewLocalized("Keychain", ""), "Souvenirs", decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Price cannot be negative")
	})
}

func TestProduct_Update(t *testing.T) {
	product, err := NewProduct(shared.NewLocalized("Tarpaulin", ""), DefaultCategory, decimal.NewFromInt(300))
	require.NoError(t, err)

	stock := 5
	err = product.Update(ProductDetails{
		Name:                   shared.NewLocalized("Tarpaulin Print", "Tarpaulin"),
		Description:            shared.NewLocalized("Full color", "Makulay"),
		Category:               "Printing Services",
		Price:                  decimal.RequireFromString("350.50"),
		TurnaroundTime:         shared.NewLocalized("2 days", "2 araw"),
		CustomizationAvailable: true,
		Availability:           false,
		StockQuantity:          &stock,
		Featured:               true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Tarpaulin Print", product.Name.EN)
	assert.Equal(t, "Makulay", product.Description.TL)
	assert.Equal(t, "350.5", product.Price.String())
	assert.False(t, product.Availability)
	assert.Equal(t, 5, *product.StockQuantity)
	assert.NotNil(t, product.Specifications)
	assert.False(t, product.IsShowcased())

	t.Run("rejects negative stock", func(t *testing.T) {
		negative := -1
		err := product.Update(ProductDetails{
			Name:          shared.NewLocalized("Tarpaulin", ""),
			Category:      "Printing",
			StockQuantity: &negative,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Stock quantity cannot be negative")
	})
}

func TestProduct_Images(t *testing.T) {
	product, err := NewProduct(shared.NewLocalized("Mug", ""), "Souvenirs", decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, product.SetImages([]string{"a.jpg", " ", "b.jpg", "a.jpg"}))
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, product.Images)
	assert.Equal(t, "a.jpg", product.PrimaryImage())

	require.NoError(t, product.AddImage("c.jpg"))
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, product.Images)

	assert.True(t, product.RemoveImage("b.jpg"))
	assert.False(t, product.RemoveImage("missing.jpg"))
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, product.Images)

	t.Run("rejects oversized gallery", func(t *testing.T) {
		urls := make([]string, MaxImages+1)
		for i := range urls {
			urls[i] = strings.Repeat("x", i+1) + ".jpg"
		}
		err := product.SetImages(urls)
		require.Error(t, err)
		assert.Len(t, product.Images, 2)
	})
}

func TestProduct_ToggleFeatured(t *testing.T) {
	product, err := NewProduct(shared.NewLocalized("Mug", ""), "Souvenirs", decimal.Zero)
	require.NoError(t, err)

	product.ToggleFeatured()
	assert.True(t, product.Featured)
	assert.True(t, product.IsShowcased())

	product.SetAvailability(false)
	assert.False(t, product.IsShowcased())

	product.ToggleFeatured()
	assert.False(t, product.Featured)
}
