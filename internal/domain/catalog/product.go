package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// DefaultCurrency is the currency every product is priced in
const DefaultCurrency = "PHP"

// DefaultCategory is the category preselected for new products
const DefaultCategory = "Printing Services"

// MaxImages bounds the gallery size of a single product
const MaxImages = 12

// Product represents a handicraft or printing service offered in the storefront
type Product struct {
	shared.BaseAggregateRoot
	Name                   shared.Localized
	Description            shared.Localized
	ShortDescription       shared.Localized
	Category               string
	Price                  decimal.Decimal
	Currency               string
	PriceNotes             shared.Localized
	Images                 []string
	Specifications         map[string]any
	TurnaroundTime         shared.Localized
	CustomizationAvailable bool
	Availability           bool
	StockQuantity          *int
	Featured               bool
}

// ProductDetails carries the editable fields of a product
type ProductDetails struct {
	Name                   shared.Localized
	Description            shared.Localized
	ShortDescription       shared.Localized
	Category               string
	Price                  decimal.Decimal
	PriceNotes             shared.Localized
	Specifications         map[string]any
	TurnaroundTime         shared.Localized
	CustomizationAvailable bool
	Availability           bool
	StockQuantity          *int
	Featured               bool
}

// NewProduct creates an available, non-featured product priced in PHP
func NewProduct(name shared.Localized, category string, price decimal.Decimal) (*Product, error) {
	name = name.Trimmed()
	category = strings.TrimSpace(category)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
		Price:             price,
		Currency:          DefaultCurrency,
		Images:            []string{},
		Specifications:    map[string]any{},
		Availability:      true,
	}, nil
}

// NewProductFromDetails creates a product and applies all details at once
func NewProductFromDetails(d ProductDetails) (*Product, error) {
	p, err := NewProduct(d.Name, d.Category, d.Price)
	if err != nil {
		return nil, err
	}
	if err := p.Update(d); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields of the product
func (p *Product) Update(d ProductDetails) error {
	name := d.Name.Trimmed()
	category := strings.TrimSpace(d.Category)
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}
	if err := validatePrice(d.Price); err != nil {
		return err
	}
	if d.StockQuantity != nil && *d.StockQuantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	p.Name = name
	p.Description = d.Description
	p.ShortDescription = d.ShortDescription
	p.Category = category
	p.Price = d.Price
	p.PriceNotes = d.PriceNotes
	p.TurnaroundTime = d.TurnaroundTime
	p.CustomizationAvailable = d.CustomizationAvailable
	p.Availability = d.Availability
	p.StockQuantity = d.StockQuantity
	p.Featured = d.Featured
	p.Specifications = d.Specifications
	if p.Specifications == nil {
		p.Specifications = map[string]any{}
	}
	p.UpdatedAt = time.Now()
	return nil
}

// SetImages replaces the gallery, dropping blanks and duplicates while keeping order
func (p *Product) SetImages(urls []string) error {
	images := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		images = append(images, u)
	}
	if len(images) > MaxImages {
		return shared.NewDomainError("TOO_MANY_IMAGES", "A product can have at most 12 images")
	}
	p.Images = images
	p.UpdatedAt = time.Now()
	return nil
}

// AddImage appends an image to the gallery
func (p *Product) AddImage(url string) error {
	return p.SetImages(append(append([]string{}, p.Images...), url))
}

// RemoveImage drops url from the gallery and reports whether it was present
func (p *Product) RemoveImage(url string) bool {
	for i, img := range p.Images {
		if img == url {
			p.Images = append(p.Images[:i:i], p.Images[i+1:]...)
			p.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// ToggleFeatured flips whether the product is showcased on the home page
func (p *Product) ToggleFeatured() {
	p.Featured = !p.Featured
	p.UpdatedAt = time.Now()
}

// SetAvailability shows or hides the product in the storefront
func (p *Product) SetAvailability(available bool) {
	p.Availability = available
	p.UpdatedAt = time.Now()
}

// IsShowcased reports whether the product belongs in the featured section
func (p *Product) IsShowcased() bool {
	return p.Featured && p.Availability
}

// PrimaryImage returns the first gallery image or an empty string
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func validateProductName(name shared.Localized) error {
	if name.EN == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name.EN) > 200 || utf8.RuneCountInString(name.TL) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateCategory(category string) error {
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Product category cannot be empty")
	}
	if utf8.RuneCountInString(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Product category cannot exceed 100 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}
