package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tlsy/handicrafts/internal/domain/catalog"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// ProductRequest is the admin create/update payload. Field names follow the products table.
type ProductRequest struct {
	ProductName            string          `json:"product_name" binding:"required,max=200"`
	ProductNameTL          string          `json:"product_name_tl" binding:"max=200"`
	Description            string          `json:"description" binding:"max=5000"`
	DescriptionTL          string          `json:"description_tl" binding:"max=5000"`
	ShortDescription       string          `json:"short_description" binding:"max=500"`
	ShortDescriptionTL     string          `json:"short_description_tl" binding:"max=500"`
	Category               string          `json:"category" binding:"required,max=100"`
	Price                  decimal.Decimal `json:"price"`
	PriceNotes             string          `json:"price_notes" binding:"max=500"`
	PriceNotesTL           string          `json:"price_notes_tl" binding:"max=500"`
	Images                 []string        `json:"images" binding:"max=12,dive,uri"`
	Specifications         map[string]any  `json:"specifications"`
	TurnaroundTime         string          `json:"turnaround_time" binding:"max=100"`
	TurnaroundTimeTL       string          `json:"turnaround_time_tl" binding:"max=100"`
	CustomizationAvailable bool            `json:"customization_available"`
	Availability           *bool           `json:"availability"`
	StockQuantity          *int            `json:"stock_quantity" binding:"omitempty,min=0"`
	Featured               bool            `json:"featured"`
}

// details maps the request onto the domain's editable fields; availability defaults to true
func (r ProductRequest) details() catalog.ProductDetails {
	available := true
	if r.Availability != nil {
		available = *r.Availability
	}
	return catalog.ProductDetails{
		Name:                   shared.NewLocalized(r.ProductName, r.ProductNameTL),
		Description:            shared.NewLocalized(r.Description, r.DescriptionTL),
		ShortDescription:       shared.NewLocalized(r.ShortDescription, r.ShortDescriptionTL),
		Category:               r.Category,
		Price:                  r.Price,
		PriceNotes:             shared.NewLocalized(r.PriceNotes, r.PriceNotesTL),
		Specifications:         r.Specifications,
		TurnaroundTime:         shared.NewLocalized(r.TurnaroundTime, r.TurnaroundTimeTL),
		CustomizationAvailable: r.CustomizationAvailable,
		Availability:           available,
		StockQuantity:          r.StockQuantity,
		Featured:               r.Featured,
	}
}

// ProductResponse represents a product in API responses and storefront pages
type ProductResponse struct {
	ID                     uuid.UUID       `json:"id"`
	ProductName            string          `json:"product_name"`
	ProductNameTL          string          `json:"product_name_tl"`
	Description            string          `json:"description"`
	DescriptionTL          string          `json:"description_tl"`
	ShortDescription       string          `json:"short_description"`
	ShortDescriptionTL     string          `json:"short_description_tl"`
	Category               string          `json:"category"`
	Price                  decimal.Decimal `json:"price"`
	Currency               string          `json:"currency"`
	PriceNotes             string          `json:"price_notes"`
	PriceNotesTL           string          `json:"price_notes_tl"`
	Images                 []string        `json:"images"`
	Specifications         map[string]any  `json:"specifications"`
	TurnaroundTime         string          `json:"turnaround_time"`
	TurnaroundTimeTL       string          `json:"turnaround_time_tl"`
	CustomizationAvailable bool            `json:"customization_available"`
	Availability           bool            `json:"availability"`
	StockQuantity          *int            `json:"stock_quantity"`
	Featured               bool            `json:"featured"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
	Version                int             `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	specs := p.Specifications
	if specs == nil {
		specs = map[string]any{}
	}
	return ProductResponse{
		ID:                     p.ID,
		ProductName:            p.Name.EN,
		ProductNameTL:          p.Name.TL,
		Description:            p.Description.EN,
		DescriptionTL:          p.Description.TL,
		ShortDescription:       p.ShortDescription.EN,
		ShortDescriptionTL:     p.ShortDescription.TL,
		Category:               p.Category,
		Price:                  p.Price,
		Currency:               p.Currency,
		PriceNotes:             p.PriceNotes.EN,
		PriceNotesTL:           p.PriceNotes.TL,
		Images:                 images,
		Specifications:         specs,
		TurnaroundTime:         p.TurnaroundTime.EN,
		TurnaroundTimeTL:       p.TurnaroundTime.TL,
		CustomizationAvailable: p.CustomizationAvailable,
		Availability:           p.Availability,
		StockQuantity:          p.StockQuantity,
		Featured:               p.Featured,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
		Version:                p.Version,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// LocalizedName returns the product name in loc, falling back to English
func (r ProductResponse) LocalizedName(loc shared.Locale) string {
	return shared.NewLocalized(r.ProductName, r.ProductNameTL).In(loc)
}

// LocalizedDescription returns the description in loc, falling back to English
func (r ProductResponse) LocalizedDescription(loc shared.Locale) string {
	return shared.NewLocalized(r.Description, r.DescriptionTL).In(loc)
}

// LocalizedShortDescription returns the short description in loc, falling back to English
func (r ProductResponse) LocalizedShortDescription(loc shared.Locale) string {
	return shared.NewLocalized(r.ShortDescription, r.ShortDescriptionTL).In(loc)
}

// LocalizedPriceNotes returns the price notes in loc, falling back to English
func (r ProductResponse) LocalizedPriceNotes(loc shared.Locale) string {
	return shared.NewLocalized(r.PriceNotes, r.PriceNotesTL).In(loc)
}

// LocalizedTurnaround returns the turnaround time in loc, falling back to English
func (r ProductResponse) LocalizedTurnaround(loc shared.Locale) string {
	return shared.NewLocalized(r.TurnaroundTime, r.TurnaroundTimeTL).In(loc)
}

// PrimaryImage returns the first image URL or ""
func (r ProductResponse) PrimaryImage() string {
	if len(r.Images) == 0 {
		return ""
	}
	return r.Images[0]
}

// ListProductsQuery holds the admin list parameters
type ListProductsQuery struct {
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search       string `form:"search" binding:"max=100"`
	Category     string `form:"category"`
	Featured     *bool  `form:"featured"`
	Availability *bool  `form:"availability"`
}

// toFilter converts the query to a repository filter with defaults applied
func (q ListProductsQuery) toFilter() shared.Filter {
	f := shared.DefaultFilter()
	if q.Page > 0 {
		f.Page = q.Page
	}
	if q.PageSize > 0 {
		f.PageSize = q.PageSize
	}
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		f.OrderDir = q.OrderDir
	}
	f.Search = q.Search
	if q.Category != "" {
		f.Filters["category"] = catalog.ParseCategoryKey(q.Category)
	}
	if q.Featured != nil {
		f.Filters["featured"] = *q.Featured
	}
	if q.Availability != nil {
		f.Filters["availability"] = *q.Availability
	}
	return f
}

// ImageUploadResponse is returned after a successful image upload
type ImageUploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
