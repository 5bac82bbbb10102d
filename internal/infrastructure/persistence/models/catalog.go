package models

import (
	"github.com/shopspring/decimal"
	"github.com/tlsy/handicrafts/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	ProductName            string          `gorm:"column:product_name;type:varchar(200);not null"`
	ProductNameTL          string          `gorm:"column:product_name_tl;type:varchar(200)"`
	Description            string          `gorm:"type:text"`
	DescriptionTL          string          `gorm:"column:description_tl;type:text"`
	ShortDescription       string          `gorm:"type:text"`
	ShortDescriptionTL     string          `gorm:"column:short_description_tl;type:text"`
	Category               string          `gorm:"type:varchar(100);not null;index"`
	Price                  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency               string          `gorm:"type:varchar(3);not null"`
	PriceNotes             string          `gorm:"type:text"`
	PriceNotesTL           string          `gorm:"column:price_notes_tl;type:text"`
	Images                 []string        `gorm:"type:jsonb;serializer:json"`
	Specifications         map[string]any  `gorm:"type:jsonb;serializer:json"`
	TurnaroundTime         string          `gorm:"type:varchar(100)"`
	TurnaroundTimeTL       string          `gorm:"column:turnaround_time_tl;type:varchar(100)"`
	CustomizationAvailable bool            `gorm:"not null"`
	Availability           bool            `gorm:"not null;index"`
	StockQuantity          *int
	Featured               bool `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	images := m.Images
	if images == nil {
		images = []string{}
	}
	specs := m.Specifications
	if specs == nil {
		specs = map[string]any{}
	}
	return &catalog.Product{
		BaseAggregateRoot:      m.ToDomainAggregateRoot(),
		Name:                   localized(m.ProductName, m.ProductNameTL),
		Description:            localized(m.Description, m.DescriptionTL),
		ShortDescription:       localized(m.ShortDescription, m.ShortDescriptionTL),
		Category:               m.Category,
		Price:                  m.Price,
		Currency:               m.Currency,
		PriceNotes:             localized(m.PriceNotes, m.PriceNotesTL),
		Images:                 images,
		Specifications:         specs,
		TurnaroundTime:         localized(m.TurnaroundTime, m.TurnaroundTimeTL),
		CustomizationAvailable: m.CustomizationAvailable,
		Availability:           m.Availability,
		StockQuantity:          m.StockQuantity,
		Featured:               m.Featured,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.ProductName = p.Name.EN
	m.ProductNameTL = p.Name.TL
	m.Description = p.Description.EN
	m.DescriptionTL = p.Description.TL
	m.ShortDescription = p.ShortDescription.EN
	m.ShortDescriptionTL = p.ShortDescription.TL
	m.Category = p.Category
	m.Price = p.Price
	m.Currency = p.Currency
	m.PriceNotes = p.PriceNotes.EN
	m.PriceNotesTL = p.PriceNotes.TL
	m.Images = p.Images
	if m.Images == nil {
		m.Images = []string{}
	}
	m.Specifications = p.Specifications
	if m.Specifications == nil {
		m.Specifications = map[string]any{}
	}
	m.TurnaroundTime = p.TurnaroundTime.EN
	m.TurnaroundTimeTL = p.TurnaroundTime.TL
	m.CustomizationAvailable = p.CustomizationAvailable
	m.Availability = p.Availability
	m.StockQuantity = p.StockQuantity
	m.Featured = p.Featured
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
