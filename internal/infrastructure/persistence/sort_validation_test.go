package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"desc lowercase returns DESC", "desc", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE products;--", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns default", "", "created_at"},
		{"valid field returns field", "price", "price"},
		{"invalid field returns default", "password", "created_at"},
		{"sql injection attempt returns default", "price; DROP TABLE products;--", "created_at"},
		{"case sensitive", "PRICE", "created_at"},
		{"whitespace around valid field returns field", "  category  ", "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, ProductSortFields, "created_at"))
		})
	}
}

func TestProductOrderClause(t *testing.T) {
	assert.Equal(t, "created_at DESC", productOrderClause("", ""))
	assert.Equal(t, "product_name ASC", productOrderClause("name", "asc"))
	assert.Equal(t, "price DESC", productOrderClause("price", "desc"))
	assert.Equal(t, "created_at ASC", productOrderClause("id; --", "asc"))
}
