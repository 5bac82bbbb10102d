package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"product_name": true,
	"category":     true,
	"price":        true,
	"featured":     true,
	"availability": true,
}

// productSortAliases maps API sort names to columns
var productSortAliases = map[string]string{
	"name": "product_name",
}

func productOrderClause(orderBy, orderDir string) string {
	if col, ok := productSortAliases[strings.TrimSpace(orderBy)]; ok {
		orderBy = col
	}
	return ValidateSortField(orderBy, ProductSortFields, "created_at") + " " + ValidateSortOrder(orderDir)
}
