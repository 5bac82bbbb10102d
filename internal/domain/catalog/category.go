package catalog

import (
	"strings"

	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// CategoryKey identifies a storefront category tile
type CategoryKey string

const (
	CategoryAll         CategoryKey = "all"
	CategoryPrinting    CategoryKey = "printing"
	CategorySouvenirs   CategoryKey = "souvenirs"
	CategoryInvitations CategoryKey = "invitations"
	CategoryDigital     CategoryKey = "digital"
)

// Categories lists the browsable categories in display order
var Categories = []CategoryKey{
	CategoryPrinting,
	CategorySouvenirs,
	CategoryInvitations,
	CategoryDigital,
}

// ParseCategoryKey normalizes a category key. Empty input means CategoryAll.
func ParseCategoryKey(s string) CategoryKey {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll
	}
	return CategoryKey(s)
}

// Matches reports whether a product category belongs to this key.
// Categories are free text ("Printing Services"), so the key is matched as a substring.
func (k CategoryKey) Matches(category string) bool {
	if k == CategoryAll || k == "" {
		return true
	}
	return strings.Contains(strings.ToLower(category), string(k))
}

// FilterProducts narrows an already loaded product list by category key and a
// free-text query over the localized name and description. Order is preserved.
func FilterProducts(products []Product, key CategoryKey, query string, locale shared.Locale) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !key.Matches(p.Category) {
			continue
		}
		if query != "" {
			name := strings.ToLower(p.Name.In(locale))
			desc := strings.ToLower(p.Description.In(locale))
			if !strings.Contains(name, query) && !strings.Contains(desc, query) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
