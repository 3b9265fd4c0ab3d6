package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stylerag/backend/internal/domain"
)

// DefaultCatalogJSON is the built-in catalog used when no source is given
const DefaultCatalogJSON = `[
    {"name": "CLASSIC JACKET", "category": "Jacket", "price": 2999, "fabric": "wool blend", "description": "Versatile jacket for trendy looks.", "link": "https://example.com/products/classic-jacket"},
    {"name": "SLIM FIT PANTS", "category": "Bottoms", "price": 2499, "fabric": "cotton", "description": "Modern slim-fit pants.", "link": "https://example.com/products/slim-pants"},
    {"name": "CASUAL SHIRT", "category": "Shirt", "price": 1999, "fabric": "cotton", "description": "Relaxed unisex shirt.", "link": "https://example.com/products/casual-shirt"},
    {"name": "GRAPHIC TEE", "category": "T-Shirt", "price": 1499, "fabric": "jersey", "description": "Bold graphic t-shirt.", "link": "https://example.com/products/graphic-tee"},
    {"name": "COZY HOODIE", "category": "Hoodie", "price": 3499, "fabric": "fleece", "description": "Comfortable oversized hoodie.", "link": "https://example.com/products/cozy-hoodie"}
]`

// ParseCatalogJSON decodes a JSON array of catalog items. An empty string
// yields the built-in catalog.
func ParseCatalogJSON(s string) ([]domain.CatalogItem, error) {
	if strings.TrimSpace(s) == "" {
		s = DefaultCatalogJSON
	}
	var items []domain.CatalogItem
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("invalid catalog json: %w", err)
	}
	return items, nil
}

// DefaultCatalog returns the built-in catalog
func DefaultCatalog() []domain.CatalogItem {
	items, err := ParseCatalogJSON(DefaultCatalogJSON)
	if err != nil {
		panic(err)
	}
	return items
}
