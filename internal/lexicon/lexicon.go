// Package lexicon holds the read-only fashion vocabulary: the category synonym
// map, the known materials and the keyword set derived from both.
package lexicon

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// GenericCategory is the canonical value for catch-all terms like "clothes".
// Such terms mark a query as fashion related without constraining category.
const GenericCategory = "clothing"

// DefaultCategoryMapping maps surface terms to canonical categories
var DefaultCategoryMapping = map[string]string{
	"tshirt": "T-Shirt", "t-shirt": "T-Shirt", "tee": "T-Shirt", "tees": "T-Shirt",
	"shirt": "Shirt", "shirts": "Shirt", "button-up": "Shirt", "button-down": "Shirt",
	"hoodie": "Hoodie", "hoodies": "Hoodie", "sweatshirt": "Hoodie",
	"jacket": "Jacket", "jackets": "Jacket", "coat": "Jacket", "blazer": "Jacket",
	"bottoms": "Bottoms", "jeans": "Bottoms", "pants": "Bottoms", "trousers": "Bottoms",
	"corset": "Corset", "corsets": "Corset", "bustier": "Corset",
	"bodysuit": "Bodysuit", "bodysuits": "Bodysuit",
	"clothes": GenericCategory, "clothing": GenericCategory, "outfit": GenericCategory,
}

// DefaultMaterials lists the canonical fabric names
var DefaultMaterials = []string{
	"denim", "cotton", "leather", "wool", "suede", "fleece", "spandex", "mesh",
	"polyester", "jersey", "flannel", "linen", "satin", "lycra", "modal", "terry",
}

// genericKeywords are fashion words that are neither categories nor materials
var genericKeywords = []string{"clothing", "wear", "outfit", "style", "fashion", "garment", "apparel"}

// Lexicon is immutable once built and safe for concurrent use
type Lexicon struct {
	categories    map[string]string
	categoryTerms []string
	materials     []string
	keywords      []string
}

// New builds a lexicon from a category mapping and a material list.
// Keys are lowercased; nil arguments select the defaults.
func New(categoryMapping map[string]string, materials []string) *Lexicon {
	if categoryMapping == nil {
		categoryMapping = DefaultCategoryMapping
	}
	if materials == nil {
		materials = DefaultMaterials
	}

	l := &Lexicon{
		categories: make(map[string]string, len(categoryMapping)),
		materials:  make([]string, 0, len(materials)),
	}

	keys := make([]string, 0, len(categoryMapping))
	for term, canonical := range categoryMapping {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		l.categories[term] = canonical
		keys = append(keys, term)
	}
	// map iteration order is random; sort so fuzzy tie-breaks are stable
	sort.Strings(keys)

	for _, term := range keys {
		if !strings.EqualFold(l.categories[term], GenericCategory) {
			l.categoryTerms = append(l.categoryTerms, term)
		}
	}

	for _, m := range materials {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			l.materials = append(l.materials, m)
		}
	}

	l.keywords = make([]string, 0, len(keys)+len(l.materials)+len(genericKeywords))
	l.keywords = append(l.keywords, keys...)
	l.keywords = append(l.keywords, l.materials...)
	l.keywords = append(l.keywords, genericKeywords...)

	return l
}

// Default returns a lexicon built from the literal defaults
func Default() *Lexicon {
	return New(nil, nil)
}

// FromJSON builds a lexicon from JSON configuration. Empty strings fall back
// to the defaults for that part.
func FromJSON(categoryMappingJSON, materialsJSON string) (*Lexicon, error) {
	var mapping map[string]string
	if strings.TrimSpace(categoryMappingJSON) != "" {
		if err := json.Unmarshal([]byte(categoryMappingJSON), &mapping); err != nil {
			return nil, fmt.Errorf("invalid category mapping: %w", err)
		}
	}

	var materials []string
	if strings.TrimSpace(materialsJSON) != "" {
		if err := json.Unmarshal([]byte(materialsJSON), &materials); err != nil {
			return nil, fmt.Errorf("invalid known materials: %w", err)
		}
	}

	return New(mapping, materials), nil
}

// Category resolves a surface term to its canonical category. Generic
// catch-all terms do not resolve.
func (l *Lexicon) Category(term string) (string, bool) {
	canonical, ok := l.categories[strings.ToLower(term)]
	if !ok || strings.EqualFold(canonical, GenericCategory) {
		return "", false
	}
	return canonical, true
}

// CategoryTerms returns the surface terms that resolve to a specific category
func (l *Lexicon) CategoryTerms() []string {
	return l.categoryTerms
}

// Materials returns the known materials
func (l *Lexicon) Materials() []string {
	return l.materials
}

// DomainKeywords returns every category term, every material and the generic
// fashion words.
func (l *Lexicon) DomainKeywords() []string {
	return l.keywords
}
