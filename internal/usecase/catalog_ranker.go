package usecase

import (
	"sort"
	"strings"

	"github.com/stylerag/backend/internal/domain"
	"github.com/stylerag/backend/internal/fuzzy"
)

// Scoring weights. The scheme is additive with multiplicative price
// adjustments and no normalization.
const (
	textMatchBonus     = 0.5
	categoryMatchBonus = 0.3
	materialMatchBonus = 0.2
	withinBudgetBonus  = 0.1
	overBudgetFactor   = 0.5
	unknownPriceFactor = 0.8

	textMatchThreshold      = 85
	fabricMatchThreshold    = 80
	defaultMaxRankedResults = 10
)

// CatalogRanker scores catalog items against a query and its filters
type CatalogRanker struct {
	maxResults int
}

// NewCatalogRanker creates a ranker returning at most maxResults items.
// Non-positive values use the default of 10.
func NewCatalogRanker(maxResults int) *CatalogRanker {
	if maxResults <= 0 {
		maxResults = defaultMaxRankedResults
	}
	return &CatalogRanker{maxResults: maxResults}
}

// Rank returns the matching items sorted by descending score. Items scoring
// zero are dropped; equal scores keep catalog order.
func (r *CatalogRanker) Rank(query string, catalog []domain.CatalogItem, filters domain.FilterSet) []domain.ScoredItem {
	queryLower := strings.ToLower(query)

	var results []domain.ScoredItem
	for _, item := range catalog {
		score := scoreItem(queryLower, item, filters)
		if score > 0 {
			results = append(results, domain.ScoredItem{Item: item, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > r.maxResults {
		results = results[:r.maxResults]
	}
	return results
}

// scoreItem computes a single item's score
func scoreItem(queryLower string, item domain.CatalogItem, filters domain.FilterSet) float64 {
	score := 0.0

	fields := []string{
		strings.ToLower(item.Name),
		strings.ToLower(item.Category),
		strings.ToLower(item.Description),
	}
	if _, ok := fuzzy.BestMatch(queryLower, fields, textMatchThreshold); ok {
		score += textMatchBonus
	}

	// Category is compared exactly while material is compared fuzzily.
	if filters.Category != nil && *filters.Category != "" && strings.EqualFold(item.Category, *filters.Category) {
		score += categoryMatchBonus
	}

	if filters.Material != nil && *filters.Material != "" {
		material := strings.ToLower(*filters.Material)
		if _, ok := fuzzy.BestMatch(material, []string{strings.ToLower(item.Fabric)}, fabricMatchThreshold); ok {
			score += materialMatchBonus
		}
	}

	// A zero ceiling is still a ceiling.
	if filters.MaxPrice != nil {
		price, ok := item.Price.Float()
		switch {
		case !ok:
			score *= unknownPriceFactor
		case price <= *filters.MaxPrice:
			score += withinBudgetBonus
		default:
			score *= overBudgetFactor
		}
	}

	return score
}
