package usecase

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stylerag/backend/internal/domain"
	"github.com/stylerag/backend/internal/fuzzy"
	"github.com/stylerag/backend/internal/lexicon"
)

// Fuzzy thresholds used during extraction
const (
	categoryFuzzyThreshold = 80
	materialFuzzyThreshold = 80
)

// pricePatterns are tried in order against the lowercased query; the first
// match sets the price ceiling.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`budget\s*(?:is|:)?\s*₹?(\d+)`),
	regexp.MustCompile(`price\s*(?:is|:)?\s*₹?(\d+)`),
	regexp.MustCompile(`under\s*₹?(\d+)`),
	regexp.MustCompile(`below\s*₹?(\d+)`),
	regexp.MustCompile(`less than\s*₹?(\d+)`),
	regexp.MustCompile(`max(?:imum)?\s*₹?(\d+)`),
	regexp.MustCompile(`₹(\d+)`),
	regexp.MustCompile(`rs\.?\s*(\d+)`),
}

// parsedQuery is the normalized view of a query shared by all rules
type parsedQuery struct {
	lower  string
	tokens []string
}

// extractionRule inspects the query and fills at most one filter field
type extractionRule struct {
	name  string
	apply func(q parsedQuery, f *domain.FilterSet)
}

// FilterExtractor turns a free-text query into structured filters
type FilterExtractor struct {
	lexicon *lexicon.Lexicon
	rules   []extractionRule
	logger  zerolog.Logger
}

// NewFilterExtractor creates an extractor over the given lexicon
func NewFilterExtractor(lex *lexicon.Lexicon, logger zerolog.Logger) *FilterExtractor {
	e := &FilterExtractor{
		lexicon: lex,
		logger:  logger.With().Str("component", "filter_extractor").Logger(),
	}

	// Order matters: each field keeps the first value written to it.
	e.rules = []extractionRule{
		{name: "price", apply: e.extractPrice},
		{name: "category_exact", apply: e.extractCategoryExact},
		{name: "category_fuzzy", apply: e.extractCategoryFuzzy},
		{name: "material_denim", apply: e.extractDenim},
		{name: "material_fuzzy", apply: e.extractMaterialFuzzy},
		{name: "outerwear_correction", apply: e.correctOuterwear},
	}
	return e
}

// Extract parses the query into a FilterSet. Unresolved fields stay nil.
func (e *FilterExtractor) Extract(query string) domain.FilterSet {
	lower := strings.ToLower(query)
	q := parsedQuery{lower: lower, tokens: strings.Fields(lower)}

	var filters domain.FilterSet
	for _, rule := range e.rules {
		rule.apply(q, &filters)
		e.logger.Debug().Str("rule", rule.name).Stringer("filters", filters).Msg("rule applied")
	}

	return filters
}

func (e *FilterExtractor) extractPrice(q parsedQuery, f *domain.FilterSet) {
	if f.MaxPrice != nil {
		return
	}
	for _, pattern := range pricePatterns {
		m := pattern.FindStringSubmatch(q.lower)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if errors.Is(err, strconv.ErrRange) {
			// Digit runs too long for a float64 still name a ceiling; any
			// finite price sits below it.
			v, err = math.MaxFloat64, nil
		}
		if err != nil {
			continue
		}
		f.SetMaxPrice(v)
		return
	}
}

func (e *FilterExtractor) extractCategoryExact(q parsedQuery, f *domain.FilterSet) {
	if f.Category != nil {
		return
	}
	for _, token := range q.tokens {
		if canonical, ok := e.lexicon.Category(token); ok {
			f.SetCategory(canonical)
			return
		}
	}
}

func (e *FilterExtractor) extractCategoryFuzzy(q parsedQuery, f *domain.FilterSet) {
	if f.Category != nil {
		return
	}
	terms := e.lexicon.CategoryTerms()
	for _, token := range q.tokens {
		match, ok := fuzzy.BestMatch(strings.TrimSuffix(token, "s"), terms, categoryFuzzyThreshold)
		if !ok {
			continue
		}
		if canonical, ok := e.lexicon.Category(match); ok {
			f.SetCategory(canonical)
			return
		}
	}
}

// extractDenim pins jeans and denim queries to denim; fuzzy matching them
// against the material list is ambiguous.
func (e *FilterExtractor) extractDenim(q parsedQuery, f *domain.FilterSet) {
	if f.Material != nil {
		return
	}
	if strings.Contains(q.lower, "jeans") || strings.Contains(q.lower, "denim") {
		f.SetMaterial("denim")
	}
}

func (e *FilterExtractor) extractMaterialFuzzy(q parsedQuery, f *domain.FilterSet) {
	if f.Material != nil {
		return
	}
	for _, token := range q.tokens {
		if match, ok := fuzzy.BestMatch(token, e.lexicon.Materials(), materialFuzzyThreshold); ok {
			f.SetMaterial(match)
			return
		}
	}
}

// correctOuterwear maps "denim jacket" and "leather coat" style queries to
// the Jacket category when no category rule fired.
func (e *FilterExtractor) correctOuterwear(q parsedQuery, f *domain.FilterSet) {
	if f.Category != nil || f.Material == nil {
		return
	}
	material := *f.Material
	if !strings.Contains(material, "denim") && !strings.Contains(material, "leather") {
		return
	}
	if strings.Contains(q.lower, "jacket") || strings.Contains(q.lower, "coat") {
		f.SetCategory("Jacket")
	}
}
