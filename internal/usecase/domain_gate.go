package usecase

import (
	"strings"

	"github.com/stylerag/backend/internal/domain"
	"github.com/stylerag/backend/internal/fuzzy"
	"github.com/stylerag/backend/internal/lexicon"
)

// domainKeywordThreshold sits below the extraction thresholds.
const domainKeywordThreshold = 75

// DomainGate decides whether a query is fashion related
type DomainGate struct {
	keywords []string
}

// NewDomainGate creates a gate over the lexicon's domain keywords
func NewDomainGate(lex *lexicon.Lexicon) *DomainGate {
	return &DomainGate{keywords: lex.DomainKeywords()}
}

// IsInDomain reports true if any filter is set or any query token is close
// to a fashion keyword.
func (g *DomainGate) IsInDomain(query string, filters domain.FilterSet) bool {
	if !filters.IsEmpty() {
		return true
	}
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if _, ok := fuzzy.BestMatch(token, g.keywords, domainKeywordThreshold); ok {
			return true
		}
	}
	return false
}
