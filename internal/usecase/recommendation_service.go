package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stylerag/backend/internal/domain"
	"github.com/stylerag/backend/internal/lexicon"
	"github.com/stylerag/backend/internal/observability"
)

// RecommendationServiceConfig holds configuration for the recommendation service
type RecommendationServiceConfig struct {
	MaxResults            int
	RewriteBeforeFallback bool
}

// RecommendationService answers shopper queries from the catalog, falling
// back to generated recommendations.
type RecommendationService struct {
	loader    domain.CatalogLoader
	extractor *FilterExtractor
	gate      *DomainGate
	ranker    *CatalogRanker
	rewriter  domain.QueryRewriter
	generator domain.RecommendationGenerator

	rewriteBeforeFallback bool
	logger                zerolog.Logger
}

// NewRecommendationService wires the retrieval pipeline. rewriter may be nil.
func NewRecommendationService(
	loader domain.CatalogLoader,
	lex *lexicon.Lexicon,
	rewriter domain.QueryRewriter,
	generator domain.RecommendationGenerator,
	config RecommendationServiceConfig,
	logger zerolog.Logger,
) *RecommendationService {
	return &RecommendationService{
		loader:                loader,
		extractor:             NewFilterExtractor(lex, logger),
		gate:                  NewDomainGate(lex),
		ranker:                NewCatalogRanker(config.MaxResults),
		rewriter:              rewriter,
		generator:             generator,
		rewriteBeforeFallback: config.RewriteBeforeFallback && rewriter != nil,
		logger:                logger.With().Str("component", "recommendation_service").Logger(),
	}
}

// Search runs the request through SemanticRAG
func (s *RecommendationService) Search(ctx context.Context, request *domain.SearchRequest) domain.SearchResponse {
	if request == nil {
		request = &domain.SearchRequest{}
	}
	return s.SemanticRAG(ctx, request.Query, request.Category, request.Source)
}

// SemanticRAG answers query in a single pass:
// load catalog -> extract filters -> domain gate -> rank -> generate.
// An explicit category overrides the extracted one. It never fails; every
// degraded path still yields a well-formed response.
func (s *RecommendationService) SemanticRAG(ctx context.Context, query, category, source string) domain.SearchResponse {
	logger := observability.FromContext(ctx, s.logger)
	logger.Info().Str("query", query).Str("category", category).Str("source", source).Msg("starting search")

	catalog := s.loader.Load(ctx, source)

	filters := s.extractor.Extract(query)
	if category = strings.TrimSpace(category); category != "" {
		filters.OverrideCategory(category)
	}
	logger.Info().Stringer("filters", filters).Msg("extracted filters")

	if !s.gate.IsInDomain(query, filters) {
		logger.Info().Str("query", query).Msg("query is not fashion related")
		return domain.SearchResponse{
			Redirect: &domain.Redirect{Response: domain.RedirectMessage, Intent: domain.IntentGeneral},
			Source:   "redirect",
		}
	}

	if len(catalog) > 0 {
		ranked := s.ranker.Rank(query, catalog, filters)
		if len(ranked) > 0 {
			logger.Info().Int("count", len(ranked)).Msg("found catalog matches")
			recs := make([]domain.Recommendation, 0, len(ranked))
			for _, scored := range ranked {
				recs = append(recs, domain.NewRecommendation(scored.Item, scored.Score))
			}
			return domain.SearchResponse{Recommendations: recs, Source: "catalog"}
		}
	}

	logger.Info().Int("catalog_size", len(catalog)).Msg("no catalog matches, using generated recommendations")

	generationQuery := query
	if s.rewriteBeforeFallback {
		generationQuery = s.rewriter.Rewrite(ctx, query)
	}

	items := s.generator.Generate(ctx, generationQuery, catalog)
	recs := make([]domain.Recommendation, 0, len(items))
	for _, item := range items {
		recs = append(recs, domain.NewRecommendation(item, domain.FallbackScore))
	}
	return domain.SearchResponse{Recommendations: recs, Source: "generated"}
}
