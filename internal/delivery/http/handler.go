package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stylerag/backend/internal/domain"
)

// SourceHeader reports which path produced a search response
const SourceHeader = "X-Result-Source"

// Searcher answers recommendation searches
type Searcher interface {
	Search(ctx context.Context, request *domain.SearchRequest) domain.SearchResponse
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searcher Searcher
	version  string
}

// NewHandler creates a new HTTP handler
func NewHandler(searcher Searcher, version string) *Handler {
	return &Handler{searcher: searcher, version: version}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stylerag-backend",
		"version": h.version,
	})
}

// SearchRecommendations handles recommendation search requests. The body is
// the result sequence: recommendations, or a single redirect record.
func (h *Handler) SearchRecommendations(c *gin.Context) {
	var request domain.SearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   domain.ErrInvalidRequest.Error(),
			"details": err.Error(),
		})
		return
	}

	request.Query = strings.TrimSpace(request.Query)
	if request.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   domain.ErrInvalidRequest.Error(),
			"details": "query must not be blank",
		})
		return
	}

	if h.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "recommendation service not configured",
		})
		return
	}

	response := h.searcher.Search(c.Request.Context(), &request)

	c.Header(SourceHeader, response.Source)
	c.JSON(http.StatusOK, response)
}
