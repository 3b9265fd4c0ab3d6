package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/stylerag/backend/internal/domain"
)

// MockTextGenerator replays scripted responses in order. Once the script is
// exhausted the last entry repeats.
type MockTextGenerator struct {
	mu        sync.Mutex
	responses []mockResponse
	prompts   []string
}

type mockResponse struct {
	text string
	err  error
}

func NewMockTextGenerator(responses ...mockResponse) *MockTextGenerator {
	return &MockTextGenerator{responses: responses}
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)
	if len(m.responses) == 0 {
		return "", domain.ErrGenerationFailed
	}
	idx := len(m.prompts) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	r := m.responses[idx]
	return r.text, r.err
}

func (m *MockTextGenerator) Name() string {
	return "mock"
}

func (m *MockTextGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func respond(text string) mockResponse {
	return mockResponse{text: text}
}

func failure() mockResponse {
	return mockResponse{err: errors.New("model unavailable")}
}

// MockCatalogLoader returns a fixed catalog and records requested sources
type MockCatalogLoader struct {
	items   []domain.CatalogItem
	sources []string
}

func (m *MockCatalogLoader) Load(ctx context.Context, source string) []domain.CatalogItem {
	m.sources = append(m.sources, source)
	return m.items
}

// MockQueryRewriter appends a marker so tests can see the rewrite reached
// the generator
type MockQueryRewriter struct {
	calls int
}

func (m *MockQueryRewriter) Rewrite(ctx context.Context, query string) string {
	m.calls++
	return query + " (rewritten)"
}

// MockRecommendationGenerator records its inputs and returns fixed items
type MockRecommendationGenerator struct {
	items       []domain.CatalogItem
	calls       int
	lastQuery   string
	lastCatalog []domain.CatalogItem
}

func (m *MockRecommendationGenerator) Generate(ctx context.Context, query string, catalog []domain.CatalogItem) []domain.CatalogItem {
	m.calls++
	m.lastQuery = query
	m.lastCatalog = catalog
	return m.items
}

func defaultCatalog() []domain.CatalogItem {
	return []domain.CatalogItem{
		{Name: "CLASSIC JACKET", Category: "Jacket", Price: domain.NewPrice(2999), Fabric: "wool blend", Description: "Versatile jacket for trendy looks.", Link: "https://example.com/products/classic-jacket"},
		{Name: "SLIM FIT PANTS", Category: "Bottoms", Price: domain.NewPrice(2499), Fabric: "cotton", Description: "Modern slim-fit pants.", Link: "https://example.com/products/slim-pants"},
		{Name: "CASUAL SHIRT", Category: "Shirt", Price: domain.NewPrice(1999), Fabric: "cotton", Description: "Relaxed unisex shirt.", Link: "https://example.com/products/casual-shirt"},
		{Name: "GRAPHIC TEE", Category: "T-Shirt", Price: domain.NewPrice(1499), Fabric: "jersey", Description: "Bold graphic t-shirt.", Link: "https://example.com/products/graphic-tee"},
		{Name: "COZY HOODIE", Category: "Hoodie", Price: domain.NewPrice(3499), Fabric: "fleece", Description: "Comfortable oversized hoodie.", Link: "https://example.com/products/cozy-hoodie"},
	}
}
