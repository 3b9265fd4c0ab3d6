package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stylerag/backend/internal/domain"
)

const generatedJSON = `[
  {"name": "INDIGO TRUCKER", "category": "Jacket", "description": "Rigid denim jacket.", "price": 2899, "fabric": "denim", "link": "https://example.com/trucker"},
  {"name": "WHITE TEE", "category": "T-Shirt", "description": "Heavyweight basic.", "price": 799, "fabric": "cotton", "link": "https://example.com/tee"},
  {"name": "STRAIGHT JEANS", "category": "Bottoms", "description": "Mid-rise straight leg.", "price": 2499, "fabric": "denim", "link": "https://example.com/jeans"}
]`

func itemNames(items []domain.CatalogItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestFallbackGenerator_Generate(t *testing.T) {
	catalog := defaultCatalog()

	tests := []struct {
		name      string
		responses []mockResponse
		catalog   []domain.CatalogItem
		want      []string
		wantCalls int
	}{
		{
			name:      "parses generated items",
			responses: []mockResponse{respond(generatedJSON)},
			catalog:   catalog,
			want:      []string{"INDIGO TRUCKER", "WHITE TEE", "STRAIGHT JEANS"},
			wantCalls: 1,
		},
		{
			name:      "strips code fences",
			responses: []mockResponse{respond("```json\n" + generatedJSON + "\n```")},
			catalog:   catalog,
			want:      []string{"INDIGO TRUCKER", "WHITE TEE", "STRAIGHT JEANS"},
			wantCalls: 1,
		},
		{
			name:      "retries malformed output",
			responses: []mockResponse{respond("Here are some ideas!"), respond(generatedJSON)},
			catalog:   catalog,
			want:      []string{"INDIGO TRUCKER", "WHITE TEE", "STRAIGHT JEANS"},
			wantCalls: 2,
		},
		{
			name:      "falls back to catalog head",
			responses: []mockResponse{failure()},
			catalog:   catalog,
			want:      []string{"CLASSIC JACKET", "SLIM FIT PANTS", "CASUAL SHIRT"},
			wantCalls: 3,
		},
		{
			name:      "empty catalog falls back to nothing",
			responses: []mockResponse{respond("not json")},
			catalog:   nil,
			want:      []string{},
			wantCalls: 3,
		},
		{
			name:      "short catalog is returned whole",
			responses: []mockResponse{failure()},
			catalog:   catalog[:2],
			want:      []string{"CLASSIC JACKET", "SLIM FIT PANTS"},
			wantCalls: 3,
		},
		{
			name:      "empty array is a valid answer",
			responses: []mockResponse{respond("[]")},
			catalog:   catalog,
			want:      []string{},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := NewMockTextGenerator(tt.responses...)
			fallback := NewFallbackGenerator(generator, noBackoff, zerolog.Nop())

			got := itemNames(fallback.Generate(context.Background(), "denim outfit", tt.catalog))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Generate() = %v, want %v", got, tt.want)
			}
			if generator.Calls() != tt.wantCalls {
				t.Errorf("generator calls = %d, want %d", generator.Calls(), tt.wantCalls)
			}
		})
	}
}

func TestFallbackGenerator_PromptEmbedsCatalog(t *testing.T) {
	generator := NewMockTextGenerator(respond("[]"))
	fallback := NewFallbackGenerator(generator, noBackoff, zerolog.Nop())

	fallback.Generate(context.Background(), "party wear", defaultCatalog()[:1])

	prompt := generator.prompts[0]
	for _, want := range []string{`"party wear"`, `"name": "CLASSIC JACKET"`, `"price": 2999`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %s:\n%s", want, prompt)
		}
	}

	generator = NewMockTextGenerator(respond("[]"))
	NewFallbackGenerator(generator, noBackoff, zerolog.Nop()).Generate(context.Background(), "party wear", nil)
	if !strings.Contains(generator.prompts[0], "Catalog: []") {
		t.Errorf("empty catalog prompt = %s", generator.prompts[0])
	}
}

func TestFallbackGenerator_DoesNotAliasCatalog(t *testing.T) {
	catalog := defaultCatalog()
	fallback := NewFallbackGenerator(NewMockTextGenerator(failure()), noBackoff, zerolog.Nop())

	got := fallback.Generate(context.Background(), "x", catalog)
	got[0].Name = "CHANGED"

	if catalog[0].Name != "CLASSIC JACKET" {
		t.Error("fallback result shares memory with the catalog")
	}
}

func TestParseGeneratedItems(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		wantErr bool
	}{
		{
			name: "drops nameless items and caps at three",
			text: `[{"name":"A"},{"name":"  "},{"category":"Shirt"},{"name":"B"},{"name":"C"},{"name":"D"}]`,
			want: []string{"A", "B", "C"},
		},
		{
			name: "price as string",
			text: `[{"name":"A","price":"1999"}]`,
			want: []string{"A"},
		},
		{name: "object instead of array", text: `{"name":"A"}`, wantErr: true},
		{name: "prose", text: "I recommend a jacket.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := parseGeneratedItems(tt.text)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrMalformedOutput) {
					t.Errorf("parseGeneratedItems() error = %v, want ErrMalformedOutput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGeneratedItems() error = %v", err)
			}
			if strings.Join(itemNames(items), "|") != strings.Join(tt.want, "|") {
				t.Errorf("parseGeneratedItems() = %v, want %v", itemNames(items), tt.want)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```json\n[]\n```", "[]"},
		{"```\n[1]\n```", "[1]"},
		{"  [] ", "[]"},
	}

	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
