package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

var noBackoff = RetryPolicy{MaxAttempts: 3}

func TestQueryRewriter_Rewrite(t *testing.T) {
	tests := []struct {
		name      string
		responses []mockResponse
		want      string
		wantCalls int
	}{
		{
			name:      "uses trimmed model output",
			responses: []mockResponse{respond("  denim jeans, blue pants, under 3000\n")},
			want:      "denim jeans, blue pants, under 3000",
			wantCalls: 1,
		},
		{
			name:      "retries after a failure",
			responses: []mockResponse{failure(), respond("jacket, outerwear")},
			want:      "jacket, outerwear",
			wantCalls: 2,
		},
		{
			name:      "blank output counts as a failure",
			responses: []mockResponse{respond("   "), respond("clothing, new arrivals")},
			want:      "clothing, new arrivals",
			wantCalls: 2,
		},
		{
			name:      "falls back to the original query",
			responses: []mockResponse{failure()},
			want:      "jeans under 3000",
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := NewMockTextGenerator(tt.responses...)
			rewriter := NewQueryRewriter(generator, noBackoff, zerolog.Nop())

			got := rewriter.Rewrite(context.Background(), "jeans under 3000")
			if got != tt.want {
				t.Errorf("Rewrite() = %q, want %q", got, tt.want)
			}
			if generator.Calls() != tt.wantCalls {
				t.Errorf("generator calls = %d, want %d", generator.Calls(), tt.wantCalls)
			}
		})
	}
}

func TestQueryRewriter_PromptContainsQuery(t *testing.T) {
	generator := NewMockTextGenerator(respond("x"))
	rewriter := NewQueryRewriter(generator, noBackoff, zerolog.Nop())

	rewriter.Rewrite(context.Background(), "leather boots")

	if len(generator.prompts) != 1 || !strings.Contains(generator.prompts[0], `Query: "leather boots"`) {
		t.Errorf("prompt = %v, want it to quote the query", generator.prompts)
	}
}
