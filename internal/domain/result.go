package domain

import "encoding/json"

// IntentGeneral tags the redirect returned for queries outside the fashion domain
const IntentGeneral = "general"

// RedirectMessage is returned verbatim for non-fashion queries
const RedirectMessage = "This query doesn't seem fashion-related. Try asking about clothing, like 'denim jeans' or 'casual shirts'."

// FallbackScore is the fixed score given to generated recommendations
const FallbackScore = 1.0

// SearchRequest represents a recommendation search request
type SearchRequest struct {
	Query    string `json:"query" binding:"required"`
	Category string `json:"category,omitempty"`
	Source   string `json:"source,omitempty"`
}

// Recommendation is a single matched or generated item in a search response
type Recommendation struct {
	StyleName   string  `json:"style_name"`
	Category    string  `json:"category"`
	Price       Price   `json:"price"`
	Fabric      string  `json:"fabric"`
	Description string  `json:"description"`
	ProductLink string  `json:"product_link"`
	Score       float64 `json:"cross_encoder_score"`
}

// Redirect is the single record returned when a query is out of domain
type Redirect struct {
	Response string `json:"response"`
	Intent   string `json:"intent"`
}

// SearchResponse is the result sequence of a search. It serializes as a JSON
// array holding either the recommendations or the lone redirect record.
type SearchResponse struct {
	Recommendations []Recommendation
	Redirect        *Redirect
	Source          string // "catalog", "generated" or "redirect"
}

// Len returns the number of records in the sequence
func (r SearchResponse) Len() int {
	if r.Redirect != nil {
		return 1
	}
	return len(r.Recommendations)
}

// MarshalJSON renders the response as the record sequence
func (r SearchResponse) MarshalJSON() ([]byte, error) {
	if r.Redirect != nil {
		return json.Marshal([]Redirect{*r.Redirect})
	}
	if r.Recommendations == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Recommendations)
}

// NewRecommendation maps a catalog item into the response shape
func NewRecommendation(item CatalogItem, score float64) Recommendation {
	return Recommendation{
		StyleName:   item.Name,
		Category:    item.Category,
		Price:       item.Price,
		Fabric:      item.Fabric,
		Description: item.Description,
		ProductLink: item.Link,
		Score:       score,
	}
}
