package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CatalogItem represents a single sellable item in the fashion catalog
type CatalogItem struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       Price  `json:"price"`
	Fabric      string `json:"fabric"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Price is a catalog price. Values that arrived as non-numeric text keep their
// raw form so they can be scored and echoed back unchanged.
type Price struct {
	amount float64
	raw    string
}

// NewPrice returns a numeric price
func NewPrice(amount float64) Price {
	return Price{amount: amount}
}

// ParsePrice parses a textual price. Text that is not a number is kept as raw.
func ParsePrice(s string) Price {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Price{raw: s}
	}
	return Price{amount: v}
}

// Float returns the numeric value and whether the price was parseable
func (p Price) Float() (float64, bool) {
	if p.raw != "" {
		return 0, false
	}
	return p.amount, true
}

// String renders the price the way it was supplied
func (p Price) String() string {
	if p.raw != "" {
		return p.raw
	}
	return strconv.FormatFloat(p.amount, 'f', -1, 64)
}

// MarshalJSON emits a number, or the raw string for unparseable prices
func (p Price) MarshalJSON() ([]byte, error) {
	if p.raw != "" {
		return json.Marshal(p.raw)
	}
	return json.Marshal(p.amount)
}

// UnmarshalJSON accepts numbers, numeric strings and null
func (p *Price) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*p = Price{amount: num}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		// null and other shapes count as an absent price
		*p = Price{}
		return nil
	}
	*p = ParsePrice(text)
	return nil
}

// ScoredItem is a catalog item paired with its ranking score
type ScoredItem struct {
	Item  CatalogItem
	Score float64
}
