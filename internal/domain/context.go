package domain

import (
	"fmt"
	"strings"
)

// CartLine is the slice of a cart item the pipeline cares about.
type CartLine struct {
	ProductID int    `json:"product_id"`
	Title     string `json:"title"`
}

// UserContext is the per-request snapshot of a user's recent activity.
// Built fresh for every search; never persisted by the pipeline.
type UserContext struct {
	RecentQueries []string   `json:"recent_queries,omitempty"`
	Cart          []CartLine `json:"cart,omitempty"`
}

// HistorySummary renders recent queries for an LLM prompt, most recent first.
func (c UserContext) HistorySummary() string {
	if len(c.RecentQueries) == 0 {
		return "none"
	}
	return strings.Join(c.RecentQueries, "; ")
}

// CartSummary renders the cart snapshot for an LLM prompt.
func (c UserContext) CartSummary() string {
	if len(c.Cart) == 0 {
		return "empty"
	}
	parts := make([]string, len(c.Cart))
	for i, line := range c.Cart {
		parts[i] = fmt.Sprintf("%s (id %d)", line.Title, line.ProductID)
	}
	return strings.Join(parts, "; ")
}
