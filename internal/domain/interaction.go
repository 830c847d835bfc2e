package domain

import "time"

// Interaction types recorded to a user's history.
const (
	InteractionSearch      = "search"
	InteractionViewProduct = "view_product"
	InteractionAddToCart   = "add_to_cart"
)

// SearchDetail captures what the pipeline did for one search interaction.
type SearchDetail struct {
	Query             string   `json:"query"`
	CategoryPhrases   []string `json:"category_phrases,omitempty"`
	MatchedCategories []string `json:"matched_categories,omitempty"`
	TierUsed          Tier     `json:"tier_used"`
	CandidateIDs      []int    `json:"candidate_ids,omitempty"`
	RankedIDs         []int    `json:"ranked_ids,omitempty"`
	ResultCount       int      `json:"result_count"`
}

// ProductDetail captures a product-level interaction (view, add to cart).
type ProductDetail struct {
	ProductID int    `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity,omitempty"`
}

// InteractionEvent is one entry of a user's interaction history.
// Exactly one of Search / Product is set, depending on Type.
type InteractionEvent struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Search    *SearchDetail  `json:"search,omitempty"`
	Product   *ProductDetail `json:"product,omitempty"`
}
