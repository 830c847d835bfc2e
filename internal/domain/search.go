package domain

// Tier identifies one level of the retrieval fallback ladder,
// ordered from most specific (0) to least specific (4).
type Tier int

const (
	// TierFull combines categories, filters, and text match.
	TierFull Tier = iota
	// TierFiltered keeps categories and filters, drops the text match.
	TierFiltered
	// TierCategory queries by matched categories only.
	TierCategory
	// TierText searches the full catalog by filters and text, no category.
	TierText
	// TierPopular is the unconstrained top-N by popularity ordering.
	TierPopular
)

func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierFiltered:
		return "filtered"
	case TierCategory:
		return "category"
	case TierText:
		return "text"
	case TierPopular:
		return "popular"
	default:
		return "unknown"
	}
}

// CategoryMatch maps one interpreted category phrase to a canonical catalog
// category. Category is empty when no match cleared the similarity threshold.
type CategoryMatch struct {
	Phrase   string  `json:"phrase"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

// Matched reports whether the phrase resolved to a catalog category.
func (m CategoryMatch) Matched() bool { return m.Category != "" }

// CategoryHit is one category from a nearest-neighbor lookup with its
// cosine similarity in [0, 1].
type CategoryHit struct {
	Category Category
	Score    float64
}

// CandidateSet is the unranked output of a single retrieval tier.
// Products from different tiers are never mixed.
type CandidateSet struct {
	Tier     Tier      `json:"tier"`
	Products []Product `json:"products"`
}

// Empty reports whether the tier produced no candidates.
func (s CandidateSet) Empty() bool { return len(s.Products) == 0 }

// RankedResult is one product with its relevance rank and justification.
// Ranks are 1-based, dense, and unique within a response.
type RankedResult struct {
	Product       Product `json:"product"`
	Rank          int     `json:"rank"`
	Justification string  `json:"justification,omitempty"`
}

// SearchResponse is the terminal artifact of the search pipeline.
type SearchResponse struct {
	QueryReceived string         `json:"query_received"`
	UserID        string         `json:"user_id"`
	Results       []RankedResult `json:"results"`
	Summary       string         `json:"summary"`
	TierUsed      Tier           `json:"tier_used"`
}
