package domain

import "strings"

// Filters holds the structured constraints extracted from a query.
// Nil price bounds mean unbounded.
type Filters struct {
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
	Brands   []string `json:"brands,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// IsEmpty reports whether no constraint is set.
func (f Filters) IsEmpty() bool {
	return f.PriceMin == nil && f.PriceMax == nil && len(f.Brands) == 0 && len(f.Keywords) == 0
}

// HasPriceRange reports whether at least one price bound is set.
func (f Filters) HasPriceRange() bool {
	return f.PriceMin != nil || f.PriceMax != nil
}

// Intent is the structured interpretation of a raw search query.
// Produced once per request by the interpreter; immutable afterwards.
type Intent struct {
	CategoryPhrases []string `json:"category_phrases"`
	Filters         Filters  `json:"filters"`
	Tags            []string `json:"tags,omitempty"`
	Summary         string   `json:"intent_summary"`
}

// HeuristicIntent builds the interpreter's guaranteed fallback: the whole
// query as a single category phrase, with words longer than three characters
// kept as text-search keywords.
func HeuristicIntent(rawQuery string) Intent {
	raw := strings.TrimSpace(rawQuery)

	var keywords []string
	for _, w := range strings.Fields(raw) {
		if len(w) > 3 {
			keywords = append(keywords, w)
		}
	}

	return Intent{
		CategoryPhrases: []string{raw},
		Filters:         Filters{Keywords: keywords},
		Summary:         raw,
	}
}
