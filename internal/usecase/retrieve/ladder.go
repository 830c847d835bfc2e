package retrieve

import (
	"strings"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// input is the pre-digested request a tier decides on.
type input struct {
	categories []string
	filters    domain.Filters
	text       string
	limit      int
}

// tier is one rung of the fallback ladder: a precondition and the query
// it issues when the precondition holds.
type tier struct {
	id      domain.Tier
	applies func(in input) bool
	build   func(in input) domain.ProductQuery
}

// ladder is ordered from most to least specific. The first applicable
// tier with a non-empty result answers the search; the last rung always
// applies, so an empty result there is a genuinely empty catalog slice.
var ladder = []tier{
	{
		id:      domain.TierFull,
		applies: func(in input) bool { return len(in.categories) > 0 && in.text != "" },
		build: func(in input) domain.ProductQuery {
			return domain.ProductQuery{
				Categories: in.categories,
				Filters:    in.filters,
				Text:       in.text,
				Limit:      in.limit,
			}
		},
	},
	{
		id: domain.TierFiltered,
		applies: func(in input) bool {
			return len(in.categories) > 0 && hasHardFilters(in.filters)
		},
		build: func(in input) domain.ProductQuery {
			return domain.ProductQuery{
				Categories: in.categories,
				Filters:    in.filters,
				Limit:      in.limit,
			}
		},
	},
	{
		id:      domain.TierCategory,
		applies: func(in input) bool { return len(in.categories) > 0 },
		build: func(in input) domain.ProductQuery {
			return domain.ProductQuery{Categories: in.categories, Limit: in.limit}
		},
	},
	{
		id:      domain.TierText,
		applies: func(in input) bool { return in.text != "" || hasHardFilters(in.filters) },
		build: func(in input) domain.ProductQuery {
			return domain.ProductQuery{Filters: in.filters, Text: in.text, Limit: in.limit}
		},
	},
	{
		id:      domain.TierPopular,
		applies: func(input) bool { return true },
		build: func(in input) domain.ProductQuery {
			return domain.ProductQuery{PopularFirst: true, Limit: in.limit}
		},
	},
}

// hasHardFilters reports whether the filters constrain the store query
// beyond text keywords.
func hasHardFilters(f domain.Filters) bool {
	return f.HasPriceRange() || len(f.Brands) > 0
}

func newInput(intent domain.Intent, matches []domain.CategoryMatch, limit int) input {
	var categories []string
	seen := make(map[string]struct{})
	for _, m := range matches {
		if !m.Matched() {
			continue
		}
		if _, dup := seen[m.Category]; dup {
			continue
		}
		seen[m.Category] = struct{}{}
		categories = append(categories, m.Category)
	}

	return input{
		categories: categories,
		filters:    intent.Filters,
		text:       strings.Join(intent.Filters.Keywords, " "),
		limit:      limit,
	}
}
