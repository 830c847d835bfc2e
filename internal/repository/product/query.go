package product

import (
	"fmt"
	"strings"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// buildQuery translates a domain.ProductQuery into an FT.SEARCH query string.
// Empty constraints collapse to "*" (match everything).
func buildQuery(q domain.ProductQuery) string {
	var parts []string

	if tag := buildTagUnion(fieldCategory, q.Categories); tag != "" {
		parts = append(parts, tag)
	}
	if tag := buildTagUnion(fieldBrand, q.Filters.Brands); tag != "" {
		parts = append(parts, tag)
	}
	if q.Filters.HasPriceRange() {
		parts = append(parts, buildPriceRange(q.Filters))
	}
	if text := buildTextMatch(q.Text); text != "" {
		parts = append(parts, text)
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

// buildTagUnion renders `@field:{a|b|c}` with escaped tag values.
func buildTagUnion(field string, values []string) string {
	escaped := make([]string, 0, len(values))
	for _, v := range values {
		if e := escapeTag(v); e != "" {
			escaped = append(escaped, e)
		}
	}
	if len(escaped) == 0 {
		return ""
	}
	return fmt.Sprintf("@%s:{%s}", field, strings.Join(escaped, "|"))
}

func buildPriceRange(f domain.Filters) string {
	lo := "-inf"
	hi := "+inf"
	if f.PriceMin != nil {
		lo = formatBound(*f.PriceMin)
	}
	if f.PriceMax != nil {
		hi = formatBound(*f.PriceMax)
	}
	return fmt.Sprintf("@%s:[%s %s]", fieldPrice, lo, hi)
}

func formatBound(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
}

// buildTextMatch renders `@text:(tok1|tok2)` over sanitized tokens.
// Tokens reduce to alphanumerics so user input cannot inject query syntax.
func buildTextMatch(text string) string {
	tokens := sanitizeTokens(text)
	if len(tokens) == 0 {
		return ""
	}
	return fmt.Sprintf("@%s:(%s)", fieldText, strings.Join(tokens, "|"))
}

func sanitizeTokens(text string) []string {
	var tokens []string
	for _, raw := range strings.Fields(text) {
		var b strings.Builder
		for _, r := range raw {
			isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			isDigit := r >= '0' && r <= '9'
			if isAlpha || isDigit {
				b.WriteRune(r)
			}
		}
		// Single characters are stopword-like noise for OR matching.
		if b.Len() > 1 {
			tokens = append(tokens, b.String())
		}
	}
	return tokens
}

// escapeTag backslash-escapes FT.SEARCH tag syntax characters.
func escapeTag(v string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(v) {
		switch r {
		case ',', '.', '<', '>', '{', '}', '[', ']', '"', '\'', ':', ';',
			'!', '@', '#', '$', '%', '^', '&', '*', '(', ')', '-', '+',
			'=', '~', '|', '/', '\\', ' ':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
