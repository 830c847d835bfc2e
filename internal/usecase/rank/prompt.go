package rank

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

const systemPrompt = `You are a product relevance judge for an e-commerce search engine.
Given a user's query, their interpreted intent, their recent activity,
and a list of candidate products, order the candidates from most to
least relevant and respond with a single JSON object, no prose, using
exactly this shape:

{
  "ranked_products": [
    {"product_id": 123, "justification": "one short sentence on why this fits"}
  ],
  "overall_summary": "one or two sentences summarizing the results for the user"
}

Rules:
- Only use product_id values from the candidate list.
- List every candidate you consider relevant; omit clearly irrelevant ones.
- Justifications must reference concrete product attributes.`

// descriptionLimit keeps candidate lines prompt-sized. Descriptions in
// the catalog run to several hundred characters.
const descriptionLimit = 160

func userPrompt(rawQuery string, intent domain.Intent, uc domain.UserContext, candidates []domain.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search query: %q\n", rawQuery)
	if intent.Summary != "" {
		fmt.Fprintf(&b, "Interpreted intent: %s\n", intent.Summary)
	}
	fmt.Fprintf(&b, "Recent searches: %s\n", uc.HistorySummary())
	fmt.Fprintf(&b, "Cart contents: %s\n", uc.CartSummary())
	b.WriteString("Candidates:\n")
	for _, p := range candidates {
		fmt.Fprintf(&b, "- id=%d title=%q category=%q", p.ID, p.Title, p.Category)
		if p.Brand != "" {
			fmt.Fprintf(&b, " brand=%q", p.Brand)
		}
		fmt.Fprintf(&b, " price=%.2f", p.Price)
		if p.Rating > 0 {
			fmt.Fprintf(&b, " rating=%.1f", p.Rating)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, " description=%q", truncate(p.Description, descriptionLimit))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
