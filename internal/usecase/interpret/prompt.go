package interpret

import (
	"fmt"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

const systemPrompt = `You are a shopping query analyst for an e-commerce catalog.
Analyze the user's search query together with their recent activity and
respond with a single JSON object, no prose, using exactly this shape:

{
  "category_phrases": ["short noun phrases naming product categories the user wants"],
  "filters": {
    "price_min": null or number,
    "price_max": null or number,
    "brands": ["brand names mentioned or implied"],
    "keywords": ["specific product attributes worth text-matching"]
  },
  "tags": ["optional descriptive tags"],
  "intent_summary": "one sentence describing what the user is looking for"
}

Rules:
- category_phrases must contain at least one entry.
- Omit price bounds the query does not state; never invent numbers.
- Keep brands and keywords lowercase unless they are proper names.`

const retryNote = `

Your previous reply could not be parsed as the required JSON object.
Reply again with ONLY the JSON object described above.`

func userPrompt(rawQuery string, uc domain.UserContext) string {
	return fmt.Sprintf(
		"Search query: %q\nRecent searches: %s\nCart contents: %s",
		rawQuery, uc.HistorySummary(), uc.CartSummary(),
	)
}
