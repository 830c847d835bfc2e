// Package interpret turns a raw search query into a structured intent
// using a generative model, with a deterministic heuristic fallback.
package interpret

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

const purposeInterpret = "interpret"

// Service is the query interpreter.
type Service struct {
	completer Completer
	logger    *zap.Logger
}

// New creates an interpreter service.
func New(completer Completer, logger *zap.Logger) *Service {
	return &Service{completer: completer, logger: logger}
}

// llmIntent is the wire shape the model is prompted to produce.
type llmIntent struct {
	CategoryPhrases []string `json:"category_phrases"`
	Filters         struct {
		PriceMin *float64 `json:"price_min"`
		PriceMax *float64 `json:"price_max"`
		Brands   []string `json:"brands"`
		Keywords []string `json:"keywords"`
	} `json:"filters"`
	Tags    []string `json:"tags"`
	Summary string   `json:"intent_summary"`
}

// Interpret analyzes the raw query in the light of the user's context.
// It never fails: one malformed model reply triggers a single corrective
// retry, and any remaining failure degrades to the heuristic intent.
func (s *Service) Interpret(ctx context.Context, rawQuery string, uc domain.UserContext) domain.Intent {
	user := userPrompt(rawQuery, uc)

	intent, err := s.tryOnce(ctx, systemPrompt, user)
	if err != nil {
		s.logger.Warn("Query interpretation failed, retrying once",
			zap.String("query", rawQuery), zap.Error(err))
		intent, err = s.tryOnce(ctx, systemPrompt+retryNote, user)
	}
	if err != nil {
		s.logger.Warn("Query interpretation failed twice, using heuristic intent",
			zap.String("query", rawQuery), zap.Error(err))
		return domain.HeuristicIntent(rawQuery)
	}
	return normalize(intent, rawQuery)
}

func (s *Service) tryOnce(ctx context.Context, system, user string) (llmIntent, error) {
	reply, err := s.completer.Complete(ctx, purposeInterpret, system, user)
	if err != nil {
		return llmIntent{}, err
	}

	var intent llmIntent
	if err := json.Unmarshal([]byte(extractJSON(reply)), &intent); err != nil {
		return llmIntent{}, err
	}
	return intent, nil
}

// normalize converts the wire shape to a domain intent, filling the gaps
// a technically-valid but sloppy model reply can leave.
func normalize(in llmIntent, rawQuery string) domain.Intent {
	intent := domain.Intent{
		CategoryPhrases: trimAll(in.CategoryPhrases),
		Filters: domain.Filters{
			PriceMin: in.Filters.PriceMin,
			PriceMax: in.Filters.PriceMax,
			Brands:   trimAll(in.Filters.Brands),
			Keywords: trimAll(in.Filters.Keywords),
		},
		Tags:    trimAll(in.Tags),
		Summary: strings.TrimSpace(in.Summary),
	}

	if len(intent.CategoryPhrases) == 0 {
		intent.CategoryPhrases = []string{strings.TrimSpace(rawQuery)}
	}
	if intent.Summary == "" {
		intent.Summary = strings.TrimSpace(rawQuery)
	}
	if min, max := intent.Filters.PriceMin, intent.Filters.PriceMax; min != nil && max != nil && *min > *max {
		intent.Filters.PriceMin, intent.Filters.PriceMax = max, min
	}
	return intent
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// extractJSON strips markdown fences the model sometimes wraps around
// its reply despite JSON mode.
func extractJSON(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}
