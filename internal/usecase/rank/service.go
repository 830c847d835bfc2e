// Package rank orders retrieval candidates by relevance using a
// generative model, degrading to the original store order.
package rank

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

const purposeRank = "rank"

// Service is the relevance ranker.
type Service struct {
	completer  Completer
	maxResults int
	logger     *zap.Logger
}

// New creates a ranker. maxResults caps the response size.
func New(completer Completer, maxResults int, logger *zap.Logger) *Service {
	return &Service{completer: completer, maxResults: maxResults, logger: logger}
}

// llmRanking is the wire shape the model is prompted to produce.
type llmRanking struct {
	RankedProducts []struct {
		ProductID     int    `json:"product_id"`
		Justification string `json:"justification"`
	} `json:"ranked_products"`
	OverallSummary string `json:"overall_summary"`
}

// Rank orders the candidates by relevance to the query. It never fails:
// a model error or unusable reply degrades to the original store order.
// Every candidate survives ranking; ranks are dense, 1-based, and
// unique, with model-omitted candidates appended in store order.
func (s *Service) Rank(
	ctx context.Context, rawQuery string, intent domain.Intent, uc domain.UserContext, set domain.CandidateSet,
) ([]domain.RankedResult, string) {
	if set.Empty() {
		return nil, ""
	}

	reply, err := s.completer.Complete(ctx, purposeRank, systemPrompt, userPrompt(rawQuery, intent, uc, set.Products))
	if err != nil {
		s.logger.Warn("Ranking failed, keeping store order",
			zap.String("query", rawQuery), zap.Error(err))
		return s.storeOrder(set.Products), ""
	}

	var ranking llmRanking
	if err := json.Unmarshal([]byte(extractJSON(reply)), &ranking); err != nil {
		s.logger.Warn("Unparseable ranking reply, keeping store order",
			zap.String("query", rawQuery), zap.Error(err))
		return s.storeOrder(set.Products), ""
	}

	return s.merge(set.Products, ranking), strings.TrimSpace(ranking.OverallSummary)
}

// merge turns the model's ordering into the final result list: ranked
// candidates first in model order, then every candidate the model
// skipped, in store order. Hallucinated and duplicate IDs are dropped.
func (s *Service) merge(candidates []domain.Product, ranking llmRanking) []domain.RankedResult {
	byID := make(map[int]domain.Product, len(candidates))
	for _, p := range candidates {
		byID[p.ID] = p
	}

	results := make([]domain.RankedResult, 0, len(candidates))
	placed := make(map[int]struct{}, len(candidates))
	for _, rp := range ranking.RankedProducts {
		p, known := byID[rp.ProductID]
		if !known {
			s.logger.Warn("Ranker referenced unknown product", zap.Int("product_id", rp.ProductID))
			continue
		}
		if _, dup := placed[rp.ProductID]; dup {
			continue
		}
		placed[rp.ProductID] = struct{}{}
		results = append(results, domain.RankedResult{
			Product:       p,
			Rank:          len(results) + 1,
			Justification: strings.TrimSpace(rp.Justification),
		})
	}

	for _, p := range candidates {
		if _, ok := placed[p.ID]; ok {
			continue
		}
		results = append(results, domain.RankedResult{Product: p, Rank: len(results) + 1})
	}

	return s.cap(results)
}

// storeOrder is the degraded ranking: candidates as retrieved.
func (s *Service) storeOrder(candidates []domain.Product) []domain.RankedResult {
	results := make([]domain.RankedResult, len(candidates))
	for i, p := range candidates {
		results[i] = domain.RankedResult{Product: p, Rank: i + 1}
	}
	return s.cap(results)
}

func (s *Service) cap(results []domain.RankedResult) []domain.RankedResult {
	if s.maxResults > 0 && len(results) > s.maxResults {
		return results[:s.maxResults]
	}
	return results
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
