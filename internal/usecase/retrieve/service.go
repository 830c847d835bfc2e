// Package retrieve walks the tiered retrieval ladder, relaxing the
// query one rung at a time until the store yields candidates.
package retrieve

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/metrics"
)

// Service is the candidate retriever.
type Service struct {
	products ProductQuerier
	limit    int
	logger   *zap.Logger
}

// New creates a retriever. limit caps the candidates a tier may return.
func New(products ProductQuerier, limit int, logger *zap.Logger) *Service {
	return &Service{products: products, limit: limit, logger: logger}
}

// Retrieve returns the candidate set of the first ladder tier that
// applies and yields products. A store failure aborts immediately:
// a lower tier must never mask an unavailable store as an empty
// catalog. An empty set from the last tier is terminal.
func (s *Service) Retrieve(
	ctx context.Context, intent domain.Intent, matches []domain.CategoryMatch,
) (domain.CandidateSet, error) {
	in := newInput(intent, matches, s.limit)

	for _, t := range ladder {
		if !t.applies(in) {
			continue
		}

		products, err := s.products.Query(ctx, t.build(in))
		if err != nil {
			return domain.CandidateSet{}, fmt.Errorf("tier %s: %w", t.id, err)
		}
		if len(products) == 0 {
			s.logger.Debug("Retrieval tier empty, relaxing",
				zap.Stringer("tier", t.id))
			continue
		}

		metrics.SearchTierTotal.WithLabelValues(t.id.String()).Inc()
		s.logger.Info("Candidates retrieved",
			zap.Stringer("tier", t.id), zap.Int("count", len(products)))
		return domain.CandidateSet{Tier: t.id, Products: products}, nil
	}

	// Even the unconstrained popularity rung found nothing.
	metrics.SearchTierTotal.WithLabelValues(domain.TierPopular.String()).Inc()
	return domain.CandidateSet{Tier: domain.TierPopular}, nil
}
