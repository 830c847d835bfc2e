// Package categories maps interpreted category phrases onto the
// canonical category master list by embedding similarity.
package categories

import (
	"context"

	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// Service is the category matcher.
type Service struct {
	index     Index
	embedder  Embedder
	threshold float64
	logger    *zap.Logger
}

// New creates a category matcher. threshold is the minimum cosine
// similarity a nearest neighbor must clear to count as a match.
func New(index Index, embedder Embedder, threshold float64, logger *zap.Logger) *Service {
	return &Service{index: index, embedder: embedder, threshold: threshold, logger: logger}
}

// Match resolves each phrase to at most one canonical category. The
// result preserves phrase order and always has one entry per phrase;
// phrases that fail to embed, fail to look up, or score below the
// threshold come back unmatched. Matching is advisory: no error here
// aborts a search.
func (s *Service) Match(ctx context.Context, phrases []string) []domain.CategoryMatch {
	matches := make([]domain.CategoryMatch, len(phrases))
	for i, phrase := range phrases {
		matches[i] = s.matchOne(ctx, phrase)
	}
	return matches
}

func (s *Service) matchOne(ctx context.Context, phrase string) domain.CategoryMatch {
	unmatched := domain.CategoryMatch{Phrase: phrase}

	vector, ok := s.embedPhrase(ctx, phrase)
	if !ok {
		return unmatched
	}

	hits, err := s.index.Nearest(ctx, vector, 1)
	if err != nil {
		s.logger.Warn("Category lookup failed, phrase left unmatched",
			zap.String("phrase", phrase), zap.Error(err))
		return unmatched
	}
	if len(hits) == 0 {
		return unmatched
	}

	best := hits[0]
	if best.Score < s.threshold {
		s.logger.Debug("Nearest category below threshold",
			zap.String("phrase", phrase),
			zap.String("category", best.Category.Name),
			zap.Float64("score", best.Score),
			zap.Float64("threshold", s.threshold))
		return unmatched
	}

	return domain.CategoryMatch{Phrase: phrase, Category: best.Category.Name, Score: best.Score}
}

// embedPhrase vectorizes a phrase, retrying once on provider failure.
func (s *Service) embedPhrase(ctx context.Context, phrase string) ([]float32, bool) {
	result, err := s.embedder.Embed(ctx, phrase)
	if err != nil {
		s.logger.Warn("Phrase embedding failed, retrying once",
			zap.String("phrase", phrase), zap.Error(err))
		result, err = s.embedder.Embed(ctx, phrase)
	}
	if err != nil {
		s.logger.Warn("Phrase embedding failed twice, phrase left unmatched",
			zap.String("phrase", phrase), zap.Error(err))
		return nil, false
	}
	return result.Embedding, true
}

// List returns the category master list.
func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.index.List(ctx)
}
