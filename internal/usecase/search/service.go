// Package search orchestrates the full pipeline: context gathering,
// interpretation, category matching, tiered retrieval, and ranking.
package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// logTimeout bounds the detached interaction write after the response
// has already been sent.
const logTimeout = 5 * time.Second

// noResultsSummary is returned when even the last retrieval tier came
// back empty.
const noResultsSummary = "No products found matching your search."

// Service is the search orchestrator.
type Service struct {
	interpreter Interpreter
	matcher     Matcher
	retriever   Retriever
	ranker      Ranker
	history     History
	carts       CartReader

	recentSearches int
	logger         *zap.Logger

	// logWG tracks in-flight interaction writes so tests and shutdown
	// can wait for them.
	logWG sync.WaitGroup
}

// New creates a search orchestrator. recentSearches is how many past
// queries feed the interpreter prompt.
func New(
	interpreter Interpreter,
	matcher Matcher,
	retriever Retriever,
	ranker Ranker,
	history History,
	carts CartReader,
	recentSearches int,
	logger *zap.Logger,
) *Service {
	return &Service{
		interpreter:    interpreter,
		matcher:        matcher,
		retriever:      retriever,
		ranker:         ranker,
		history:        history,
		carts:          carts,
		recentSearches: recentSearches,
		logger:         logger,
	}
}

// Search runs the pipeline for one query. Generative and embedding
// failures degrade inside their stages; only an unreachable product
// store fails the request.
func (s *Service) Search(ctx context.Context, userID, rawQuery string) (domain.SearchResponse, error) {
	uc := s.gatherContext(ctx, userID)

	intent := s.interpreter.Interpret(ctx, rawQuery, uc)
	matches := s.matcher.Match(ctx, intent.CategoryPhrases)

	set, err := s.retriever.Retrieve(ctx, intent, matches)
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("retrieve candidates: %w", err)
	}

	results, summary := s.ranker.Rank(ctx, rawQuery, intent, uc, set)
	switch {
	case set.Empty():
		// The intent summary would read as if results follow.
		summary = noResultsSummary
	case summary == "":
		summary = intent.Summary
	}

	response := domain.SearchResponse{
		QueryReceived: rawQuery,
		UserID:        userID,
		Results:       results,
		Summary:       summary,
		TierUsed:      set.Tier,
	}

	s.logSearch(ctx, userID, rawQuery, intent, matches, set, results)
	return response, nil
}

// gatherContext fetches recent queries and the cart snapshot in
// parallel. Context is advisory: either read failing degrades that
// half to empty.
func (s *Service) gatherContext(ctx context.Context, userID string) domain.UserContext {
	var uc domain.UserContext
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		queries, err := s.history.RecentSearchQueries(ctx, userID, s.recentSearches)
		if err != nil {
			s.logger.Warn("Recent queries unavailable, continuing without",
				zap.String("user_id", userID), zap.Error(err))
			return
		}
		uc.RecentQueries = queries
	}()

	go func() {
		defer wg.Done()
		cart, err := s.carts.Snapshot(ctx, userID)
		if err != nil {
			s.logger.Warn("Cart snapshot unavailable, continuing without",
				zap.String("user_id", userID), zap.Error(err))
			return
		}
		uc.Cart = cart
	}()

	wg.Wait()
	return uc
}

// logSearch records the interaction without blocking the response. The
// write detaches from the request context so a client disconnect does
// not lose the event.
func (s *Service) logSearch(
	ctx context.Context,
	userID, rawQuery string,
	intent domain.Intent,
	matches []domain.CategoryMatch,
	set domain.CandidateSet,
	results []domain.RankedResult,
) {
	event := domain.InteractionEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      domain.InteractionSearch,
		Timestamp: time.Now().UTC(),
		Search: &domain.SearchDetail{
			Query:             rawQuery,
			CategoryPhrases:   intent.CategoryPhrases,
			MatchedCategories: matchedNames(matches),
			TierUsed:          set.Tier,
			CandidateIDs:      productIDs(set.Products),
			RankedIDs:         rankedIDs(results),
			ResultCount:       len(results),
		},
	}

	detached := context.WithoutCancel(ctx)
	s.logWG.Add(1)
	go func() {
		defer s.logWG.Done()
		logCtx, cancel := context.WithTimeout(detached, logTimeout)
		defer cancel()
		if err := s.history.Log(logCtx, event); err != nil {
			s.logger.Warn("Interaction logging failed",
				zap.String("user_id", userID), zap.String("event_id", event.ID), zap.Error(err))
		}
	}()
}

// Wait blocks until all detached interaction writes finish.
func (s *Service) Wait() {
	s.logWG.Wait()
}

func matchedNames(matches []domain.CategoryMatch) []string {
	var names []string
	for _, m := range matches {
		if m.Matched() {
			names = append(names, m.Category)
		}
	}
	return names
}

func productIDs(products []domain.Product) []int {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func rankedIDs(results []domain.RankedResult) []int {
	if len(results) == 0 {
		return nil
	}
	ids := make([]int, len(results))
	for i, r := range results {
		ids[i] = r.Product.ID
	}
	return ids
}
