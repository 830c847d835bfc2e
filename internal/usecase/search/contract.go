package search

import (
	"context"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// Interpreter turns a raw query into a structured intent. Never fails.
type Interpreter interface {
	Interpret(ctx context.Context, rawQuery string, uc domain.UserContext) domain.Intent
}

// Matcher resolves category phrases against the category master list.
type Matcher interface {
	Match(ctx context.Context, phrases []string) []domain.CategoryMatch
}

// Retriever walks the tiered retrieval ladder.
type Retriever interface {
	Retrieve(ctx context.Context, intent domain.Intent, matches []domain.CategoryMatch) (domain.CandidateSet, error)
}

// Ranker orders candidates by relevance, personalized by the user's
// recent activity. Never fails.
type Ranker interface {
	Rank(ctx context.Context, rawQuery string, intent domain.Intent, uc domain.UserContext, set domain.CandidateSet) ([]domain.RankedResult, string)
}

// History reads recent queries and records interaction events.
type History interface {
	RecentSearchQueries(ctx context.Context, userID string, n int) ([]string, error)
	Log(ctx context.Context, event domain.InteractionEvent) error
}

// CartReader snapshots a user's cart for prompt context.
type CartReader interface {
	Snapshot(ctx context.Context, userID string) ([]domain.CartLine, error)
}
