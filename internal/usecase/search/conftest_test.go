package search

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

type mockInterpreter struct {
	intent domain.Intent
	gotUC  domain.UserContext
}

func (m *mockInterpreter) Interpret(_ context.Context, _ string, uc domain.UserContext) domain.Intent {
	m.gotUC = uc
	return m.intent
}

type mockMatcher struct {
	matches    []domain.CategoryMatch
	gotPhrases []string
}

func (m *mockMatcher) Match(_ context.Context, phrases []string) []domain.CategoryMatch {
	m.gotPhrases = phrases
	return m.matches
}

type mockRetriever struct {
	set domain.CandidateSet
	err error
}

func (m *mockRetriever) Retrieve(context.Context, domain.Intent, []domain.CategoryMatch) (domain.CandidateSet, error) {
	return m.set, m.err
}

type mockRanker struct {
	results []domain.RankedResult
	summary string
	gotUC   domain.UserContext
}

func (m *mockRanker) Rank(_ context.Context, _ string, _ domain.Intent, uc domain.UserContext, _ domain.CandidateSet) ([]domain.RankedResult, string) {
	m.gotUC = uc
	return m.results, m.summary
}

type mockHistory struct {
	mu      sync.Mutex
	queries []string
	readErr error
	logged  []domain.InteractionEvent
	logErr  error
}

func (m *mockHistory) RecentSearchQueries(context.Context, string, int) ([]string, error) {
	return m.queries, m.readErr
}

func (m *mockHistory) Log(_ context.Context, event domain.InteractionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logged = append(m.logged, event)
	return m.logErr
}

func (m *mockHistory) loggedEvents() []domain.InteractionEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.InteractionEvent(nil), m.logged...)
}

type mockCarts struct {
	lines []domain.CartLine
	err   error
}

func (m *mockCarts) Snapshot(context.Context, string) ([]domain.CartLine, error) {
	return m.lines, m.err
}

type fixture struct {
	interpreter *mockInterpreter
	matcher     *mockMatcher
	retriever   *mockRetriever
	ranker      *mockRanker
	history     *mockHistory
	carts       *mockCarts
	svc         *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		interpreter: &mockInterpreter{intent: domain.Intent{
			CategoryPhrases: []string{"laptops"},
			Summary:         "a laptop",
		}},
		matcher:   &mockMatcher{},
		retriever: &mockRetriever{},
		ranker:    &mockRanker{},
		history:   &mockHistory{},
		carts:     &mockCarts{},
	}
	f.svc = New(
		f.interpreter, f.matcher, f.retriever, f.ranker,
		f.history, f.carts, 3, zap.NewNop(),
	)
	return f
}
