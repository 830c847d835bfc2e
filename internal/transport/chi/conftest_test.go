package chi

import (
	"context"
	"net/http/httptest"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
	activityuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/activity"
	cartuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/cart"
	cataloguc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/catalog"
	categoriesuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/categories"
	healthuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/health"
	searchuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/search"
)

// Transport tests run real usecase services over stubbed storage and
// model dependencies.

type stubInterpreter struct{}

func (stubInterpreter) Interpret(_ context.Context, rawQuery string, _ domain.UserContext) domain.Intent {
	return domain.HeuristicIntent(rawQuery)
}

type stubMatcher struct{}

func (stubMatcher) Match(_ context.Context, phrases []string) []domain.CategoryMatch {
	matches := make([]domain.CategoryMatch, len(phrases))
	for i, p := range phrases {
		matches[i] = domain.CategoryMatch{Phrase: p}
	}
	return matches
}

type stubRetriever struct {
	set domain.CandidateSet
	err error
}

func (s *stubRetriever) Retrieve(context.Context, domain.Intent, []domain.CategoryMatch) (domain.CandidateSet, error) {
	return s.set, s.err
}

type stubRanker struct{}

func (stubRanker) Rank(_ context.Context, _ string, _ domain.Intent, _ domain.UserContext, set domain.CandidateSet) ([]domain.RankedResult, string) {
	results := make([]domain.RankedResult, len(set.Products))
	for i, p := range set.Products {
		results[i] = domain.RankedResult{Product: p, Rank: i + 1}
	}
	return results, "stub summary"
}

type stubHistory struct {
	events []domain.InteractionEvent
	err    error
}

func (s *stubHistory) RecentSearchQueries(context.Context, string, int) ([]string, error) {
	return nil, nil
}

func (s *stubHistory) Log(context.Context, domain.InteractionEvent) error { return nil }

func (s *stubHistory) Recent(context.Context, string, int) ([]domain.InteractionEvent, error) {
	return s.events, s.err
}

type stubCarts struct {
	cart domain.Cart
	err  error
}

func (s *stubCarts) Snapshot(context.Context, string) ([]domain.CartLine, error) { return nil, nil }

func (s *stubCarts) SetItem(_ context.Context, userID string, item domain.CartItem) error {
	if s.err != nil {
		return s.err
	}
	s.cart.UserID = userID
	s.cart.Items = append(s.cart.Items, item)
	return nil
}

func (s *stubCarts) Get(_ context.Context, userID string) (domain.Cart, error) {
	if s.err != nil {
		return domain.Cart{}, s.err
	}
	cart := s.cart
	cart.UserID = userID
	return cart, nil
}

func (s *stubCarts) RemoveItem(context.Context, string, int) error { return s.err }
func (s *stubCarts) Clear(context.Context, string) error           { return s.err }

type stubProducts struct {
	products map[int]domain.Product
	err      error
}

func (s *stubProducts) Get(_ context.Context, id int) (domain.Product, error) {
	if s.err != nil {
		return domain.Product{}, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *stubProducts) Query(_ context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Product
	for _, p := range s.products {
		if len(q.Categories) > 0 && p.Category != q.Categories[0] {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProducts) Upsert(context.Context, domain.Product) error        { return s.err }
func (s *stubProducts) UpsertMulti(context.Context, []domain.Product) error { return s.err }
func (s *stubProducts) Delete(context.Context, int) error                   { return s.err }
func (s *stubProducts) Count(context.Context) (int, error)                  { return len(s.products), s.err }

type stubCategoryIndex struct {
	categories []domain.Category
	err        error
}

func (s *stubCategoryIndex) Nearest(context.Context, []float32, int) ([]domain.CategoryHit, error) {
	return nil, nil
}

func (s *stubCategoryIndex) List(context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: []float32{0}}, nil
}

type stubPinger struct{ err error }

func (s *stubPinger) Ping(context.Context) error { return s.err }

type fixture struct {
	retriever *stubRetriever
	history   *stubHistory
	carts     *stubCarts
	products  *stubProducts
	catIndex  *stubCategoryIndex
	pinger    *stubPinger
	server    *Server
	ts        *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()

	f := &fixture{
		retriever: &stubRetriever{},
		history:   &stubHistory{},
		carts:     &stubCarts{},
		products: &stubProducts{products: map[int]domain.Product{
			7: {ID: 7, Title: "Lamp", Category: "home", Price: 25},
		}},
		catIndex: &stubCategoryIndex{categories: []domain.Category{
			{ID: "beauty", Name: "beauty"},
		}},
		pinger: &stubPinger{},
	}

	searchSvc := searchuc.New(
		stubInterpreter{}, stubMatcher{}, f.retriever, stubRanker{},
		f.history, f.carts, 3, logger,
	)
	catalogSvc := cataloguc.New(f.products, f.history, logger)
	categoriesSvc := categoriesuc.New(f.catIndex, stubEmbedder{}, 0.35, logger)
	cartSvc := cartuc.New(f.carts, f.products, f.history, logger)
	activitySvc := activityuc.New(f.history, 50)
	healthSvc := healthuc.New(f.pinger, nil)

	f.server = NewServer(searchSvc, catalogSvc, categoriesSvc, cartSvc, activitySvc, healthSvc, logger)

	r := gochi.NewRouter()
	f.server.Routes(r)
	f.ts = httptest.NewServer(r)
	t.Cleanup(f.ts.Close)
	return f
}
