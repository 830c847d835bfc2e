package search

import (
	"context"
	"errors"
	"testing"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

func TestSearch(t *testing.T) {
	f := newFixture(t)
	f.matcher.matches = []domain.CategoryMatch{
		{Phrase: "laptops", Category: "laptops", Score: 0.8},
	}
	f.retriever.set = domain.CandidateSet{
		Tier:     domain.TierCategory,
		Products: []domain.Product{{ID: 1}, {ID: 2}},
	}
	f.ranker.results = []domain.RankedResult{
		{Product: domain.Product{ID: 2}, Rank: 1, Justification: "j"},
		{Product: domain.Product{ID: 1}, Rank: 2},
	}
	f.ranker.summary = "Found two laptops."

	resp, err := f.svc.Search(context.Background(), "u1", "cheap laptop")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if resp.QueryReceived != "cheap laptop" || resp.UserID != "u1" {
		t.Errorf("echo fields = %q, %q", resp.QueryReceived, resp.UserID)
	}
	if resp.TierUsed != domain.TierCategory {
		t.Errorf("tier = %v", resp.TierUsed)
	}
	if resp.Summary != "Found two laptops." {
		t.Errorf("summary = %q", resp.Summary)
	}
	if len(resp.Results) != 2 || resp.Results[0].Product.ID != 2 {
		t.Errorf("results = %+v", resp.Results)
	}
	if len(f.matcher.gotPhrases) != 1 || f.matcher.gotPhrases[0] != "laptops" {
		t.Errorf("matcher received phrases %v", f.matcher.gotPhrases)
	}
}

func TestSearchPassesUserContext(t *testing.T) {
	f := newFixture(t)
	f.history.queries = []string{"gaming mouse"}
	f.carts.lines = []domain.CartLine{{ProductID: 9, Title: "Pad"}}

	if _, err := f.svc.Search(context.Background(), "u1", "q"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	for name, uc := range map[string]domain.UserContext{
		"interpreter": f.interpreter.gotUC,
		"ranker":      f.ranker.gotUC,
	} {
		if len(uc.RecentQueries) != 1 || uc.RecentQueries[0] != "gaming mouse" {
			t.Errorf("%s recent queries = %v", name, uc.RecentQueries)
		}
		if len(uc.Cart) != 1 || uc.Cart[0].Title != "Pad" {
			t.Errorf("%s cart = %v", name, uc.Cart)
		}
	}
}

func TestSearchContextFailuresDegradeToEmpty(t *testing.T) {
	f := newFixture(t)
	f.history.readErr = domain.ErrStoreUnavailable
	f.carts.err = errors.New("timeout")

	if _, err := f.svc.Search(context.Background(), "u1", "q"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	uc := f.interpreter.gotUC
	if uc.RecentQueries != nil || uc.Cart != nil {
		t.Errorf("user context = %+v, want empty", uc)
	}
}

func TestSearchStoreFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.retriever.err = domain.ErrStoreUnavailable

	_, err := f.svc.Search(context.Background(), "u1", "q")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("Search() error = %v, want ErrStoreUnavailable", err)
	}

	f.svc.Wait()
	if logged := f.history.loggedEvents(); len(logged) != 0 {
		t.Errorf("failed search logged %d events, want 0", len(logged))
	}
}

func TestSearchFallsBackToIntentSummary(t *testing.T) {
	f := newFixture(t)
	f.retriever.set = domain.CandidateSet{
		Tier:     domain.TierText,
		Products: []domain.Product{{ID: 1}},
	}
	f.ranker.results = []domain.RankedResult{{Product: domain.Product{ID: 1}, Rank: 1}}
	f.ranker.summary = ""

	resp, err := f.svc.Search(context.Background(), "u1", "q")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.Summary != "a laptop" {
		t.Errorf("summary = %q, want intent summary fallback", resp.Summary)
	}
}

func TestSearchEmptyTerminalSet(t *testing.T) {
	f := newFixture(t)
	f.retriever.set = domain.CandidateSet{Tier: domain.TierPopular}

	resp, err := f.svc.Search(context.Background(), "u1", "q")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("results = %+v, want none", resp.Results)
	}
	if resp.TierUsed != domain.TierPopular {
		t.Errorf("tier = %v", resp.TierUsed)
	}
	// The intent summary ("a laptop") would read as if results follow.
	if resp.Summary != noResultsSummary {
		t.Errorf("summary = %q, want %q", resp.Summary, noResultsSummary)
	}
}

func TestSearchLogsInteraction(t *testing.T) {
	f := newFixture(t)
	f.matcher.matches = []domain.CategoryMatch{
		{Phrase: "laptops", Category: "laptops", Score: 0.8},
		{Phrase: "tablets"},
	}
	f.retriever.set = domain.CandidateSet{
		Tier:     domain.TierFull,
		Products: []domain.Product{{ID: 1}, {ID: 2}},
	}
	f.ranker.results = []domain.RankedResult{
		{Product: domain.Product{ID: 2}, Rank: 1},
	}

	if _, err := f.svc.Search(context.Background(), "u1", "cheap laptop"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	f.svc.Wait()

	logged := f.history.loggedEvents()
	if len(logged) != 1 {
		t.Fatalf("logged %d events, want 1", len(logged))
	}
	ev := logged[0]
	if ev.ID == "" {
		t.Error("event has no ID")
	}
	if ev.Type != domain.InteractionSearch || ev.UserID != "u1" {
		t.Errorf("event = %+v", ev)
	}
	d := ev.Search
	if d == nil {
		t.Fatal("event has no search detail")
	}
	if d.Query != "cheap laptop" {
		t.Errorf("detail query = %q", d.Query)
	}
	if len(d.MatchedCategories) != 1 || d.MatchedCategories[0] != "laptops" {
		t.Errorf("matched categories = %v", d.MatchedCategories)
	}
	if len(d.CandidateIDs) != 2 || len(d.RankedIDs) != 1 || d.RankedIDs[0] != 2 {
		t.Errorf("ids = %v / %v", d.CandidateIDs, d.RankedIDs)
	}
	if d.ResultCount != 1 || d.TierUsed != domain.TierFull {
		t.Errorf("detail = %+v", d)
	}
}

func TestSearchLogFailureDoesNotAffectResponse(t *testing.T) {
	f := newFixture(t)
	f.history.logErr = errors.New("list full")

	resp, err := f.svc.Search(context.Background(), "u1", "q")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.QueryReceived != "q" {
		t.Errorf("response = %+v", resp)
	}
	f.svc.Wait()
}
