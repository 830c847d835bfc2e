package interpret

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

type mockCompleter struct {
	replies []string
	errs    []error
	calls   int
	prompts []string
}

func (m *mockCompleter) Complete(_ context.Context, _, system, user string) (string, error) {
	i := m.calls
	m.calls++
	m.prompts = append(m.prompts, system+"\n"+user)
	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	var reply string
	if i < len(m.replies) {
		reply = m.replies[i]
	}
	return reply, err
}

func newTestService(mc *mockCompleter) *Service {
	return New(mc, zap.NewNop())
}

const validReply = `{
	"category_phrases": ["running shoes"],
	"filters": {"price_min": null, "price_max": 150, "brands": ["nike"], "keywords": ["lightweight"]},
	"tags": ["sport"],
	"intent_summary": "Affordable lightweight running shoes"
}`

func TestInterpret(t *testing.T) {
	mc := &mockCompleter{replies: []string{validReply}}
	svc := newTestService(mc)

	intent := svc.Interpret(context.Background(), "nike running shoes under 150", domain.UserContext{})

	if mc.calls != 1 {
		t.Fatalf("completer called %d times, want 1", mc.calls)
	}
	if len(intent.CategoryPhrases) != 1 || intent.CategoryPhrases[0] != "running shoes" {
		t.Errorf("phrases = %v", intent.CategoryPhrases)
	}
	if intent.Filters.PriceMax == nil || *intent.Filters.PriceMax != 150 {
		t.Errorf("price max = %v", intent.Filters.PriceMax)
	}
	if intent.Filters.PriceMin != nil {
		t.Errorf("price min = %v, want nil", *intent.Filters.PriceMin)
	}
	if intent.Summary != "Affordable lightweight running shoes" {
		t.Errorf("summary = %q", intent.Summary)
	}
}

func TestInterpretIncludesUserContext(t *testing.T) {
	mc := &mockCompleter{replies: []string{validReply}}
	svc := newTestService(mc)

	uc := domain.UserContext{
		RecentQueries: []string{"trail shoes"},
		Cart:          []domain.CartLine{{ProductID: 7, Title: "Water Bottle"}},
	}
	svc.Interpret(context.Background(), "running shoes", uc)

	prompt := mc.prompts[0]
	if !strings.Contains(prompt, "trail shoes") {
		t.Error("prompt is missing recent queries")
	}
	if !strings.Contains(prompt, "Water Bottle") {
		t.Error("prompt is missing cart contents")
	}
}

func TestInterpretStripsMarkdownFence(t *testing.T) {
	mc := &mockCompleter{replies: []string{"```json\n" + validReply + "\n```"}}
	svc := newTestService(mc)

	intent := svc.Interpret(context.Background(), "running shoes", domain.UserContext{})
	if len(intent.CategoryPhrases) != 1 || intent.CategoryPhrases[0] != "running shoes" {
		t.Errorf("phrases = %v", intent.CategoryPhrases)
	}
}

func TestInterpretRetriesOnceOnMalformedReply(t *testing.T) {
	mc := &mockCompleter{replies: []string{"sorry, I cannot", validReply}}
	svc := newTestService(mc)

	intent := svc.Interpret(context.Background(), "running shoes", domain.UserContext{})

	if mc.calls != 2 {
		t.Fatalf("completer called %d times, want 2", mc.calls)
	}
	if !strings.Contains(mc.prompts[1], "could not be parsed") {
		t.Error("retry prompt is missing the corrective note")
	}
	if intent.CategoryPhrases[0] != "running shoes" {
		t.Errorf("phrases = %v", intent.CategoryPhrases)
	}
}

func TestInterpretFallsBackToHeuristic(t *testing.T) {
	mc := &mockCompleter{errs: []error{
		domain.ErrInterpreterUnavailable,
		domain.ErrInterpreterUnavailable,
	}}
	svc := newTestService(mc)

	intent := svc.Interpret(context.Background(), "cheap gaming laptop", domain.UserContext{})

	if mc.calls != 2 {
		t.Fatalf("completer called %d times, want 2", mc.calls)
	}
	want := domain.HeuristicIntent("cheap gaming laptop")
	if intent.CategoryPhrases[0] != want.CategoryPhrases[0] {
		t.Errorf("phrases = %v, want %v", intent.CategoryPhrases, want.CategoryPhrases)
	}
	if len(intent.Filters.Keywords) != 3 {
		t.Errorf("keywords = %v, want 3 words longer than three chars", intent.Filters.Keywords)
	}
}

func TestInterpretNormalizesSloppyReply(t *testing.T) {
	mc := &mockCompleter{replies: []string{`{
		"category_phrases": ["  ", ""],
		"filters": {"price_min": 200, "price_max": 100, "brands": [], "keywords": []},
		"intent_summary": ""
	}`}}
	svc := newTestService(mc)

	intent := svc.Interpret(context.Background(), "headphones", domain.UserContext{})

	if len(intent.CategoryPhrases) != 1 || intent.CategoryPhrases[0] != "headphones" {
		t.Errorf("phrases = %v, want raw query fallback", intent.CategoryPhrases)
	}
	if intent.Summary != "headphones" {
		t.Errorf("summary = %q", intent.Summary)
	}
	if *intent.Filters.PriceMin != 100 || *intent.Filters.PriceMax != 200 {
		t.Errorf("inverted price range not swapped: min=%v max=%v",
			*intent.Filters.PriceMin, *intent.Filters.PriceMax)
	}
}

func TestInterpretErrorThenMalformedFallsBack(t *testing.T) {
	mc := &mockCompleter{
		replies: []string{"", "{broken"},
		errs:    []error{errors.New("rate limited"), nil},
	}
	svc := newTestService(mc)

	intent := svc.Interpret(context.Background(), "desk", domain.UserContext{})
	if mc.calls != 2 {
		t.Fatalf("completer called %d times, want 2", mc.calls)
	}
	if intent.CategoryPhrases[0] != "desk" {
		t.Errorf("phrases = %v", intent.CategoryPhrases)
	}
}
