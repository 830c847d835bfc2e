package embcache

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/db"
	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func newTestEmbedder(t *testing.T, inner *mockEmbedder) (*Embedder, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	return New(inner, ms, nil, zap.NewNop()), ms
}

func TestEmbed_CacheMiss(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{0.1, 0.2, 0.3},
		PromptTokens: 8,
		TotalTokens:  8,
	}}
	ce, ms := newTestEmbedder(t, inner)

	ms.getFn = func(context.Context, string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}
	var setCalled bool
	ms.setFn = func(context.Context, string, []byte) error {
		setCalled = true
		return nil
	}

	result, err := ce.Embed(context.Background(), "wireless headphones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Embedding) != 3 || result.Embedding[0] != 0.1 {
		t.Fatalf("unexpected vector: %v", result.Embedding)
	}
	if result.TotalTokens != 8 {
		t.Fatalf("expected TotalTokens=8, got %d", result.TotalTokens)
	}
	if !setCalled {
		t.Fatal("expected cache put after a miss")
	}
}

func TestEmbed_CacheHit(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	ce, ms := newTestEmbedder(t, inner)

	cached := vectorToBytes([]float32{0.4, 0.5, 0.6})
	ms.getFn = func(context.Context, string) ([]byte, error) {
		return cached, nil
	}

	result, err := ce.Embed(context.Background(), "wireless headphones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Embedding) != 3 || result.Embedding[0] != 0.4 {
		t.Fatalf("expected cached vector, got: %v", result.Embedding)
	}
	if result.TotalTokens != 0 {
		t.Fatalf("expected TotalTokens=0 on cache hit, got %d", result.TotalTokens)
	}
	if inner.calls != 0 {
		t.Fatalf("inner embedder called %d times on a hit", inner.calls)
	}
}

func TestEmbed_CorruptCachedEntryFallsThrough(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.7}}}
	ce, ms := newTestEmbedder(t, inner)

	ms.getFn = func(context.Context, string) ([]byte, error) {
		return []byte{1, 2, 3}, nil // not a multiple of 4
	}

	result, err := ce.Embed(context.Background(), "desk lamp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Embedding[0] != 0.7 {
		t.Fatalf("expected inner vector, got %v", result.Embedding)
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}
}

func TestEmbed_InnerError(t *testing.T) {
	inner := &mockEmbedder{err: errors.New("provider down")}
	ce, ms := newTestEmbedder(t, inner)

	ms.getFn = func(context.Context, string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}

	if _, err := ce.Embed(context.Background(), "anything"); err == nil {
		t.Fatal("expected error from inner embedder")
	}
}

func TestEmbed_CacheWriteFailureIsNotFatal(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.2}}}
	ce, ms := newTestEmbedder(t, inner)

	ms.getFn = func(context.Context, string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}
	ms.setFn = func(context.Context, string, []byte) error {
		return errors.New("oom")
	}

	result, err := ce.Embed(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Embedding[0] != 0.2 {
		t.Fatalf("unexpected vector: %v", result.Embedding)
	}
}
