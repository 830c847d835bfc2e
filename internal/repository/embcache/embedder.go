// Package embcache decorates an embedder with a store-backed vector cache.
// Category phrases repeat heavily across queries, so most lookups hit.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/db"
	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "emb_cache:"

// store is the consumer interface for the embedding cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Embedder caches vectors keyed by the SHA-256 of the input text.
type Embedder struct {
	inner      domain.Embedder
	store      store
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator around inner. cacheTotal is a counter
// vec with label "result" ("hit"/"miss"); nil disables the metric.
func New(inner domain.Embedder, s store, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Embedder {
	return &Embedder{inner: inner, store: s, cacheTotal: cacheTotal, logger: logger}
}

// Embed returns a cached vector or delegates to the inner embedder.
// Cache hits report zero token usage.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := cacheKey(text)

	if vec, ok := e.lookup(ctx, key); ok {
		e.count("hit")
		return domain.EmbeddingResult{Embedding: vec}, nil
	}
	e.count("miss")

	result, err := e.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}

	e.save(ctx, key, result.Embedding)
	return result, nil
}

func (e *Embedder) count(result string) {
	if e.cacheTotal != nil {
		e.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (e *Embedder) lookup(ctx context.Context, key string) ([]float32, bool) {
	data, err := e.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			e.logger.Warn("Embedding cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	vec, err := bytesToVector(data)
	if err != nil {
		e.logger.Warn("Dropping corrupt cached embedding", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return vec, true
}

// save is best-effort: a failed write only costs a future cache miss.
func (e *Embedder) save(ctx context.Context, key string, vec []float32) {
	if err := e.store.Set(ctx, key, vectorToBytes(vec)); err != nil {
		e.logger.Warn("Embedding cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid cached embedding: %d bytes", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
