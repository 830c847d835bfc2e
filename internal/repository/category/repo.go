// Package category implements the canonical category master list with
// vector lookup over an HNSW index.
package category

import (
	"context"
	"fmt"
	"sort"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/db"
	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// IndexName is the FT index over category hashes.
const IndexName = domain.KeyPrefix + "categories:idx"

const keyPrefix = domain.KeyPrefix + "category:"

// listLimit caps a full category listing. The master list is small by
// construction, this is a safety bound, not pagination.
const listLimit = 512

// store is the consumer interface for category operations (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Search(ctx context.Context, q *db.Query) (*db.SearchResult, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Config holds the vector index parameters.
type Config struct {
	Dimensions  int
	HNSWM       int
	EFConstruct int
}

// Embedded pairs a category with its name+description embedding.
type Embedded struct {
	Category domain.Category
	Vector   []float32
}

// Repo is the category store repository.
type Repo struct {
	store store
	cfg   Config
}

// New creates a category repository.
func New(s store, cfg Config) *Repo {
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = domain.DefaultVectorDimensions
	}
	return &Repo{store: s, cfg: cfg}
}

// EnsureIndex creates the category FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("%w: probe category index: %w", domain.ErrStoreUnavailable, err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(IndexName).
		Prefix(keyPrefix).
		Tag(fieldName).
		VectorHNSW(fieldEmbedding, r.cfg.Dimensions, db.DistanceCosine, r.cfg.HNSWM, r.cfg.EFConstruct).
		Build()
	if err != nil {
		return fmt.Errorf("build category index: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("%w: create category index: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Upsert stores one category with its embedding.
func (r *Repo) Upsert(ctx context.Context, e Embedded) error {
	if err := r.store.HSet(ctx, key(e.Category.ID), categoryToFields(e.Category, e.Vector)); err != nil {
		return fmt.Errorf("%w: upsert category %q: %w", domain.ErrStoreUnavailable, e.Category.ID, err)
	}
	return nil
}

// UpsertMulti stores a batch of embedded categories in one round-trip.
func (r *Repo) UpsertMulti(ctx context.Context, entries []Embedded) error {
	if len(entries) == 0 {
		return nil
	}
	items := make([]db.HashSetItem, len(entries))
	for i, e := range entries {
		items[i] = db.HashSetItem{Key: key(e.Category.ID), Fields: categoryToFields(e.Category, e.Vector)}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("%w: upsert %d categories: %w", domain.ErrStoreUnavailable, len(entries), err)
	}
	return nil
}

// Nearest returns the k categories closest to the query vector, most
// similar first.
func (r *Repo) Nearest(ctx context.Context, vector []float32, k int) ([]domain.CategoryHit, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    IndexName,
		VectorField:  fieldEmbedding,
		Vector:       vector,
		K:            k,
		ReturnFields: []string{fieldID, fieldName, fieldDescription},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: category knn: %w", domain.ErrStoreUnavailable, err)
	}

	hits := make([]domain.CategoryHit, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		c := categoryFromFields(e.Fields)
		if c.Name == "" {
			continue
		}
		hits = append(hits, domain.CategoryHit{Category: c, Score: e.Score})
	}
	return hits, nil
}

// List returns the full category master list ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Category, error) {
	sr, err := r.store.Search(ctx, &db.Query{
		IndexName:    IndexName,
		Query:        "*",
		Limit:        listLimit,
		ReturnFields: []string{fieldID, fieldName, fieldDescription},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %w", domain.ErrStoreUnavailable, err)
	}

	categories := make([]domain.Category, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		if c := categoryFromFields(e.Fields); c.Name != "" {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func key(id string) string {
	return keyPrefix + id
}
