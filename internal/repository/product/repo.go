// Package product implements the catalog store over Redis hashes + FT.SEARCH.
package product

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/db"
	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// IndexName is the FT index over product hashes.
const IndexName = domain.KeyPrefix + "products:idx"

const keyPrefix = domain.KeyPrefix + "product:"

// store is the consumer interface for product operations (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Search(ctx context.Context, q *db.Query) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo is the product store repository.
type Repo struct {
	store store
}

// New creates a product repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the product FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("%w: probe product index: %w", domain.ErrStoreUnavailable, err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(IndexName).
		Prefix(keyPrefix).
		Tag(fieldCategory).
		Tag(fieldBrand).
		Numeric(fieldPrice, false).
		Numeric(fieldRating, true).
		Numeric(fieldID, true).
		Text(fieldText).
		Build()
	if err != nil {
		return fmt.Errorf("build product index: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("%w: create product index: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Upsert stores one product.
func (r *Repo) Upsert(ctx context.Context, p domain.Product) error {
	if err := r.store.HSet(ctx, key(p.ID), productToFields(p)); err != nil {
		return fmt.Errorf("%w: upsert product %d: %w", domain.ErrStoreUnavailable, p.ID, err)
	}
	return nil
}

// UpsertMulti stores a batch of products in one round-trip.
func (r *Repo) UpsertMulti(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	items := make([]db.HashSetItem, len(products))
	for i, p := range products {
		items[i] = db.HashSetItem{Key: key(p.ID), Fields: productToFields(p)}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("%w: upsert %d products: %w", domain.ErrStoreUnavailable, len(products), err)
	}
	return nil
}

// Get returns one product by ID.
func (r *Repo) Get(ctx context.Context, id int) (domain.Product, error) {
	fields, err := r.store.HGetAll(ctx, key(id))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: get product %d: %w", domain.ErrStoreUnavailable, id, err)
	}
	if len(fields) == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return productFromFields(fields), nil
}

// Query runs one retrieval attempt. Results are ordered by the store's text
// match score descending (popularity when PopularFirst), ties broken by
// product ID ascending so identical queries return identical orderings.
func (r *Repo) Query(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	dq := &db.Query{
		IndexName:  IndexName,
		Query:      buildQuery(q),
		WithScores: q.Text != "",
		Offset:     q.Offset,
		Limit:      q.Limit,
	}
	if q.PopularFirst {
		dq.SortBy = fieldRating
		dq.SortDesc = true
		dq.WithScores = false
	}

	sr, err := r.store.Search(ctx, dq)
	if err != nil {
		return nil, fmt.Errorf("%w: query products: %w", domain.ErrStoreUnavailable, err)
	}

	type scored struct {
		product domain.Product
		score   float64
	}
	hits := make([]scored, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		p := productFromFields(e.Fields)
		if p.ID == 0 {
			continue
		}
		hits = append(hits, scored{product: p, score: e.Score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if q.PopularFirst && hits[i].product.Rating != hits[j].product.Rating {
			return hits[i].product.Rating > hits[j].product.Rating
		}
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].product.ID < hits[j].product.ID
	})

	products := make([]domain.Product, len(hits))
	for i, h := range hits {
		products[i] = h.product
	}
	return products, nil
}

// Count returns the total number of indexed products.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, IndexName, "*")
	if err != nil {
		return 0, fmt.Errorf("%w: count products: %w", domain.ErrStoreUnavailable, err)
	}
	return n, nil
}

// Delete removes a product.
func (r *Repo) Delete(ctx context.Context, id int) error {
	if err := r.store.Del(ctx, key(id)); err != nil {
		return fmt.Errorf("%w: delete product %d: %w", domain.ErrStoreUnavailable, id, err)
	}
	return nil
}

func key(id int) string {
	return keyPrefix + strconv.Itoa(id)
}
