package catalog

import (
	"context"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// ProductStore is the storage contract for catalog operations.
type ProductStore interface {
	Get(ctx context.Context, id int) (domain.Product, error)
	Query(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) error
	UpsertMulti(ctx context.Context, products []domain.Product) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// InteractionLogger records product-level interaction events.
type InteractionLogger interface {
	Log(ctx context.Context, event domain.InteractionEvent) error
}
