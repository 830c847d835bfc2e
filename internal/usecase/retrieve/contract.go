package retrieve

import (
	"context"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// ProductQuerier runs one retrieval attempt against the product store.
type ProductQuerier interface {
	Query(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
}
