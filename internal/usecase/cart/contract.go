package cart

import (
	"context"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// Store is the storage contract for cart operations.
type Store interface {
	SetItem(ctx context.Context, userID string, item domain.CartItem) error
	Get(ctx context.Context, userID string) (domain.Cart, error)
	RemoveItem(ctx context.Context, userID string, productID int) error
	Clear(ctx context.Context, userID string) error
}

// ProductReader resolves product IDs to catalog entries.
type ProductReader interface {
	Get(ctx context.Context, id int) (domain.Product, error)
}

// InteractionLogger records cart interaction events.
type InteractionLogger interface {
	Log(ctx context.Context, event domain.InteractionEvent) error
}
