// Package cart implements per-user carts as Redis hashes keyed by
// product ID, one JSON-encoded line per field.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

const keyPrefix = domain.KeyPrefix + "cart:"

// store is the consumer interface for cart operations (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Del(ctx context.Context, key string) error
}

// Repo is the cart repository.
type Repo struct {
	store  store
	logger *zap.Logger
}

// New creates a cart repository.
func New(s store, logger *zap.Logger) *Repo {
	return &Repo{store: s, logger: logger}
}

// SetItem adds or replaces one cart line.
func (r *Repo) SetItem(ctx context.Context, userID string, item domain.CartItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal cart item: %w", err)
	}
	fields := map[string]string{strconv.Itoa(item.ProductID): string(data)}
	if err := r.store.HSet(ctx, key(userID), fields); err != nil {
		return fmt.Errorf("%w: set cart item: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns the user's cart with lines ordered by product ID.
func (r *Repo) Get(ctx context.Context, userID string) (domain.Cart, error) {
	fields, err := r.store.HGetAll(ctx, key(userID))
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%w: get cart: %w", domain.ErrStoreUnavailable, err)
	}

	cart := domain.Cart{UserID: userID, Items: make([]domain.CartItem, 0, len(fields))}
	for field, raw := range fields {
		var item domain.CartItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			r.logger.Warn("Skipping malformed cart line",
				zap.String("user_id", userID), zap.String("field", field), zap.Error(err))
			continue
		}
		cart.Items = append(cart.Items, item)
	}
	sort.Slice(cart.Items, func(i, j int) bool {
		return cart.Items[i].ProductID < cart.Items[j].ProductID
	})
	return cart, nil
}

// Snapshot returns the cart reduced to the lines the pipeline prompts with.
func (r *Repo) Snapshot(ctx context.Context, userID string) ([]domain.CartLine, error) {
	cart, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.CartLine, len(cart.Items))
	for i, item := range cart.Items {
		lines[i] = domain.CartLine{ProductID: item.ProductID, Title: item.Title}
	}
	return lines, nil
}

// RemoveItem deletes one cart line. Removing an absent line is not an error.
func (r *Repo) RemoveItem(ctx context.Context, userID string, productID int) error {
	if err := r.store.HDel(ctx, key(userID), strconv.Itoa(productID)); err != nil {
		return fmt.Errorf("%w: remove cart item: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Clear drops the user's entire cart.
func (r *Repo) Clear(ctx context.Context, userID string) error {
	if err := r.store.Del(ctx, key(userID)); err != nil {
		return fmt.Errorf("%w: clear cart: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func key(userID string) string {
	return keyPrefix + userID
}
