// Package cart manages per-user carts and records cart interactions.
package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

const logTimeout = 5 * time.Second

// Service handles cart operations.
type Service struct {
	carts    Store
	products ProductReader
	history  InteractionLogger
	logger   *zap.Logger

	logWG sync.WaitGroup
}

// New creates a cart service.
func New(carts Store, products ProductReader, history InteractionLogger, logger *zap.Logger) *Service {
	return &Service{carts: carts, products: products, history: history, logger: logger}
}

// Add puts quantity units of a product into the user's cart. The line
// snapshots the catalog title and price at add time. Adding an existing
// product replaces its line.
func (s *Service) Add(ctx context.Context, userID string, productID, quantity int) (domain.Cart, error) {
	if quantity <= 0 {
		return domain.Cart{}, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	item := domain.CartItem{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Quantity:  quantity,
	}
	if err := s.carts.SetItem(ctx, userID, item); err != nil {
		return domain.Cart{}, err
	}

	s.logAdd(ctx, userID, item)
	return s.carts.Get(ctx, userID)
}

// Get returns the user's cart.
func (s *Service) Get(ctx context.Context, userID string) (domain.Cart, error) {
	return s.carts.Get(ctx, userID)
}

// Remove deletes one line and returns the updated cart.
func (s *Service) Remove(ctx context.Context, userID string, productID int) (domain.Cart, error) {
	if err := s.carts.RemoveItem(ctx, userID, productID); err != nil {
		return domain.Cart{}, err
	}
	return s.carts.Get(ctx, userID)
}

// Clear empties the user's cart.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

// Wait blocks until all detached interaction writes finish.
func (s *Service) Wait() {
	s.logWG.Wait()
}

func (s *Service) logAdd(ctx context.Context, userID string, item domain.CartItem) {
	event := domain.InteractionEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      domain.InteractionAddToCart,
		Timestamp: time.Now().UTC(),
		Product: &domain.ProductDetail{
			ProductID: item.ProductID,
			Title:     item.Title,
			Quantity:  item.Quantity,
		},
	}

	detached := context.WithoutCancel(ctx)
	s.logWG.Add(1)
	go func() {
		defer s.logWG.Done()
		logCtx, cancel := context.WithTimeout(detached, logTimeout)
		defer cancel()
		if err := s.history.Log(logCtx, event); err != nil {
			s.logger.Warn("Cart interaction logging failed",
				zap.String("user_id", userID), zap.Int("product_id", item.ProductID), zap.Error(err))
		}
	}()
}
