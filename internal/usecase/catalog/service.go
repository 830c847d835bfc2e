// Package catalog exposes product CRUD and records product views.
package catalog

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

// Listing page bounds.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service handles catalog reads and writes.
type Service struct {
	products ProductStore
	history  InteractionLogger
	logger   *zap.Logger

	logWG sync.WaitGroup
}

// New creates a catalog service.
func New(products ProductStore, history InteractionLogger, logger *zap.Logger) *Service {
	return &Service{products: products, history: history, logger: logger}
}

// Get returns one product. A non-empty userID records a view event
// without blocking the response.
func (s *Service) Get(ctx context.Context, id int, userID string) (domain.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if userID != "" {
		s.logView(ctx, userID, p)
	}
	return p, nil
}

// List returns a page of the catalog, optionally restricted to one
// category. limit <= 0 uses the default page size.
func (s *Service) List(ctx context.Context, category string, offset, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	q := domain.ProductQuery{Offset: offset, Limit: limit}
	if category != "" {
		q.Categories = []string{category}
	}
	return s.products.Query(ctx, q)
}

// Upsert validates and stores one product.
func (s *Service) Upsert(ctx context.Context, p domain.Product) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.products.Upsert(ctx, p)
}

// Import stores a batch of products, skipping invalid entries. It
// returns how many were stored.
func (s *Service) Import(ctx context.Context, products []domain.Product) (int, error) {
	valid := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if err := validate(p); err != nil {
			s.logger.Warn("Skipping invalid product", zap.Int("id", p.ID), zap.Error(err))
			continue
		}
		valid = append(valid, p)
	}
	if err := s.products.UpsertMulti(ctx, valid); err != nil {
		return 0, err
	}
	return len(valid), nil
}

// Delete removes one product.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.products.Delete(ctx, id)
}

// Count returns the catalog size.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.products.Count(ctx)
}

// Wait blocks until all detached view writes finish.
func (s *Service) Wait() {
	s.logWG.Wait()
}

func (s *Service) logView(ctx context.Context, userID string, p domain.Product) {
	event := domain.InteractionEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      domain.InteractionViewProduct,
		Timestamp: time.Now().UTC(),
		Product:   &domain.ProductDetail{ProductID: p.ID, Title: p.Title},
	}

	detached := context.WithoutCancel(ctx)
	s.logWG.Add(1)
	go func() {
		defer s.logWG.Done()
		logCtx, cancel := context.WithTimeout(detached, logTimeout)
		defer cancel()
		if err := s.history.Log(logCtx, event); err != nil {
			s.logger.Warn("View logging failed",
				zap.String("user_id", userID), zap.Int("product_id", p.ID), zap.Error(err))
		}
	}()
}

func validate(p domain.Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("product id must be positive, got %d", p.ID)
	}
	if p.Title == "" {
		return fmt.Errorf("product %d has no title", p.ID)
	}
	if p.Category == "" {
		return fmt.Errorf("product %d has no category", p.ID)
	}
	if p.Price < 0 {
		return fmt.Errorf("product %d has negative price", p.ID)
	}
	return nil
}
