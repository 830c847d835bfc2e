// Package activity exposes a user's recorded interaction history.
package activity

import (
	"context"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// defaultLimit applies when the caller does not bound the read.
const defaultLimit = 20

// HistoryReader reads interaction events.
type HistoryReader interface {
	Recent(ctx context.Context, userID string, n int) ([]domain.InteractionEvent, error)
}

// Service reads interaction history.
type Service struct {
	history HistoryReader
	maxRead int
}

// New creates an activity service. maxRead caps a single read.
func New(history HistoryReader, maxRead int) *Service {
	return &Service{history: history, maxRead: maxRead}
}

// Recent returns up to n events, newest first.
func (s *Service) Recent(ctx context.Context, userID string, n int) ([]domain.InteractionEvent, error) {
	if n <= 0 {
		n = defaultLimit
	}
	if s.maxRead > 0 && n > s.maxRead {
		n = s.maxRead
	}
	return s.history.Recent(ctx, userID, n)
}
