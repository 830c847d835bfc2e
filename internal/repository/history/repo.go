// Package history implements per-user interaction history as a capped
// Redis list, newest first.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

const keyPrefix = domain.KeyPrefix + "history:"

// store is the consumer interface for history operations (ISP).
type store interface {
	LPush(ctx context.Context, key string, values ...string) error
	LTrim(ctx context.Context, key string, start, stop int64) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Repo is the interaction history repository.
type Repo struct {
	store  store
	cap    int
	logger *zap.Logger
}

// New creates a history repository. cap bounds the list length per user.
func New(s store, cap int, logger *zap.Logger) *Repo {
	if cap <= 0 {
		cap = 50
	}
	return &Repo{store: s, cap: cap, logger: logger}
}

// Log appends an event to the user's history and trims to the cap.
func (r *Repo) Log(ctx context.Context, event domain.InteractionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal interaction event: %w", err)
	}
	k := key(event.UserID)
	if err := r.store.LPush(ctx, k, string(data)); err != nil {
		return fmt.Errorf("%w: push interaction: %w", domain.ErrStoreUnavailable, err)
	}
	if err := r.store.LTrim(ctx, k, 0, int64(r.cap-1)); err != nil {
		return fmt.Errorf("%w: trim history: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Recent returns up to n events, newest first.
func (r *Repo) Recent(ctx context.Context, userID string, n int) ([]domain.InteractionEvent, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := r.store.LRange(ctx, key(userID), 0, int64(n-1))
	if err != nil {
		return nil, fmt.Errorf("%w: read history: %w", domain.ErrStoreUnavailable, err)
	}

	events := make([]domain.InteractionEvent, 0, len(raw))
	for _, item := range raw {
		var ev domain.InteractionEvent
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			// Malformed entries are skipped, not fatal. They can only
			// appear through manual writes to the store.
			r.logger.Warn("Skipping malformed history entry",
				zap.String("user_id", userID), zap.Error(err))
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// RecentSearchQueries returns the user's last n distinct search queries,
// newest first. It scans more events than n because the history mixes
// interaction types.
func (r *Repo) RecentSearchQueries(ctx context.Context, userID string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	events, err := r.Recent(ctx, userID, r.cap)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, n)
	queries := make([]string, 0, n)
	for _, ev := range events {
		if ev.Type != domain.InteractionSearch || ev.Search == nil {
			continue
		}
		q := ev.Search.Query
		if q == "" {
			continue
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
		if len(queries) == n {
			break
		}
	}
	return queries, nil
}

func key(userID string) string {
	return keyPrefix + userID
}
