package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

type mockReader struct {
	gotN int
	err  error
}

func (m *mockReader) Recent(_ context.Context, _ string, n int) ([]domain.InteractionEvent, error) {
	m.gotN = n
	if m.err != nil {
		return nil, m.err
	}
	return []domain.InteractionEvent{{ID: "ev"}}, nil
}

func TestRecentDefaultsAndCaps(t *testing.T) {
	mr := &mockReader{}
	svc := New(mr, 50)

	if _, err := svc.Recent(context.Background(), "u1", 0); err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if mr.gotN != defaultLimit {
		t.Errorf("n = %d, want default %d", mr.gotN, defaultLimit)
	}

	if _, err := svc.Recent(context.Background(), "u1", 500); err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if mr.gotN != 50 {
		t.Errorf("n = %d, want capped 50", mr.gotN)
	}
}

func TestRecentPropagatesError(t *testing.T) {
	mr := &mockReader{err: domain.ErrStoreUnavailable}
	svc := New(mr, 50)

	_, err := svc.Recent(context.Background(), "u1", 5)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("Recent() error = %v, want ErrStoreUnavailable", err)
	}
}
