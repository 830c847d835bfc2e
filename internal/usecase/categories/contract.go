package categories

import (
	"context"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// Index looks up categories by vector similarity.
type Index interface {
	Nearest(ctx context.Context, vector []float32, k int) ([]domain.CategoryHit, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
