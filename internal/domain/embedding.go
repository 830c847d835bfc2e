package domain

import "context"

// EmbeddingResult holds a vector and the token usage that produced it.
// Cache hits carry zero tokens.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text into a fixed-dimension embedding.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// DefaultVectorDimensions is used when the vectorizer config omits dimensions.
const DefaultVectorDimensions = 1536
