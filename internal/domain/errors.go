package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrProductNotFound signals a missing catalog product.
	ErrProductNotFound = errors.New("product not found")

	// ErrInterpreterUnavailable signals that the generative model could not
	// produce a usable query interpretation. Absorbed by the heuristic fallback.
	ErrInterpreterUnavailable = errors.New("query interpreter unavailable")
	// ErrEmbeddingUnavailable signals an embedding provider failure or timeout.
	// Retryable once, then the caller degrades.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	// ErrRankerUnavailable signals a ranking model failure. Callers fall back
	// to the original retrieval order.
	ErrRankerUnavailable = errors.New("relevance ranker unavailable")

	// ErrStoreUnavailable signals that the product store is unreachable.
	// The only fatal pipeline error: it aborts the current request.
	ErrStoreUnavailable = errors.New("product store unavailable")
)
