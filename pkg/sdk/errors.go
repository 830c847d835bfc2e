package prodsearch

import (
	"errors"
	"fmt"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// Sentinel errors re-exported from the domain layer plus client-side ones.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrProductNotFound  = domain.ErrProductNotFound
	ErrStoreUnavailable = domain.ErrStoreUnavailable

	// ErrUnauthorized signals a missing or rejected API key.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBadRequest signals that the server rejected the request payload.
	ErrBadRequest = errors.New("bad request")
)

// APIError carries the raw error payload returned by the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the server error code to a sentinel error.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "product_not_found":
		return ErrProductNotFound
	case "not_found":
		return ErrNotFound
	case "store_unavailable":
		return ErrStoreUnavailable
	case "unauthorized":
		return ErrUnauthorized
	case "bad_request", "validation_failed":
		return ErrBadRequest
	default:
		return nil
	}
}
