package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// Machine-readable error codes returned to API clients.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeNotFound         = "not_found"
	codeProductNotFound  = "product_not_found"
	codeStoreUnavailable = "store_unavailable"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProductNotFound,
		domain.ErrNotFound,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}
