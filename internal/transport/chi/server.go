// Package chi implements the HTTP API over a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
	activityuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/activity"
	cartuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/cart"
	cataloguc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/catalog"
	categoriesuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/categories"
	healthuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/health"
	searchuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/search"
)

// maxQueryLength bounds a search query before it reaches the model.
const maxQueryLength = 512

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for all API routes.
type Server struct {
	search        *searchuc.Service
	catalog       *cataloguc.Service
	categories    *categoriesuc.Service
	cart          *cartuc.Service
	activity      *activityuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	catalog *cataloguc.Service,
	categories *categoriesuc.Service,
	cart *cartuc.Service,
	activity *activityuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:     search,
		catalog:    catalog,
		categories: categories,
		cart:       cart,
		activity:   activity,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, codeProductNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.Search)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.ListProducts)
			r.Get("/{id}", s.GetProduct)
			r.Put("/{id}", s.UpsertProduct)
			r.Delete("/{id}", s.DeleteProduct)
		})

		r.Get("/categories", s.ListCategories)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/history", s.GetHistory)
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", s.GetCart)
				r.Delete("/", s.ClearCart)
				r.Post("/items", s.AddCartItem)
				r.Delete("/items/{productID}", s.RemoveCartItem)
			})
		})
	})
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		Query  string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	switch {
	case req.UserID == "":
		writeError(w, http.StatusBadRequest, codeValidationFailed, "user_id is required")
		return
	case req.Query == "":
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	case len(req.Query) > maxQueryLength:
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"query exceeds "+strconv.Itoa(maxQueryLength)+" characters")
		return
	}

	resp, err := s.search.Search(r.Context(), req.UserID, req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListProducts handles GET /api/v1/products with optional category,
// limit, and offset query parameters.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, ok := positiveIntQuery(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := positiveIntQuery(w, r, "offset")
	if !ok {
		return
	}

	products, err := s.catalog.List(r.Context(), r.URL.Query().Get("category"), offset, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": products,
		"total": len(products),
	})
}

// GetProduct handles GET /api/v1/products/{id}. An optional user_id
// query parameter attributes the view to a user's history.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	p, err := s.catalog.Get(r.Context(), id, r.URL.Query().Get("user_id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// UpsertProduct handles PUT /api/v1/products/{id}.
func (s *Server) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	p.ID = id

	if err := s.catalog.Upsert(r.Context(), p); err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			s.handleDomainError(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/v1/products/{id}.
func (s *Server) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := s.catalog.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /api/v1/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": categories,
		"total": len(categories),
	})
}

// GetCart handles GET /api/v1/users/{userID}/cart.
func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.cart.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse(cart))
}

// AddCartItem handles POST /api/v1/users/{userID}/cart/items.
func (s *Server) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.ProductID <= 0 || req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"product_id must be positive and quantity non-negative")
		return
	}

	cart, err := s.cart.Add(r.Context(), chi.URLParam(r, "userID"), req.ProductID, req.Quantity)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse(cart))
}

// RemoveCartItem handles DELETE /api/v1/users/{userID}/cart/items/{productID}.
func (s *Server) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil || productID <= 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "product id must be a positive integer")
		return
	}

	cart, err := s.cart.Remove(r.Context(), chi.URLParam(r, "userID"), productID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse(cart))
}

// ClearCart handles DELETE /api/v1/users/{userID}/cart.
func (s *Server) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.Clear(r.Context(), chi.URLParam(r, "userID")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetHistory handles GET /api/v1/users/{userID}/history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be a positive integer")
			return
		}
		limit = n
	}

	events, err := s.activity.Recent(r.Context(), chi.URLParam(r, "userID"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if events == nil {
		events = []domain.InteractionEvent{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": events,
		"total": len(events),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// positiveIntQuery parses an optional non-negative integer query
// parameter; absent means zero.
func positiveIntQuery(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "product id must be a positive integer")
		return 0, false
	}
	return id, true
}

func cartResponse(cart domain.Cart) map[string]any {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return map[string]any{
		"user_id": cart.UserID,
		"items":   items,
		"total":   cart.Total(),
	}
}
