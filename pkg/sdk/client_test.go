package prodsearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

func TestSearchSendsAuthAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["user_id"] != "u1" || req["query"] != "lamp" {
			t.Errorf("request body = %v", req)
		}

		_ = json.NewEncoder(w).Encode(domain.SearchResponse{
			QueryReceived: "lamp",
			UserID:        "u1",
			Results: []domain.RankedResult{
				{Product: domain.Product{ID: 3, Title: "Lamp"}, Rank: 1},
			},
			Summary: "one lamp",
		})
	}))
	defer ts.Close()

	client := New(ts.URL, WithAPIKey("secret"))

	resp, err := client.Search(context.Background(), "u1", "lamp")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Product.ID != 3 {
		t.Errorf("results = %+v", resp.Results)
	}
	if resp.Summary != "one lamp" {
		t.Errorf("summary = %q", resp.Summary)
	}
}

func TestGetProductNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "product_not_found",
			"message": "product not found",
		})
	}))
	defer ts.Close()

	client := New(ts.URL)

	_, err := client.GetProduct(context.Background(), 404, "")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "product_not_found" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestGetProductAttributesView(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_id"); got != "u1" {
			t.Errorf("user_id = %q", got)
		}
		_ = json.NewEncoder(w).Encode(domain.Product{ID: 7, Title: "Lamp"})
	}))
	defer ts.Close()

	client := New(ts.URL)

	p, err := client.GetProduct(context.Background(), 7, "u1")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if p.ID != 7 {
		t.Errorf("product = %+v", p)
	}
}

func TestAddCartItem(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users/u1/cart/items" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Cart{
			UserID: "u1",
			Items:  []CartItem{{ProductID: 7, Quantity: 2, Price: 25}},
			Total:  50,
		})
	}))
	defer ts.Close()

	client := New(ts.URL)

	cart, err := client.AddCartItem(context.Background(), "u1", 7, 2)
	if err != nil {
		t.Fatalf("AddCartItem: %v", err)
	}
	if cart.Total != 50 || len(cart.Items) != 1 {
		t.Errorf("cart = %+v", cart)
	}
}

func TestValidationErrorMapsToBadRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "validation_failed",
			"message": "query is required",
		})
	}))
	defer ts.Close()

	client := New(ts.URL)

	_, err := client.Search(context.Background(), "u1", "")
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("err = %v, want ErrBadRequest", err)
	}
}

func TestDeleteProductNoContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	client := New(ts.URL)

	if err := client.DeleteProduct(context.Background(), 7); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
}

func TestUndecodableErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer ts.Close()

	client := New(ts.URL)

	err := client.Health(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message == "" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}
