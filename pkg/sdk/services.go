package prodsearch

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
)

// Re-exported domain types used in API payloads.
type (
	Product          = domain.Product
	Category         = domain.Category
	CartItem         = domain.CartItem
	RankedResult     = domain.RankedResult
	SearchResponse   = domain.SearchResponse
	InteractionEvent = domain.InteractionEvent
)

// Cart is a user's cart with its server-computed total.
type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
	Total  float64    `json:"total"`
}

type listPayload[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Search runs the search pipeline for one query.
func (c *Client) Search(ctx context.Context, userID, query string) (SearchResponse, error) {
	var resp SearchResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/search", nil,
		map[string]string{"user_id": userID, "query": query}, &resp)
	return resp, err
}

// GetProduct fetches one product. A non-empty userID attributes the view
// to that user's interaction history.
func (c *Client) GetProduct(ctx context.Context, id int, userID string) (Product, error) {
	q := url.Values{}
	if userID != "" {
		q.Set("user_id", userID)
	}
	var p Product
	err := c.do(ctx, http.MethodGet, "/api/v1/products/"+strconv.Itoa(id), q, nil, &p)
	return p, err
}

// ListProducts returns a catalog page, optionally restricted to one
// category. limit <= 0 uses the server default.
func (c *Client) ListProducts(ctx context.Context, category string, offset, limit int) ([]Product, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp listPayload[Product]
	err := c.do(ctx, http.MethodGet, "/api/v1/products/", q, nil, &resp)
	return resp.Items, err
}

// UpsertProduct creates or replaces a product. The ID is taken from p.
func (c *Client) UpsertProduct(ctx context.Context, p Product) (Product, error) {
	var out Product
	err := c.do(ctx, http.MethodPut, "/api/v1/products/"+strconv.Itoa(p.ID), nil, p, &out)
	return out, err
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/products/"+strconv.Itoa(id), nil, nil, nil)
}

// Categories returns the canonical category master list.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var resp listPayload[Category]
	err := c.do(ctx, http.MethodGet, "/api/v1/categories", nil, nil, &resp)
	return resp.Items, err
}

// GetCart returns a user's current cart.
func (c *Client) GetCart(ctx context.Context, userID string) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodGet, "/api/v1/users/"+url.PathEscape(userID)+"/cart/", nil, nil, &cart)
	return cart, err
}

// AddCartItem adds quantity units of a product to a user's cart and
// returns the updated cart.
func (c *Client) AddCartItem(ctx context.Context, userID string, productID, quantity int) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodPost, "/api/v1/users/"+url.PathEscape(userID)+"/cart/items", nil,
		map[string]int{"product_id": productID, "quantity": quantity}, &cart)
	return cart, err
}

// RemoveCartItem deletes one product line from a user's cart and returns
// the updated cart.
func (c *Client) RemoveCartItem(ctx context.Context, userID string, productID int) (Cart, error) {
	var cart Cart
	err := c.do(ctx, http.MethodDelete,
		"/api/v1/users/"+url.PathEscape(userID)+"/cart/items/"+strconv.Itoa(productID), nil, nil, &cart)
	return cart, err
}

// ClearCart empties a user's cart.
func (c *Client) ClearCart(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/users/"+url.PathEscape(userID)+"/cart/", nil, nil, nil)
}

// History returns a user's recent interaction events, newest first.
// limit <= 0 uses the server default.
func (c *Client) History(ctx context.Context, userID string, limit int) ([]InteractionEvent, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp listPayload[InteractionEvent]
	err := c.do(ctx, http.MethodGet, "/api/v1/users/"+url.PathEscape(userID)+"/history", q, nil, &resp)
	return resp.Items, err
}

// Health reports whether the API considers itself healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}
