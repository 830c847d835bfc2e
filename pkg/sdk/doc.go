// Package prodsearch is the Go client for the product search API.
//
// Basic usage:
//
//	client := prodsearch.New("http://localhost:8080", prodsearch.WithAPIKey("secret"))
//	resp, err := client.Search(ctx, "u1", "cheap gaming laptop")
//
// Errors returned by the API are mapped to sentinel errors; use errors.Is
// to check, and errors.As with *APIError for the raw status and code.
package prodsearch
