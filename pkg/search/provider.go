package search

import (
	"context"
	"time"
)

// Result is a single raw search hit as returned by the provider
type Result struct {
	Title       string
	URL         string
	Content     string
	Score       float64
	PublishedAt *time.Time
}

// Provider defines the contract for any web search backend
type Provider interface {
	// Search runs a single query. The context carries the per-query deadline.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)

	// Available reports whether the provider is configured with credentials.
	Available() bool
}
