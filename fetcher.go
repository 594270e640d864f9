package fictionfetch

import "context"

// Fetcher retrieves raw HTML from URLs, e.g. a fiction's listing page.
type Fetcher interface {
	// Fetch issues a GET request and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Limiter paces outbound requests across workers.
type Limiter interface {
	// Wait blocks until the next request is allowed or the context is done.
	Wait(ctx context.Context) error
}
