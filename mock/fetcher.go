// Package mock provides mock implementations of fictionfetch interfaces
// for testing.
package mock

import (
	"context"

	"github.com/fwojciec/fictionfetch"
)

var _ fictionfetch.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of fictionfetch.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ fictionfetch.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of fictionfetch.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
