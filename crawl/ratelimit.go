package crawl

import (
	"context"

	"github.com/fwojciec/fictionfetch"
	"golang.org/x/time/rate"
)

var _ fictionfetch.Limiter = (*Pacer)(nil)

// Pacer enforces a global requests-per-second ceiling across workers using
// a token bucket. The chapter fetcher already delays before each request;
// the pacer keeps concurrent workers from landing those requests together.
type Pacer struct {
	l *rate.Limiter
}

// NewPacer creates a new Pacer with the specified requests per second limit
// and a burst of 1 (no bursting allowed).
func NewPacer(rps float64) *Pacer {
	return &Pacer{
		l: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Wait blocks until the rate limit allows the next request.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.l.Wait(ctx)
}
