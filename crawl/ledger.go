package crawl

import (
	"sync"

	"github.com/fwojciec/fictionfetch/bloom"
)

// Ledger configuration.
const (
	// ledgerExpectedURLs is the expected number of chapter URLs for Bloom filter sizing.
	ledgerExpectedURLs = 10000
	// ledgerFalsePositiveRate is the acceptable false positive rate.
	ledgerFalsePositiveRate = 0.01
)

// Ledger remembers chapter URLs that failed during a run, backed by a Bloom
// filter. A chapter that reappears in the input after failing is skipped
// instead of hammering the site again. False positives are possible but only
// cost a skipped fetch, never a wrong result.
// It is safe for concurrent use by multiple goroutines.
type Ledger struct {
	mu     sync.Mutex
	failed *bloom.Filter
}

// NewLedger creates a Ledger sized for a typical fiction's chapter count.
func NewLedger() *Ledger {
	return &Ledger{
		failed: bloom.NewFilter(ledgerExpectedURLs, ledgerFalsePositiveRate),
	}
}

// MarkFailed records that fetching the URL failed.
func (l *Ledger) MarkFailed(url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failed.Add(url)
}

// Failed returns true if the URL has failed earlier in this run.
func (l *Ledger) Failed(url string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failed.Test(url)
}
