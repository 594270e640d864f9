package http

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/fictionfetch"
)

// DefaultBaseURL resolves site-relative chapter paths.
const DefaultBaseURL = "https://www.royalroad.com"

// Default politeness parameters: a uniformly random pre-request delay in
// [DefaultMinDelay, DefaultMaxDelay], and DefaultRetries extra attempts on
// top of the first when the site answers 429 or 503.
const (
	DefaultMinDelay = 2 * time.Second
	DefaultMaxDelay = 4 * time.Second
	DefaultRetries  = 2
)

// SleepFunc blocks for the given duration or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Ensure ChapterFetcher implements fictionfetch.ChapterFetcher at compile time.
var _ fictionfetch.ChapterFetcher = (*ChapterFetcher)(nil)

// ChapterFetcher fetches chapter pages politely: every request is preceded
// by a randomized delay, and rate-limit responses (429) and unavailability
// (503) back off with doubled delay bounds for a bounded number of retries.
// Any other error status fails immediately.
type ChapterFetcher struct {
	client    *http.Client
	parser    fictionfetch.ChapterParser
	baseURL   string
	userAgent string
	minDelay  time.Duration
	maxDelay  time.Duration
	retries   int
	sleep     SleepFunc
}

// ChapterOption configures a ChapterFetcher.
type ChapterOption func(*ChapterFetcher)

// WithChapterClient supplies a custom HTTP client. Defaults to a client
// with DefaultFetchTimeout.
func WithChapterClient(client *http.Client) ChapterOption {
	return func(f *ChapterFetcher) {
		f.client = client
	}
}

// WithBaseURL overrides the base URL used to resolve site-relative paths.
func WithBaseURL(base string) ChapterOption {
	return func(f *ChapterFetcher) {
		f.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithDelayBounds sets the politeness delay bounds. A negative minimum is
// clamped to zero and a maximum below the minimum is raised to it.
func WithDelayBounds(minDelay, maxDelay time.Duration) ChapterOption {
	return func(f *ChapterFetcher) {
		f.minDelay = minDelay
		f.maxDelay = maxDelay
	}
}

// WithRetries sets how many extra attempts follow a 429/503 response.
func WithRetries(n int) ChapterOption {
	return func(f *ChapterFetcher) {
		if n >= 0 {
			f.retries = n
		}
	}
}

// WithChapterUserAgent overrides the User-Agent header.
func WithChapterUserAgent(ua string) ChapterOption {
	return func(f *ChapterFetcher) {
		f.userAgent = ua
	}
}

// WithSleepFunc replaces the sleep implementation.
// This is useful for testing without waiting for real delays.
func WithSleepFunc(sleep SleepFunc) ChapterOption {
	return func(f *ChapterFetcher) {
		f.sleep = sleep
	}
}

// NewChapterFetcher creates a new ChapterFetcher.
// If parser is nil the fetcher cannot parse responses; callers wire a
// goquery.ChapterParser in practice.
func NewChapterFetcher(parser fictionfetch.ChapterParser, opts ...ChapterOption) *ChapterFetcher {
	f := &ChapterFetcher{
		parser:    parser,
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		minDelay:  DefaultMinDelay,
		maxDelay:  DefaultMaxDelay,
		retries:   DefaultRetries,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return f
}

// FetchChapter fetches one chapter page and returns its parsed content.
//
// Retries are reserved exclusively for 429/503: other error statuses fail
// with EHTTP on the first sight, and a missing content container fails with
// ECONTENTNOTFOUND without another request. When every attempt lands on
// 429/503 the call fails with ERETRIESEXHAUSTED carrying the last status.
func (f *ChapterFetcher) FetchChapter(ctx context.Context, chapterPath string) (*fictionfetch.ChapterContent, error) {
	url := chapterPath
	if strings.HasPrefix(chapterPath, "/") {
		url = f.baseURL + chapterPath
	}

	lastStatus := 0
	for attempt := 0; attempt <= f.retries; attempt++ {
		if err := f.politeSleep(ctx, f.minDelay, f.maxDelay); err != nil {
			return nil, err
		}

		status, body, err := f.get(ctx, url)
		if err != nil {
			return nil, err
		}

		if status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable {
			lastStatus = status
			if err := f.politeSleep(ctx, 2*f.minDelay, 2*f.maxDelay); err != nil {
				return nil, err
			}
			continue
		}

		if status < 200 || status > 299 {
			return nil, fictionfetch.Errorf(fictionfetch.EHTTP, "HTTP %d for %s", status, url)
		}

		return f.parser.ParseChapter(body)
	}

	return nil, fictionfetch.Errorf(fictionfetch.ERETRIESEXHAUSTED, "gave up on %s after %d attempts, last status HTTP %d", url, f.retries+1, lastStatus)
}

func (f *ChapterFetcher) get(ctx context.Context, url string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", err
	}

	return resp.StatusCode, string(body), nil
}

// politeSleep sleeps a uniformly random duration within the clamped bounds.
func (f *ChapterFetcher) politeSleep(ctx context.Context, minDelay, maxDelay time.Duration) error {
	if minDelay < 0 {
		minDelay = 0
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	d := minDelay
	if span := maxDelay - minDelay; span > 0 {
		d += time.Duration(rand.Float64() * float64(span))
	}

	return f.sleep(ctx, d)
}

// sleepContext waits for d or returns early when the context is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
