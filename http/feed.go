package http

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/fictionfetch"
)

// Ensure FeedService implements fictionfetch.ListingSource at compile time.
var _ fictionfetch.ListingSource = (*FeedService)(nil)

// FeedService lists a fiction's chapters from the site's RSS syndication
// feed. It is an alternative to scraping the listing page: the feed only
// carries recent chapters, but it is cheap and stable, which makes it a
// good source for update checks.
type FeedService struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// FeedOption configures a FeedService.
type FeedOption func(*FeedService)

// WithFeedBaseURL overrides the base URL of the syndication feed.
func WithFeedBaseURL(base string) FeedOption {
	return func(s *FeedService) {
		s.baseURL = strings.TrimSuffix(base, "/")
	}
}

// NewFeedService creates a new FeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewFeedService(client *http.Client, opts ...FeedOption) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &FeedService{
		client:    client,
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListChapters fetches and parses the syndication feed for the fiction.
// Feed order is preserved verbatim. Items whose chapter id cannot be
// determined are skipped: the feed is an auxiliary source and partial
// results beat none.
func (s *FeedService) ListChapters(ctx context.Context, fictionID string) ([]fictionfetch.ChapterSummary, error) {
	feedURL := s.baseURL + "/syndication/" + fictionID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fictionfetch.Errorf(fictionfetch.EHTTP, "HTTP %d for %s", resp.StatusCode, feedURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseFeed(body)
}

func parseFeed(body []byte) ([]fictionfetch.ChapterSummary, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fictionfetch.Errorf(fictionfetch.EINVALID, "failed to parse syndication feed: %v", err)
	}

	var chapters []fictionfetch.ChapterSummary
	for _, item := range doc.FindElements("//item") {
		id, ok := itemChapterID(item)
		if !ok {
			continue
		}

		ch := fictionfetch.ChapterSummary{ID: id}
		if el := item.SelectElement("title"); el != nil {
			ch.Title = strings.TrimSpace(el.Text())
		}
		if el := item.SelectElement("link"); el != nil {
			ch.URL = strings.TrimSpace(el.Text())
		}
		chapters = append(chapters, ch)
	}

	return chapters, nil
}

// itemChapterID extracts the numeric chapter id from an item's guid,
// falling back to the last numeric path segment of its link.
func itemChapterID(item *etree.Element) (int64, bool) {
	if el := item.SelectElement("guid"); el != nil {
		if id, ok := parseID(strings.TrimSpace(el.Text())); ok {
			return id, true
		}
	}
	if el := item.SelectElement("link"); el != nil {
		segments := strings.Split(strings.TrimSpace(el.Text()), "/")
		for i := len(segments) - 1; i >= 0; i-- {
			if id, ok := parseID(segments[i]); ok {
				return id, true
			}
		}
	}
	return 0, false
}

func parseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	var id int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		id = id*10 + int64(r-'0')
	}
	return id, true
}
