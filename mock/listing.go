package mock

import (
	"context"

	"github.com/fwojciec/fictionfetch"
)

var _ fictionfetch.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of fictionfetch.ListingExtractor.
type ListingExtractor struct {
	ExtractChaptersFn func(html string) ([]fictionfetch.ChapterSummary, error)
}

func (e *ListingExtractor) ExtractChapters(html string) ([]fictionfetch.ChapterSummary, error) {
	return e.ExtractChaptersFn(html)
}

var _ fictionfetch.ListingSource = (*ListingSource)(nil)

// ListingSource is a mock implementation of fictionfetch.ListingSource.
type ListingSource struct {
	ListChaptersFn func(ctx context.Context, fictionID string) ([]fictionfetch.ChapterSummary, error)
}

func (s *ListingSource) ListChapters(ctx context.Context, fictionID string) ([]fictionfetch.ChapterSummary, error) {
	return s.ListChaptersFn(ctx, fictionID)
}
