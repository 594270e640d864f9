package mock

import (
	"context"

	"github.com/fwojciec/fictionfetch"
)

var _ fictionfetch.ChapterFetcher = (*ChapterFetcher)(nil)

// ChapterFetcher is a mock implementation of fictionfetch.ChapterFetcher.
type ChapterFetcher struct {
	FetchChapterFn func(ctx context.Context, chapterPath string) (*fictionfetch.ChapterContent, error)
}

func (f *ChapterFetcher) FetchChapter(ctx context.Context, chapterPath string) (*fictionfetch.ChapterContent, error) {
	return f.FetchChapterFn(ctx, chapterPath)
}

var _ fictionfetch.ChapterParser = (*ChapterParser)(nil)

// ChapterParser is a mock implementation of fictionfetch.ChapterParser.
type ChapterParser struct {
	ParseChapterFn func(html string) (*fictionfetch.ChapterContent, error)
}

func (p *ChapterParser) ParseChapter(html string) (*fictionfetch.ChapterContent, error) {
	return p.ParseChapterFn(html)
}

var _ fictionfetch.ChapterService = (*ChapterService)(nil)

// ChapterService is a mock implementation of fictionfetch.ChapterService.
type ChapterService struct {
	FindChapterFn func(ctx context.Context, fictionSlug string, chapterID int64) (*fictionfetch.StoredChapter, error)
	SaveChapterFn func(ctx context.Context, chapter *fictionfetch.StoredChapter) error
}

func (s *ChapterService) FindChapter(ctx context.Context, fictionSlug string, chapterID int64) (*fictionfetch.StoredChapter, error) {
	return s.FindChapterFn(ctx, fictionSlug, chapterID)
}

func (s *ChapterService) SaveChapter(ctx context.Context, chapter *fictionfetch.StoredChapter) error {
	return s.SaveChapterFn(ctx, chapter)
}
