package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/fictionfetch"
)

// Ensure LoggingChapterFetcher implements fictionfetch.ChapterFetcher.
var _ fictionfetch.ChapterFetcher = (*LoggingChapterFetcher)(nil)

// LoggingChapterFetcher wraps a ChapterFetcher with debug logging.
type LoggingChapterFetcher struct {
	next   fictionfetch.ChapterFetcher
	logger *slog.Logger
}

// NewLoggingChapterFetcher creates a new LoggingChapterFetcher.
func NewLoggingChapterFetcher(next fictionfetch.ChapterFetcher, logger *slog.Logger) *LoggingChapterFetcher {
	return &LoggingChapterFetcher{next: next, logger: logger}
}

// FetchChapter delegates to the wrapped fetcher and logs the operation.
func (f *LoggingChapterFetcher) FetchChapter(ctx context.Context, chapterPath string) (content *fictionfetch.ChapterContent, err error) {
	defer func(begin time.Time) {
		title := ""
		if content != nil {
			title = content.Title
		}
		f.logger.Info("fetch chapter",
			"path", chapterPath,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchChapter(ctx, chapterPath)
}
