// Package crawl provides chapter compilation orchestration.
// It coordinates polite fetching, caching, and assembly of chapter
// content for a fiction.
package crawl

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/fictionfetch"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds concurrent chapter fetches. Chapter pages come
// from a single host, so the bound stays low and the per-request politeness
// delay does the real pacing.
const DefaultConcurrency = 2

// Compiler assembles chapter content for a fiction, fetching what the
// cache does not already hold.
type Compiler struct {
	Fetcher     fictionfetch.ChapterFetcher
	Chapters    fictionfetch.ChapterService // optional content cache
	Limiter     fictionfetch.Limiter        // optional cross-worker pacing
	Ledger      *Ledger                     // optional failed-chapter ledger
	Concurrency int
}

// Result holds the outcome of a compile operation.
type Result struct {
	Fetched int
	Cached  int
	Failed  int
	Bytes   int
}

// ProgressEvent reports progress during a compile operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	ChapterID int64
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting compile progress.
type ProgressFunc func(event ProgressEvent)

// compileResult holds the outcome of processing a single chapter.
type compileResult struct {
	position int
	content  fictionfetch.ChapterContent
	cached   bool
	err      error
}

// Compile fetches the given chapters and returns their content in input
// order. A chapter that fails to fetch is replaced by a placeholder naming
// the failure, so one bad chapter never sinks the whole compilation; the
// failure is still counted and reported through the progress callback.
func (c *Compiler) Compile(ctx context.Context, fictionSlug string, chapters []fictionfetch.ChapterSummary, progress ProgressFunc) ([]fictionfetch.ChapterContent, *Result, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan compileResult, len(chapters))

	var completed atomic.Int64
	total := len(chapters)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, summary := range chapters {
			g.Go(func() error {
				result := c.processChapter(gctx, fictionSlug, i, summary)
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in input order.
	results := make([]compileResult, len(chapters))
	res := &Result{}
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		switch {
		case result.err != nil:
			res.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					ChapterID: chapters[result.position].ID,
					Error:     result.err,
				})
			}
		default:
			if result.cached {
				res.Cached++
			} else {
				res.Fetched++
			}
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: int(completed.Load()),
					Total:     total,
					ChapterID: chapters[result.position].ID,
				})
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	contents := make([]fictionfetch.ChapterContent, len(results))
	for i, result := range results {
		contents[i] = result.content
		res.Bytes += len(result.content.ContentHTML)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return contents, res, nil
}

// processChapter resolves one chapter: cache first, then the network.
func (c *Compiler) processChapter(ctx context.Context, fictionSlug string, position int, summary fictionfetch.ChapterSummary) compileResult {
	result := compileResult{position: position}

	if c.Chapters != nil {
		if stored, err := c.Chapters.FindChapter(ctx, fictionSlug, summary.ID); err == nil {
			result.content = fictionfetch.ChapterContent{
				Title:       stored.Title,
				TextRaw:     stored.TextRaw,
				TextHTML:    stored.TextHTML,
				ContentHTML: stored.ContentHTML,
			}
			result.cached = true
			return result
		}
	}

	path := summary.Path(fictionSlug)

	if c.Ledger != nil && c.Ledger.Failed(path) {
		result.err = fictionfetch.Errorf(fictionfetch.ERETRIESEXHAUSTED, "chapter %d already failed in this run", summary.ID)
		result.content = placeholderContent(summary, result.err)
		return result
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			result.err = err
			result.content = placeholderContent(summary, err)
			return result
		}
	}

	content, err := c.Fetcher.FetchChapter(ctx, path)
	if err != nil {
		if c.Ledger != nil {
			c.Ledger.MarkFailed(path)
		}
		result.err = err
		result.content = placeholderContent(summary, err)
		return result
	}

	result.content = *content

	if c.Chapters != nil {
		// Best effort: a cache write failure does not lose the content.
		_ = c.Chapters.SaveChapter(ctx, &fictionfetch.StoredChapter{
			FictionSlug: fictionSlug,
			ChapterID:   summary.ID,
			Title:       content.Title,
			TextRaw:     content.TextRaw,
			TextHTML:    content.TextHTML,
			ContentHTML: content.ContentHTML,
			ContentHash: ComputeHash(content.ContentHTML),
			FetchedAt:   time.Now(),
		})
	}

	return result
}

// placeholderContent stands in for a chapter that could not be fetched.
func placeholderContent(summary fictionfetch.ChapterSummary, err error) fictionfetch.ChapterContent {
	text := fmt.Sprintf("[Failed to fetch chapter %d: %s]", summary.ID, fictionfetch.ErrorMessage(err))
	return fictionfetch.ChapterContent{
		Title:       summary.DisplayTitle(),
		TextRaw:     text,
		TextHTML:    text,
		ContentHTML: "<p>" + text + "</p>",
	}
}

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
