package main

import (
	"fmt"

	"github.com/fwojciec/fictionfetch"
)

// Run executes the load command.
func (c *LoadCmd) Run(deps *Dependencies) error {
	fiction, cached, err := loadFiction(deps, c.URL, c.Refresh)
	if err != nil {
		return err
	}

	source := ""
	if cached {
		source = " (cached)"
	}
	fmt.Fprintf(deps.Stdout, "Loaded %d chapters for %s%s\n", len(fiction.Chapters), fiction.Slug, source)

	chunks := fictionfetch.ChunkChapters(fiction.Chapters, c.ChunkSize)
	for i, chunk := range chunks {
		first := chunk[0]
		last := chunk[len(chunk)-1]
		fmt.Fprintf(deps.Stdout, "  chunk %d: %d chapters, %q .. %q\n",
			i+1, len(chunk), first.DisplayTitle(), last.DisplayTitle())
	}

	return nil
}

// loadFiction returns the fiction's cached chapter listing, fetching and
// caching it when absent or when refresh is set.
func loadFiction(deps *Dependencies, fictionURL string, refresh bool) (*fictionfetch.Fiction, bool, error) {
	slug, err := fictionfetch.ParseFictionSlug(fictionURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fictionfetch.ErrorMessage(err))
		return nil, false, err
	}

	if !refresh {
		if fiction, err := deps.Fictions.FindFictionBySlug(deps.Ctx, slug); err == nil {
			return fiction, true, nil
		}
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, fictionURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fictionfetch.ErrorMessage(err))
		return nil, false, err
	}

	chapters, err := deps.Extractor.ExtractChapters(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fictionfetch.ErrorMessage(err))
		return nil, false, err
	}

	fiction := &fictionfetch.Fiction{Slug: slug, Chapters: chapters}
	if err := deps.Fictions.SaveFiction(deps.Ctx, fiction); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fictionfetch.ErrorMessage(err))
		return nil, false, err
	}

	return fiction, false, nil
}
