package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/fictionfetch"
	"github.com/fwojciec/fictionfetch/crawl"
	"github.com/fwojciec/fictionfetch/fs"
)

// Run executes the compile command.
func (c *CompileCmd) Run(deps *Dependencies) error {
	fiction, _, err := loadFiction(deps, c.URL, false)
	if err != nil {
		return err
	}

	chapters := fiction.Chapters
	chunkLabel := ""
	if c.Chunk > 0 {
		chunks := fictionfetch.ChunkChapters(chapters, c.ChunkSize)
		if c.Chunk > len(chunks) {
			err := fictionfetch.Errorf(fictionfetch.EINVALID, "chunk %d out of range: the fiction has %d chunks", c.Chunk, len(chunks))
			fmt.Fprintf(deps.Stderr, "error: %s\n", fictionfetch.ErrorMessage(err))
			return err
		}
		chapters = chunks[c.Chunk-1]
		chunkLabel = fmt.Sprintf("_%03d", c.Chunk)
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Compiling %d chapters\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "\r  [%d/%d]", event.Completed, event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip chapter %d: %v\n", event.ChapterID, event.Error)
		case crawl.ProgressFinished:
			fmt.Fprintln(deps.Stdout)
		}
	}

	contents, result, err := deps.Compiler.Compile(deps.Ctx, fiction.Slug, chapters, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error compiling: %v\n", err)
		return err
	}

	exporter := fs.NewExporter(c.Out, deps.Converter)
	path, size, err := exporter.ExportChunk(outputName(fiction.Slug)+chunkLabel, fs.Format(c.Format), contents)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fictionfetch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s (%s; %d fetched, %d cached, %d failed)\n",
		path, crawl.FormatBytes(size), result.Fetched, result.Cached, result.Failed)

	return nil
}

// outputName derives a file base name from the "<id>/<slug>" identifier.
func outputName(slug string) string {
	if i := strings.Index(slug, "/"); i != -1 && i+1 < len(slug) {
		return slug[i+1:]
	}
	return slug
}
