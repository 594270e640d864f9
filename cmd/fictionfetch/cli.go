package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/fictionfetch"
	"github.com/fwojciec/fictionfetch/crawl"
	"github.com/fwojciec/fictionfetch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB

	Fictions  fictionfetch.FictionService
	Chapters  fictionfetch.ChapterService
	Fetcher   fictionfetch.Fetcher
	Extractor fictionfetch.ListingExtractor
	Converter fictionfetch.Converter
	Compiler  *crawl.Compiler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log HTTP operations to stderr"`

	Load    LoadCmd    `cmd:"" help:"Load a fiction's chapter listing into the cache"`
	Compile CompileCmd `cmd:"" help:"Fetch a set of chapters and export them to a file"`
}

// LoadCmd is the "load" subcommand.
type LoadCmd struct {
	URL       string `arg:"" help:"Fiction overview URL"`
	Refresh   bool   `short:"r" help:"Refetch the listing even if cached"`
	ChunkSize int    `short:"s" default:"10" help:"Chapters per chunk in the listing output"`
}

// CompileCmd is the "compile" subcommand.
type CompileCmd struct {
	URL         string        `arg:"" help:"Fiction overview URL"`
	Chunk       int           `short:"n" help:"Compile only this chunk (1-based; 0 compiles everything)"`
	ChunkSize   int           `short:"s" default:"10" help:"Chapters per chunk"`
	Format      string        `short:"f" default:"text" enum:"text,html,markdown" help:"Export format"`
	Out         string        `short:"o" default:"." help:"Output directory"`
	Concurrency int           `short:"c" default:"2" help:"Concurrent fetch limit"`
	MinDelay    time.Duration `default:"2s" help:"Minimum politeness delay before each request"`
	MaxDelay    time.Duration `default:"4s" help:"Maximum politeness delay before each request"`
	Retries     int           `default:"2" help:"Extra attempts after 429/503 responses"`
}
