// Package fs writes compiled chapter chunks to disk.
package fs

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/fictionfetch"
)

// Format selects the on-disk representation of an exported chunk.
type Format string

const (
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// Valid reports whether the format is one of the known values.
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatHTML, FormatMarkdown:
		return true
	}
	return false
}

// Exporter writes compiled chapter chunks as files in a directory.
// The Markdown format needs a converter; the other formats ignore it.
type Exporter struct {
	baseDir   string
	converter fictionfetch.Converter
}

// NewExporter creates a new Exporter that writes to the given base directory.
func NewExporter(baseDir string, converter fictionfetch.Converter) *Exporter {
	return &Exporter{baseDir: baseDir, converter: converter}
}

// ExportChunk writes one chunk of chapters to baseDir/<name><ext> and
// returns the full path and the number of bytes written.
func (e *Exporter) ExportChunk(name string, format Format, chapters []fictionfetch.ChapterContent) (string, int, error) {
	if !format.Valid() {
		return "", 0, fictionfetch.Errorf(fictionfetch.EINVALID, "unknown export format %q", format)
	}

	var b strings.Builder
	for _, ch := range chapters {
		switch format {
		case FormatHTML:
			writeChapterHTML(&b, &ch)
		case FormatMarkdown:
			if err := e.writeChapterMarkdown(&b, &ch); err != nil {
				return "", 0, err
			}
		default:
			WriteChapterText(&b, &ch)
		}
	}

	fullPath := filepath.Join(e.baseDir, name+format.Ext())
	if err := os.MkdirAll(e.baseDir, 0755); err != nil {
		return "", 0, err
	}
	content := b.String()
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return "", 0, err
	}

	return fullPath, len(content), nil
}

// WriteChapterText appends one chapter in plain text form: the title,
// an underline of equals signs the same width, the body, a blank line.
func WriteChapterText(b *strings.Builder, ch *fictionfetch.ChapterContent) {
	b.WriteString(ch.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", utf8.RuneCountInString(ch.Title)))
	b.WriteString("\n\n")
	b.WriteString(ch.TextRaw)
	b.WriteString("\n\n")
}

func writeChapterHTML(b *strings.Builder, ch *fictionfetch.ChapterContent) {
	b.WriteString("<h1>")
	b.WriteString(ch.Title)
	b.WriteString("</h1>\n")
	b.WriteString(ch.ContentHTML)
	b.WriteString("\n\n")
}

func (e *Exporter) writeChapterMarkdown(b *strings.Builder, ch *fictionfetch.ChapterContent) error {
	if e.converter == nil {
		return fictionfetch.Errorf(fictionfetch.EINTERNAL, "markdown export requires a converter")
	}
	md, err := e.converter.Convert(ch.ContentHTML)
	if err != nil {
		return err
	}
	b.WriteString("# ")
	b.WriteString(ch.Title)
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(md))
	b.WriteString("\n\n")
	return nil
}
