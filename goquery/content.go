package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/fictionfetch"
)

// Chapter body container selectors, most specific first.
const (
	contentSelector         = ".chapter-inner.chapter-content"
	contentFallbackSelector = ".chapter-content"
)

// Ensure ChapterParser implements fictionfetch.ChapterParser at compile time.
var _ fictionfetch.ChapterParser = (*ChapterParser)(nil)

// ChapterParser extracts chapter content from a fetched chapter page:
// the title, the plain text body, the escaped bracket-bolded body, and the
// sanitized HTML body.
type ChapterParser struct {
	sanitizer fictionfetch.Sanitizer
}

// NewChapterParser creates a new ChapterParser.
// If sanitizer is nil, a default Sanitizer is used.
func NewChapterParser(sanitizer fictionfetch.Sanitizer) *ChapterParser {
	if sanitizer == nil {
		sanitizer = NewSanitizer()
	}
	return &ChapterParser{sanitizer: sanitizer}
}

// ParseChapter parses a chapter page and derives the content record.
// Returns ECONTENTNOTFOUND if no chapter body container exists.
func (p *ChapterParser) ParseChapter(htmlDoc string) (*fictionfetch.ChapterContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDoc))
	if err != nil {
		return nil, fictionfetch.Errorf(fictionfetch.EINVALID, "failed to parse chapter page: %v", err)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = "Untitled"
	}

	container := doc.Find(contentSelector).First()
	if container.Length() == 0 {
		container = doc.Find(contentFallbackSelector).First()
	}
	if container.Length() == 0 {
		return nil, fictionfetch.Errorf(fictionfetch.ECONTENTNOTFOUND, "could not find chapter content container on the page")
	}

	textRaw := blockText(container)

	inner, err := container.Html()
	if err != nil {
		return nil, fictionfetch.Errorf(fictionfetch.EINTERNAL, "failed to serialize chapter body: %v", err)
	}
	contentHTML, err := p.sanitizer.Sanitize(inner)
	if err != nil {
		return nil, err
	}

	return &fictionfetch.ChapterContent{
		Title:       title,
		TextRaw:     textRaw,
		TextHTML:    fictionfetch.BoldBrackets(textRaw),
		ContentHTML: contentHTML,
	}, nil
}

// blockText returns the selection's text content with each text node
// trimmed and the non-empty ones joined by newlines, collapsing block-level
// structure to line breaks.
func blockText(sel *goquery.Selection) string {
	var lines []string
	for _, node := range sel.Nodes {
		for _, text := range collectTextNodes(node) {
			if trimmed := strings.TrimSpace(text.Data); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
	}
	return strings.Join(lines, "\n")
}
