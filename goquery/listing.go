// Package goquery provides HTML-based implementations of the fictionfetch
// extraction and sanitization interfaces.
package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/fictionfetch"
)

// DefaultChapterVariable is the script variable holding the chapter array on
// Royal Road listing pages.
const DefaultChapterVariable = "window.chapters"

// Ensure ListingExtractor implements fictionfetch.ListingExtractor at compile time.
var _ fictionfetch.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor extracts the chapter array embedded in a fiction listing
// page as a JavaScript assignment like:
//
//	window.chapters = [ ... ];
type ListingExtractor struct {
	variable string
}

// ListingOption configures a ListingExtractor.
type ListingOption func(*ListingExtractor)

// WithVariable overrides the script variable to search for.
// Defaults to DefaultChapterVariable.
func WithVariable(name string) ListingOption {
	return func(e *ListingExtractor) {
		e.variable = name
	}
}

// NewListingExtractor creates a new ListingExtractor.
func NewListingExtractor(opts ...ListingOption) *ListingExtractor {
	e := &ListingExtractor{variable: DefaultChapterVariable}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractChapters locates the chapter array and parses it.
//
// The first inline script block containing the variable is preferred; when no
// script block contains it the whole document is scanned, which also covers
// documents passed in without markup.
func (e *ListingExtractor) ExtractChapters(htmlDoc string) ([]fictionfetch.ChapterSummary, error) {
	target := ""

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDoc)); err == nil {
		doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if text := sel.Text(); strings.Contains(text, e.variable) {
				target = text
				return false
			}
			return true
		})
	}

	if target == "" {
		target = htmlDoc
		if !strings.Contains(target, e.variable) {
			return nil, fictionfetch.Errorf(fictionfetch.EVARIABLENOTFOUND, "could not find %q in the page", e.variable)
		}
	}

	span, err := extractJSArray(target, e.variable)
	if err != nil {
		return nil, err
	}

	return parseChapterArray(span)
}

// extractJSArray returns the textual span of the array assigned to varName
// using bracket-depth matching.
//
// The scan is a pure matching scan over bracket characters: brackets inside
// string literals are not skipped, so a title containing "[draft]" can
// truncate the span. Known limitation, kept for parity with the site data
// observed so far.
func extractJSArray(text, varName string) (string, error) {
	idx := strings.Index(text, varName)
	if idx == -1 {
		return "", fictionfetch.Errorf(fictionfetch.EVARIABLENOTFOUND, "could not find %q in the page", varName)
	}

	off := strings.IndexByte(text[idx:], '[')
	if off == -1 {
		return "", fictionfetch.Errorf(fictionfetch.EMALFORMEDARRAY, "could not locate %q after %q", "[", varName)
	}
	start := idx + off

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", fictionfetch.Errorf(fictionfetch.EMALFORMEDARRAY, "could not bracket-match the array for %q", varName)
}

// parseChapterArray parses the captured span as JSON and validates that
// every entry carries an id. Entry order is preserved.
func parseChapterArray(span string) ([]fictionfetch.ChapterSummary, error) {
	var value any
	if err := json.Unmarshal([]byte(span), &value); err != nil {
		return nil, fictionfetch.Errorf(fictionfetch.EARRAYJSON, "chapter array is not valid JSON: %v", err)
	}
	if _, ok := value.([]any); !ok {
		return nil, fictionfetch.Errorf(fictionfetch.ENOTALIST, "chapter variable did not parse into a list")
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(span), &entries); err != nil {
		return nil, fictionfetch.Errorf(fictionfetch.EARRAYJSON, "chapter array is not valid JSON: %v", err)
	}

	chapters := make([]fictionfetch.ChapterSummary, 0, len(entries))
	for _, entry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil {
			return nil, fictionfetch.Errorf(fictionfetch.EARRAYJSON, "chapter entry is not an object: %v", err)
		}
		if _, ok := fields["id"]; !ok {
			return nil, fictionfetch.Errorf(fictionfetch.EMISSINGID, "a chapter entry is missing an id")
		}

		var ch fictionfetch.ChapterSummary
		if err := json.Unmarshal(entry, &ch); err != nil {
			return nil, fictionfetch.Errorf(fictionfetch.EARRAYJSON, "chapter entry has malformed fields: %v", err)
		}
		chapters = append(chapters, ch)
	}

	return chapters, nil
}
