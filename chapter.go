package fictionfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ChapterSummary is one entry of the chapter array embedded in a fiction's
// listing page. The site defines the order, and it is preserved verbatim.
type ChapterSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`

	// Raw is the original JSON object for this entry. Fields beyond the
	// three above pass through opaquely, byte-for-byte.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and retains the original object.
func (c *ChapterSummary) UnmarshalJSON(data []byte) error {
	type alias ChapterSummary
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = ChapterSummary(a)
	c.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON emits the original object when available so that unknown
// fields survive a cache round trip.
func (c ChapterSummary) MarshalJSON() ([]byte, error) {
	if len(c.Raw) > 0 {
		return c.Raw, nil
	}
	type alias ChapterSummary
	return json.Marshal(alias(c))
}

// DisplayTitle returns the chapter title, or a generated one when the
// listing entry had none.
func (c *ChapterSummary) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return fmt.Sprintf("Chapter %d", c.ID)
}

// Path returns the site-relative chapter path, deriving one from the
// fiction slug when the listing entry carried no URL.
func (c *ChapterSummary) Path(fictionSlug string) string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("/fiction/%s/chapter/%d", fictionSlug, c.ID)
}

// ChapterContent is the result of fetching and transforming one chapter.
// It is computed once per fetch and never mutated afterwards.
type ChapterContent struct {
	// Title is the chapter heading (h1, falling back to the document title).
	Title string `json:"title"`

	// TextRaw is the chapter body as plain text, block-level breaks
	// collapsed to newlines.
	TextRaw string `json:"textRaw"`

	// TextHTML is TextRaw escaped for HTML with bracket spans bolded.
	TextHTML string `json:"textHtml"`

	// ContentHTML is the sanitized body fragment, structure preserved.
	ContentHTML string `json:"contentHtml"`
}

// StoredChapter is a cached chapter content record.
type StoredChapter struct {
	ID          string    `json:"id"`
	FictionSlug string    `json:"fictionSlug"`
	ChapterID   int64     `json:"chapterId"`
	Title       string    `json:"title"`
	TextRaw     string    `json:"textRaw"`
	TextHTML    string    `json:"textHtml"`
	ContentHTML string    `json:"contentHtml"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (s *StoredChapter) Validate() error {
	if s.FictionSlug == "" {
		return Errorf(EINVALID, "chapter fiction slug required")
	}
	if s.ChapterID <= 0 {
		return Errorf(EINVALID, "chapter ID required")
	}
	return nil
}

// ListingExtractor extracts the embedded chapter array from a fiction
// listing page.
type ListingExtractor interface {
	// ExtractChapters locates and parses the chapter array in the HTML
	// document. Order follows the document.
	ExtractChapters(html string) ([]ChapterSummary, error)
}

// ListingSource lists a fiction's chapters from an alternative source, such
// as the site's RSS syndication feed.
type ListingSource interface {
	ListChapters(ctx context.Context, fictionID string) ([]ChapterSummary, error)
}

// ChapterParser extracts chapter content from a fetched chapter page.
type ChapterParser interface {
	// ParseChapter locates the title and the chapter body container and
	// derives the three body representations.
	// Returns ECONTENTNOTFOUND if no body container exists.
	ParseChapter(html string) (*ChapterContent, error)
}

// ChapterFetcher retrieves a single chapter politely.
// Implementations hide delay, backoff, and retry policy.
type ChapterFetcher interface {
	// FetchChapter fetches the chapter at a site-relative path or absolute
	// URL and returns its parsed content.
	FetchChapter(ctx context.Context, chapterPath string) (*ChapterContent, error)
}

// Sanitizer reduces an HTML fragment to allow-listed markup.
type Sanitizer interface {
	// Sanitize returns the fragment's inner HTML with disallowed tags
	// unwrapped, disallowed attributes dropped, and script/style content
	// discarded entirely.
	Sanitize(fragment string) (string, error)
}

// ChapterService persists fetched chapter content.
type ChapterService interface {
	// FindChapter retrieves a cached chapter.
	// Returns ENOTFOUND if the chapter has not been cached.
	FindChapter(ctx context.Context, fictionSlug string, chapterID int64) (*StoredChapter, error)

	// SaveChapter inserts or replaces a cached chapter.
	SaveChapter(ctx context.Context, chapter *StoredChapter) error
}
