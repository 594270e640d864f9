package fictionfetch

import (
	"context"
	"time"
)

// Fiction is a cached chapter listing for one fiction, keyed by the
// "<id>/<slug>" identifier produced by ParseFictionSlug.
type Fiction struct {
	Slug      string           `json:"slug"`
	FetchedAt time.Time        `json:"fetchedAt"`
	Chapters  []ChapterSummary `json:"chapters"`
}

// Validate returns an error if the fiction contains invalid fields.
func (f *Fiction) Validate() error {
	if f.Slug == "" {
		return Errorf(EINVALID, "fiction slug required")
	}
	if len(f.Chapters) == 0 {
		return Errorf(EINVALID, "fiction chapter list required")
	}
	return nil
}

// FictionService persists fiction chapter listings.
type FictionService interface {
	// FindFictionBySlug retrieves a cached listing.
	// Returns ENOTFOUND if the fiction has not been cached.
	FindFictionBySlug(ctx context.Context, slug string) (*Fiction, error)

	// SaveFiction inserts or replaces a cached listing.
	SaveFiction(ctx context.Context, fiction *Fiction) error
}
