package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/fictionfetch"
)

// Compile-time interface verification.
var _ fictionfetch.FictionService = (*FictionService)(nil)

// FictionService implements fictionfetch.FictionService using SQLite.
// The chapter listing is stored as a single JSON document so that listing
// entries round-trip byte-for-byte, including fields this program does not
// model.
type FictionService struct {
	db *DB
}

// NewFictionService creates a new FictionService.
func NewFictionService(db *DB) *FictionService {
	return &FictionService{db: db}
}

// FindFictionBySlug retrieves a cached listing.
func (s *FictionService) FindFictionBySlug(ctx context.Context, slug string) (*fictionfetch.Fiction, error) {
	var fiction fictionfetch.Fiction
	var chaptersJSON, fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT slug, chapters_json, fetched_at
		FROM fictions
		WHERE slug = ?
	`, slug).Scan(&fiction.Slug, &chaptersJSON, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, fictionfetch.Errorf(fictionfetch.ENOTFOUND, "fiction not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(chaptersJSON), &fiction.Chapters); err != nil {
		return nil, fmt.Errorf("failed to decode chapters: %w", err)
	}

	fiction.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &fiction, nil
}

// SaveFiction inserts or replaces a cached listing.
func (s *FictionService) SaveFiction(ctx context.Context, fiction *fictionfetch.Fiction) error {
	if err := fiction.Validate(); err != nil {
		return err
	}

	if fiction.FetchedAt.IsZero() {
		fiction.FetchedAt = time.Now().UTC()
	}

	chaptersJSON, err := json.Marshal(fiction.Chapters)
	if err != nil {
		return fmt.Errorf("failed to encode chapters: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO fictions (slug, chapters_json, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			chapters_json = excluded.chapters_json,
			fetched_at = excluded.fetched_at
	`, fiction.Slug, string(chaptersJSON), fiction.FetchedAt.Format(time.RFC3339))

	return err
}
