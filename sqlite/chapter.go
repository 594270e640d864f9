package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/fictionfetch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ fictionfetch.ChapterService = (*ChapterService)(nil)

// ChapterService implements fictionfetch.ChapterService using SQLite.
type ChapterService struct {
	db *DB
}

// NewChapterService creates a new ChapterService.
func NewChapterService(db *DB) *ChapterService {
	return &ChapterService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// FindChapter retrieves a cached chapter.
func (s *ChapterService) FindChapter(ctx context.Context, fictionSlug string, chapterID int64) (*fictionfetch.StoredChapter, error) {
	var chapter fictionfetch.StoredChapter
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, fiction_slug, chapter_id, title, text_raw, text_html, content_html, content_hash, fetched_at
		FROM chapters
		WHERE fiction_slug = ? AND chapter_id = ?
	`, fictionSlug, chapterID).Scan(&chapter.ID, &chapter.FictionSlug, &chapter.ChapterID,
		&chapter.Title, &chapter.TextRaw, &chapter.TextHTML, &chapter.ContentHTML,
		&chapter.ContentHash, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, fictionfetch.Errorf(fictionfetch.ENOTFOUND, "chapter not found")
	}
	if err != nil {
		return nil, err
	}

	chapter.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &chapter, nil
}

// SaveChapter inserts or replaces a cached chapter.
func (s *ChapterService) SaveChapter(ctx context.Context, chapter *fictionfetch.StoredChapter) error {
	if err := chapter.Validate(); err != nil {
		return err
	}

	if chapter.ID == "" {
		chapter.ID = uuid.New().String()
	}
	if chapter.FetchedAt.IsZero() {
		chapter.FetchedAt = time.Now().UTC()
	}
	if chapter.ContentHash == "" {
		chapter.ContentHash = hashContent(chapter.ContentHTML)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chapters (id, fiction_slug, chapter_id, title, text_raw, text_html, content_html, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (fiction_slug, chapter_id) DO UPDATE SET
			title = excluded.title,
			text_raw = excluded.text_raw,
			text_html = excluded.text_html,
			content_html = excluded.content_html,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, chapter.ID, chapter.FictionSlug, chapter.ChapterID, chapter.Title,
		chapter.TextRaw, chapter.TextHTML, chapter.ContentHTML, chapter.ContentHash,
		chapter.FetchedAt.Format(time.RFC3339))

	return err
}
