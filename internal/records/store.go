// Package records persists ClipRecord and UploadRecord in SQLite. Updates are
// by id with last-write-wins semantics; no cross-record transactions. Callers
// that run concurrent pipelines for the same clip id get whichever write
// lands last.
package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"shortsmith/internal/types"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

type Store struct {
	db *sql.DB
}

// Open connects to the database at path, creating directories and applying the
// schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applySchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS clips (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	source_url TEXT NOT NULL,
	source_title TEXT NOT NULL DEFAULT '',
	video_duration_seconds INTEGER NOT NULL DEFAULT 0,
	start_seconds REAL NOT NULL,
	end_seconds REAL NOT NULL,
	caption_text TEXT NOT NULL DEFAULT '',
	artifact_path TEXT NOT NULL DEFAULT '',
	ai_hook TEXT NOT NULL DEFAULT '',
	ai_title TEXT NOT NULL DEFAULT '',
	ai_description TEXT NOT NULL DEFAULT '',
	ai_tags TEXT NOT NULL DEFAULT '[]',
	error TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS uploads (
	id TEXT PRIMARY KEY,
	clip_id TEXT NOT NULL,
	status TEXT NOT NULL,
	remote_video_id TEXT NOT NULL DEFAULT '',
	remote_url TEXT NOT NULL DEFAULT '',
	error TEXT NOT NULL DEFAULT '',
	published_at TIMESTAMP,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_uploads_clip_id ON uploads(clip_id);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// CreateClip inserts rec as-is.
func (s *Store) CreateClip(ctx context.Context, rec types.ClipRecord) error {
	tags, err := json.Marshal(tagsOrEmpty(rec.AITags))
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO clips (id, status, source_url, source_title, video_duration_seconds,
	start_seconds, end_seconds, caption_text, artifact_path,
	ai_hook, ai_title, ai_description, ai_tags, error, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Status, rec.SourceURL, rec.SourceTitle, rec.VideoDuration,
		rec.StartSeconds, rec.EndSeconds, rec.CaptionText, rec.ArtifactPath,
		rec.AIHook, rec.AITitle, rec.AIDescription, string(tags), rec.Error,
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert clip: %w", err)
	}
	return nil
}

// UpdateClip overwrites the mutable fields of the clip row (last write wins).
func (s *Store) UpdateClip(ctx context.Context, rec types.ClipRecord) error {
	tags, err := json.Marshal(tagsOrEmpty(rec.AITags))
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE clips SET status = ?, source_title = ?, video_duration_seconds = ?,
	caption_text = ?, artifact_path = ?, ai_hook = ?, ai_title = ?,
	ai_description = ?, ai_tags = ?, error = ?, updated_at = ?
WHERE id = ?`,
		rec.Status, rec.SourceTitle, rec.VideoDuration,
		rec.CaptionText, rec.ArtifactPath, rec.AIHook, rec.AITitle,
		rec.AIDescription, string(tags), rec.Error, time.Now().UTC(),
		rec.ID)
	if err != nil {
		return fmt.Errorf("update clip: %w", err)
	}
	return requireRow(res)
}

// GetClip loads a clip by id.
func (s *Store) GetClip(ctx context.Context, id string) (types.ClipRecord, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, status, source_url, source_title, video_duration_seconds,
	start_seconds, end_seconds, caption_text, artifact_path,
	ai_hook, ai_title, ai_description, ai_tags, error, created_at, updated_at
FROM clips WHERE id = ?`, id)

	var rec types.ClipRecord
	var tags string
	err := row.Scan(&rec.ID, &rec.Status, &rec.SourceURL, &rec.SourceTitle,
		&rec.VideoDuration, &rec.StartSeconds, &rec.EndSeconds, &rec.CaptionText,
		&rec.ArtifactPath, &rec.AIHook, &rec.AITitle, &rec.AIDescription,
		&tags, &rec.Error, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ClipRecord{}, fmt.Errorf("clip %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return types.ClipRecord{}, fmt.Errorf("scan clip: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &rec.AITags); err != nil {
		return types.ClipRecord{}, fmt.Errorf("decode clip tags: %w", err)
	}
	return rec, nil
}

// CreateUpload inserts rec as-is.
func (s *Store) CreateUpload(ctx context.Context, rec types.UploadRecord) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO uploads (id, clip_id, status, remote_video_id, remote_url, error, published_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ClipID, rec.Status, rec.RemoteVideoID, rec.RemoteURL,
		rec.Error, nullableTime(rec.PublishedAt), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert upload: %w", err)
	}
	return nil
}

// UpdateUpload overwrites the mutable fields of the upload row.
func (s *Store) UpdateUpload(ctx context.Context, rec types.UploadRecord) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE uploads SET status = ?, remote_video_id = ?, remote_url = ?, error = ?, published_at = ?
WHERE id = ?`,
		rec.Status, rec.RemoteVideoID, rec.RemoteURL, rec.Error,
		nullableTime(rec.PublishedAt), rec.ID)
	if err != nil {
		return fmt.Errorf("update upload: %w", err)
	}
	return requireRow(res)
}

// GetUpload loads an upload by id.
func (s *Store) GetUpload(ctx context.Context, id string) (types.UploadRecord, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, clip_id, status, remote_video_id, remote_url, error, published_at, created_at
FROM uploads WHERE id = ?`, id)

	var rec types.UploadRecord
	var published sql.NullTime
	err := row.Scan(&rec.ID, &rec.ClipID, &rec.Status, &rec.RemoteVideoID,
		&rec.RemoteURL, &rec.Error, &published, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return types.UploadRecord{}, fmt.Errorf("upload %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return types.UploadRecord{}, fmt.Errorf("scan upload: %w", err)
	}
	if published.Valid {
		rec.PublishedAt = published.Time
	}
	return rec, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
