package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/evgraf/culturebot/internal/vision"
)

// GetVision looks up cached visual attributes for an image URL.
func (s *Store) GetVision(ctx context.Context, imageURL string) (*vision.Attributes, bool, error) {
	var raw string
	err := s.QueryRowContext(ctx,
		"SELECT attributes FROM vision_cache WHERE image_url = ?", imageURL,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query vision cache: %w", err)
	}

	var attrs vision.Attributes
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return nil, false, fmt.Errorf("decode cached attributes: %w", err)
	}
	return &attrs, true, nil
}

// PutVision stores visual attributes for an image URL, replacing any
// previous entry.
func (s *Store) PutVision(ctx context.Context, imageURL string, attrs *vision.Attributes) error {
	raw, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}
	_, err = s.ExecContext(ctx, `
		INSERT INTO vision_cache (image_url, attributes) VALUES (?, ?)
		ON CONFLICT(image_url) DO UPDATE SET attributes = excluded.attributes
	`, imageURL, string(raw))
	if err != nil {
		return fmt.Errorf("write vision cache: %w", err)
	}
	return nil
}

// SpendOn returns the recorded API spend for a day. Unknown days
// report zero.
func (s *Store) SpendOn(ctx context.Context, day string) (float64, error) {
	var spend float64
	err := s.QueryRowContext(ctx,
		"SELECT spend_usd FROM cost_ledger WHERE day = ?", day,
	).Scan(&spend)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query cost ledger: %w", err)
	}
	return spend, nil
}

// AddSpend adds usd to a day's spend total.
func (s *Store) AddSpend(ctx context.Context, day string, usd float64) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO cost_ledger (day, spend_usd) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET spend_usd = spend_usd + excluded.spend_usd
	`, day, usd)
	if err != nil {
		return fmt.Errorf("update cost ledger: %w", err)
	}
	return nil
}

// MatchRecord is one logged pairing.
type MatchRecord struct {
	ID           int64
	RunID        string
	PoemTitle    string
	PoemAuthor   string
	ArtworkID    string
	ArtworkTitle string
	Status       string
	Score        float64
	CreatedAt    time.Time
}

// LogMatch appends a pairing to the match log.
func (s *Store) LogMatch(ctx context.Context, rec MatchRecord) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO matches (run_id, poem_title, poem_author, artwork_id, artwork_title, status, score)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.RunID, rec.PoemTitle, rec.PoemAuthor, rec.ArtworkID, rec.ArtworkTitle, rec.Status, rec.Score)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// RecentMatches returns the most recent pairings, newest first.
func (s *Store) RecentMatches(ctx context.Context, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.QueryContext(ctx, `
		SELECT id, run_id, poem_title, poem_author, artwork_id, artwork_title, status, score, created_at
		FROM matches ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.PoemTitle, &rec.PoemAuthor,
			&rec.ArtworkID, &rec.ArtworkTitle, &rec.Status, &rec.Score, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return records, nil
}

// RecentArtworkIDs returns artwork IDs paired within the given window,
// used to avoid repeating artworks on consecutive days.
func (s *Store) RecentArtworkIDs(ctx context.Context, since time.Time) (map[string]bool, error) {
	rows, err := s.QueryContext(ctx,
		"SELECT DISTINCT artwork_id FROM matches WHERE created_at >= ?", since.UTC())
	if err != nil {
		return nil, fmt.Errorf("query recent artworks: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan artwork id: %w", err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artwork ids: %w", err)
	}
	return ids, nil
}
