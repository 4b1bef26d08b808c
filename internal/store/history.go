package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SearchRecord is one recorded search run.
type SearchRecord struct {
	ID          string     `db:"id"`
	Folder      string     `db:"folder"`
	Pattern     string     `db:"pattern"`
	Regex       bool       `db:"regex"`
	Reverse     bool       `db:"reverse"`
	WindowStart time.Time  `db:"window_start"`
	WindowEnd   *time.Time `db:"window_end"`
	ResultCount int        `db:"result_count"`
	RanAt       time.Time  `db:"ran_at"`
}

// RecordSearch inserts a search run. Generates a UUID if ID is empty
// and stamps RanAt when zero.
func (s *HistoryStore) RecordSearch(ctx context.Context, rec SearchRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.RanAt.IsZero() {
		rec.RanAt = time.Now().UTC()
	}

	var windowEnd *time.Time
	if rec.WindowEnd != nil {
		utc := rec.WindowEnd.UTC()
		windowEnd = &utc
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (
			id, folder, pattern, regex, reverse,
			window_start, window_end, result_count, ran_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Folder, rec.Pattern, rec.Regex, rec.Reverse,
		rec.WindowStart.UTC(), windowEnd, rec.ResultCount, rec.RanAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording search %s: %w", rec.ID, err)
	}
	return nil
}

// RecentSearches returns the most recent search runs, newest first.
func (s *HistoryStore) RecentSearches(ctx context.Context, limit int) ([]SearchRecord, error) {
	if limit < 1 {
		limit = 20
	}

	var records []SearchRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, folder, pattern, regex, reverse,
		       window_start, window_end, result_count, ran_at
		FROM searches
		ORDER BY ran_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing search history: %w", err)
	}
	return records, nil
}
