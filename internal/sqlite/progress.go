// File path: internal/sqlite/progress.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nicodishanthj/affirmd/internal/model"
)

// ProgressByDate loads the progress record for a calendar date.
func (s *Store) ProgressByDate(ctx context.Context, date string) (model.DailyProgress, error) {
	if err := s.ensureReady(); err != nil {
		return model.DailyProgress{}, err
	}
	defer observe("progress.get", time.Now())
	return getProgress(ctx, s.db, date)
}

func getProgress(ctx context.Context, q sqlx.QueryerContext, date string) (model.DailyProgress, error) {
	var row progressRow
	err := sqlx.GetContext(ctx, q, &row, `SELECT `+progressColumns+` FROM daily_progress WHERE date = ?`, date)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DailyProgress{}, fmt.Errorf("progress for %s: %w", date, model.ErrNotFound)
	}
	if err != nil {
		return model.DailyProgress{}, storeErr("select progress", err)
	}
	progress, err := row.toModel()
	if err != nil {
		return model.DailyProgress{}, storeErr("decode progress", err)
	}
	return progress, nil
}

// CreateProgressIfAbsent inserts p unless a record for p.Date already exists,
// then returns whichever record is stored for that date.
func (s *Store) CreateProgressIfAbsent(ctx context.Context, p model.DailyProgress) (model.DailyProgress, error) {
	if err := s.ensureReady(); err != nil {
		return model.DailyProgress{}, err
	}
	completed, err := encodeJSON(nonNilStrings(p.CompletedAffirmations))
	if err != nil {
		return model.DailyProgress{}, fmt.Errorf("encode completed affirmations: %w", err)
	}
	defer observe("progress.create", time.Now())
	if _, err := s.db.ExecContext(ctx, `INSERT INTO daily_progress(`+progressColumns+`)
                VALUES(?, ?, ?, ?, ?, ?)
                ON CONFLICT(date) DO NOTHING`,
		p.ID, p.Date, completed, p.TotalAffirmations, p.CompletionPercentage, p.PracticeCount); err != nil {
		return model.DailyProgress{}, storeErr("insert progress", err)
	}
	return getProgress(ctx, s.db, p.Date)
}

// SaveProgress overwrites the mutable fields of an existing record.
func (s *Store) SaveProgress(ctx context.Context, p model.DailyProgress) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	completed, err := encodeJSON(nonNilStrings(p.CompletedAffirmations))
	if err != nil {
		return fmt.Errorf("encode completed affirmations: %w", err)
	}
	defer observe("progress.save", time.Now())
	res, err := s.db.ExecContext(ctx, `UPDATE daily_progress SET
                completed_affirmations = ?,
                total_affirmations = ?,
                completion_percentage = ?,
                practice_count = ?
                WHERE id = ?`,
		completed, p.TotalAffirmations, p.CompletionPercentage, p.PracticeCount, p.ID)
	if err != nil {
		return storeErr("update progress", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("update progress rows", err)
	}
	if affected == 0 {
		return fmt.Errorf("progress %s: %w", p.ID, model.ErrNotFound)
	}
	return nil
}

// RecentProgress returns up to limit records, newest date first.
func (s *Store) RecentProgress(ctx context.Context, limit int) ([]model.DailyProgress, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []model.DailyProgress{}, nil
	}
	defer observe("progress.history", time.Now())
	rows := []progressRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+progressColumns+` FROM daily_progress ORDER BY date DESC LIMIT ?`, limit); err != nil {
		return nil, storeErr("select progress history", err)
	}
	out := make([]model.DailyProgress, 0, len(rows))
	for _, row := range rows {
		progress, err := row.toModel()
		if err != nil {
			return nil, storeErr("decode progress", err)
		}
		out = append(out, progress)
	}
	return out, nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
