// File path: internal/sqlite/settings.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nicodishanthj/affirmd/internal/model"
)

// EnsureSettings creates the singleton from defaults when it does not exist
// yet and returns the stored record. Creation is a single insert-if-absent, so
// concurrent callers always observe one record.
func (s *Store) EnsureSettings(ctx context.Context, defaults model.Settings) (model.Settings, error) {
	if err := s.ensureReady(); err != nil {
		return model.Settings{}, err
	}
	times := defaults.NotificationTimes
	if times == nil {
		times = []model.NotificationTime{}
	}
	encoded, err := encodeJSON(times)
	if err != nil {
		return model.Settings{}, fmt.Errorf("encode notification times: %w", err)
	}
	defer observe("settings.ensure", time.Now())
	if _, err := s.db.ExecContext(ctx, `INSERT INTO settings(singleton, `+settingsColumns+`)
                VALUES(1, ?, ?, ?, ?, ?, ?, ?, ?)
                ON CONFLICT(singleton) DO NOTHING`,
		defaults.ID, defaults.MorningTime, defaults.NightTime, defaults.NotificationsEnabled, encoded,
		defaults.CurrentStreak, defaults.LongestStreak, nullIfNil(defaults.LastPracticeDate)); err != nil {
		return model.Settings{}, storeErr("insert settings", err)
	}
	return s.loadSettings(ctx)
}

func (s *Store) loadSettings(ctx context.Context) (model.Settings, error) {
	var row settingsRow
	err := s.db.GetContext(ctx, &row, `SELECT `+settingsColumns+` FROM settings WHERE singleton = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Settings{}, fmt.Errorf("settings: %w", model.ErrNotFound)
	}
	if err != nil {
		return model.Settings{}, storeErr("select settings", err)
	}
	settings, err := row.toModel()
	if err != nil {
		return model.Settings{}, storeErr("decode settings", err)
	}
	return settings, nil
}

// UpdateSettings applies the non-nil fields of patch to the singleton.
func (s *Store) UpdateSettings(ctx context.Context, patch model.SettingsPatch) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	sets := []string{}
	args := []interface{}{}
	if patch.MorningTime != nil {
		sets = append(sets, "morning_time = ?")
		args = append(args, *patch.MorningTime)
	}
	if patch.NightTime != nil {
		sets = append(sets, "night_time = ?")
		args = append(args, *patch.NightTime)
	}
	if patch.NotificationsEnabled != nil {
		sets = append(sets, "notifications_enabled = ?")
		args = append(args, *patch.NotificationsEnabled)
	}
	if patch.NotificationTimes != nil {
		times := *patch.NotificationTimes
		if times == nil {
			times = []model.NotificationTime{}
		}
		encoded, err := encodeJSON(times)
		if err != nil {
			return fmt.Errorf("encode notification times: %w", err)
		}
		sets = append(sets, "notification_times = ?")
		args = append(args, encoded)
	}
	if len(sets) == 0 {
		return nil
	}
	defer observe("settings.update", time.Now())
	return s.execSettings(ctx, `UPDATE settings SET `+strings.Join(sets, ", ")+` WHERE singleton = 1`, args...)
}

// SaveStreak persists the streak fields of the singleton.
func (s *Store) SaveStreak(ctx context.Context, state model.StreakState) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	defer observe("settings.streak", time.Now())
	return s.execSettings(ctx, `UPDATE settings SET current_streak = ?, longest_streak = ?, last_practice_date = ? WHERE singleton = 1`,
		state.CurrentStreak, state.LongestStreak, nullIfNil(state.LastPracticeDate))
}

func (s *Store) execSettings(ctx context.Context, query string, args ...interface{}) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return storeErr("update settings", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("update settings rows", err)
	}
	if affected == 0 {
		return fmt.Errorf("settings: %w", model.ErrNotFound)
	}
	return nil
}
