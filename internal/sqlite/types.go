// File path: internal/sqlite/types.go
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/nicodishanthj/affirmd/internal/model"
)

const (
	affirmationColumns = `id, text, sort_order, is_example, created_at`
	progressColumns    = `id, date, completed_affirmations, total_affirmations, completion_percentage, practice_count`
	settingsColumns    = `id, morning_time, night_time, notifications_enabled, notification_times, current_streak, longest_streak, last_practice_date`
)

// affirmationRow mirrors the affirmations table.
type affirmationRow struct {
	ID        string `db:"id"`
	Text      string `db:"text"`
	Order     int    `db:"sort_order"`
	IsExample bool   `db:"is_example"`
	CreatedAt string `db:"created_at"`
}

func (r affirmationRow) toModel() model.Affirmation {
	return model.Affirmation{
		ID:        r.ID,
		Text:      r.Text,
		Order:     r.Order,
		IsExample: r.IsExample,
		CreatedAt: r.CreatedAt,
	}
}

// progressRow mirrors daily_progress; the completed set is stored as a JSON
// array to keep insertion order.
type progressRow struct {
	ID                   string  `db:"id"`
	Date                 string  `db:"date"`
	Completed            string  `db:"completed_affirmations"`
	TotalAffirmations    int     `db:"total_affirmations"`
	CompletionPercentage float64 `db:"completion_percentage"`
	PracticeCount        int     `db:"practice_count"`
}

func (r progressRow) toModel() (model.DailyProgress, error) {
	completed := []string{}
	if r.Completed != "" {
		if err := json.Unmarshal([]byte(r.Completed), &completed); err != nil {
			return model.DailyProgress{}, fmt.Errorf("decode completed affirmations for %s: %w", r.Date, err)
		}
	}
	return model.DailyProgress{
		ID:                    r.ID,
		Date:                  r.Date,
		CompletedAffirmations: completed,
		TotalAffirmations:     r.TotalAffirmations,
		CompletionPercentage:  r.CompletionPercentage,
		PracticeCount:         r.PracticeCount,
	}, nil
}

type settingsRow struct {
	ID                   string         `db:"id"`
	MorningTime          string         `db:"morning_time"`
	NightTime            string         `db:"night_time"`
	NotificationsEnabled bool           `db:"notifications_enabled"`
	NotificationTimes    string         `db:"notification_times"`
	CurrentStreak        int            `db:"current_streak"`
	LongestStreak        int            `db:"longest_streak"`
	LastPracticeDate     sql.NullString `db:"last_practice_date"`
}

func (r settingsRow) toModel() (model.Settings, error) {
	times := []model.NotificationTime{}
	if r.NotificationTimes != "" {
		if err := json.Unmarshal([]byte(r.NotificationTimes), &times); err != nil {
			return model.Settings{}, fmt.Errorf("decode notification times: %w", err)
		}
	}
	settings := model.Settings{
		ID:                   r.ID,
		MorningTime:          r.MorningTime,
		NightTime:            r.NightTime,
		NotificationsEnabled: r.NotificationsEnabled,
		NotificationTimes:    times,
		CurrentStreak:        r.CurrentStreak,
		LongestStreak:        r.LongestStreak,
	}
	if r.LastPracticeDate.Valid {
		last := r.LastPracticeDate.String
		settings.LastPracticeDate = &last
	}
	return settings, nil
}

func encodeJSON(value interface{}) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func nullIfNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
