// File path: internal/model/types.go
package model

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar key used for daily progress and streak dates.
const DateLayout = "2006-01-02"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Affirmation is a single user-facing text with a display rank.
type Affirmation struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Order     int    `json:"order"`
	IsExample bool   `json:"is_example"`
	CreatedAt string `json:"created_at"`
}

// DailyProgress is the completion record for one calendar date.
type DailyProgress struct {
	ID                    string   `json:"id"`
	Date                  string   `json:"date"`
	CompletedAffirmations []string `json:"completed_affirmations"`
	TotalAffirmations     int      `json:"total_affirmations"`
	CompletionPercentage  float64  `json:"completion_percentage"`
	PracticeCount         int      `json:"practice_count"`
}

// UniqueCompleted reports how many distinct affirmations were completed.
func (p DailyProgress) UniqueCompleted() int {
	return len(p.CompletedAffirmations)
}

// FullyComplete reports whether every affirmation in the store was
// completed at least once on this date.
func (p DailyProgress) FullyComplete() bool {
	return p.TotalAffirmations > 0 && p.UniqueCompleted() == p.TotalAffirmations
}

// CompletionPercentage returns completed/total*100, or 0 when total is 0.
func CompletionPercentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

type NotificationTime struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// Settings is the singleton preferences record, including streak state.
type Settings struct {
	ID                   string             `json:"id"`
	MorningTime          string             `json:"morning_time"`
	NightTime            string             `json:"night_time"`
	NotificationsEnabled bool               `json:"notifications_enabled"`
	NotificationTimes    []NotificationTime `json:"notification_times"`
	CurrentStreak        int                `json:"current_streak"`
	LongestStreak        int                `json:"longest_streak"`
	LastPracticeDate     *string            `json:"last_practice_date"`
}

// SettingsPatch carries the optional fields of a settings update. Nil
// fields are left untouched.
type SettingsPatch struct {
	MorningTime          *string             `json:"morning_time,omitempty"`
	NightTime            *string             `json:"night_time,omitempty"`
	NotificationsEnabled *bool               `json:"notifications_enabled,omitempty"`
	NotificationTimes    *[]NotificationTime `json:"notification_times,omitempty"`
}

// Empty reports whether the patch carries no fields.
func (p SettingsPatch) Empty() bool {
	return p.MorningTime == nil && p.NightTime == nil && p.NotificationsEnabled == nil && p.NotificationTimes == nil
}

// StreakState holds the streak fields owned by the streak engine.
type StreakState struct {
	CurrentStreak    int
	LongestStreak    int
	LastPracticeDate *string
}

// Streak extracts the streak fields from the settings record.
func (s Settings) Streak() StreakState {
	return StreakState{
		CurrentStreak:    s.CurrentStreak,
		LongestStreak:    s.LongestStreak,
		LastPracticeDate: s.LastPracticeDate,
	}
}

// DefaultSettings returns the record created on first access.
func DefaultSettings() Settings {
	return Settings{
		MorningTime:          "08:00",
		NightTime:            "20:00",
		NotificationsEnabled: true,
		NotificationTimes: []NotificationTime{
			{ID: "morning", Time: "08:00", Label: "Morning", Enabled: true},
			{ID: "night", Time: "20:00", Label: "Night", Enabled: true},
		},
	}
}

// ParseDate validates a YYYY-MM-DD calendar key.
func ParseDate(value string) (time.Time, error) {
	day, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidArgument, value)
	}
	return day, nil
}

// FormatTimestamp renders a creation timestamp in ISO 8601 UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
