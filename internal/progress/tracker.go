// File path: internal/progress/tracker.go
package progress

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/nicodishanthj/affirmd/internal/common"
	"github.com/nicodishanthj/affirmd/internal/common/telemetry"
	"github.com/nicodishanthj/affirmd/internal/model"
)

// DefaultHistoryDays is the history window used when the caller gives none.
const DefaultHistoryDays = 7

type Store interface {
	CountAffirmations(ctx context.Context) (int, error)
	ProgressByDate(ctx context.Context, date string) (model.DailyProgress, error)
	CreateProgressIfAbsent(ctx context.Context, p model.DailyProgress) (model.DailyProgress, error)
	SaveProgress(ctx context.Context, p model.DailyProgress) error
	RecentProgress(ctx context.Context, limit int) ([]model.DailyProgress, error)
}

// StreakRecorder receives full-completion events.
type StreakRecorder interface {
	Record(ctx context.Context, date string) (model.StreakState, error)
}

// Tracker maintains one DailyProgress record per calendar date.
type Tracker struct {
	store    Store
	streaks  StreakRecorder
	now      func() time.Time
	location *time.Location
}

type Option func(*Tracker)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLocation sets the time zone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.location = loc
		}
	}
}

func NewTracker(store Store, streaks StreakRecorder, opts ...Option) *Tracker {
	t := &Tracker{
		store:    store,
		streaks:  streaks,
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// TodayDate returns the current calendar key in the tracker's time zone.
func (t *Tracker) TodayDate() string {
	return t.now().In(t.location).Format(model.DateLayout)
}

// Today returns the record for the current date, creating it if absent.
func (t *Tracker) Today(ctx context.Context) (model.DailyProgress, error) {
	return t.GetOrCreate(ctx, t.TodayDate())
}

// GetOrCreate looks up the record for date. A missing record is created empty
// with a snapshot of the current affirmation count.
func (t *Tracker) GetOrCreate(ctx context.Context, date string) (model.DailyProgress, error) {
	if _, err := model.ParseDate(date); err != nil {
		return model.DailyProgress{}, err
	}
	existing, err := t.store.ProgressByDate(ctx, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.DailyProgress{}, fmt.Errorf("load progress: %w", err)
	}
	total, err := t.store.CountAffirmations(ctx)
	if err != nil {
		return model.DailyProgress{}, fmt.Errorf("count affirmations: %w", err)
	}
	created, err := t.store.CreateProgressIfAbsent(ctx, model.DailyProgress{
		ID:                    uuid.NewString(),
		Date:                  date,
		CompletedAffirmations: []string{},
		TotalAffirmations:     total,
		CompletionPercentage:  0,
		PracticeCount:         0,
	})
	if err != nil {
		return model.DailyProgress{}, fmt.Errorf("create progress: %w", err)
	}
	common.Logger().Debug("progress: day opened", "date", date, "total", total)
	return created, nil
}

// MarkComplete records one practice of affirmationID on date. The practice
// count always grows; the completed set only gains unseen ids. While every
// affirmation is complete each call re-notifies the streak recorder.
func (t *Tracker) MarkComplete(ctx context.Context, date, affirmationID string) (model.DailyProgress, error) {
	if affirmationID == "" {
		return model.DailyProgress{}, fmt.Errorf("%w: affirmation_id required", model.ErrInvalidArgument)
	}
	ctx, end := telemetry.StartSpan(ctx, "progress.mark_complete")
	progress, err := t.GetOrCreate(ctx, date)
	if err != nil {
		end("error", err)
		return model.DailyProgress{}, err
	}
	if !slices.Contains(progress.CompletedAffirmations, affirmationID) {
		progress.CompletedAffirmations = append(progress.CompletedAffirmations, affirmationID)
	}
	progress.PracticeCount++

	total, err := t.store.CountAffirmations(ctx)
	if err != nil {
		end("error", err)
		return model.DailyProgress{}, fmt.Errorf("count affirmations: %w", err)
	}
	progress.TotalAffirmations = total
	progress.CompletionPercentage = model.CompletionPercentage(progress.UniqueCompleted(), total)

	if err := t.store.SaveProgress(ctx, progress); err != nil {
		end("error", err)
		return model.DailyProgress{}, fmt.Errorf("save progress: %w", err)
	}

	full := progress.FullyComplete()
	telemetry.RecordPractice(full)
	if full && t.streaks != nil {
		if _, err := t.streaks.Record(ctx, date); err != nil {
			end("error", err)
			return model.DailyProgress{}, fmt.Errorf("update streak: %w", err)
		}
	}
	end("date", date, "practice_count", progress.PracticeCount, "full", full)
	return progress, nil
}

// History returns up to days records, most recent date first.
func (t *Tracker) History(ctx context.Context, days int) ([]model.DailyProgress, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be positive", model.ErrInvalidArgument)
	}
	return t.store.RecentProgress(ctx, days)
}
