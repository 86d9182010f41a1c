// File path: internal/streak/streak.go
package streak

import (
	"context"
	"fmt"
	"time"

	"github.com/nicodishanthj/affirmd/internal/common"
	"github.com/nicodishanthj/affirmd/internal/common/telemetry"
	"github.com/nicodishanthj/affirmd/internal/model"
)

// Transition names the branch Advance took.
type Transition string

const (
	Started   Transition = "started"
	Continued Transition = "continued"
	SameDay   Transition = "same_day"
	Reset     Transition = "reset"
	Backdated Transition = "backdated"
)

// Advance applies a full-completion event on date to state.
//
// A date earlier than the last practice date leaves state untouched so a late
// completion of a past day cannot rewind last_practice_date.
func Advance(state model.StreakState, date string) (model.StreakState, Transition, error) {
	day, err := model.ParseDate(date)
	if err != nil {
		return state, "", err
	}
	next := state
	var transition Transition
	if state.LastPracticeDate == nil {
		next.CurrentStreak = 1
		transition = Started
	} else {
		last, err := model.ParseDate(*state.LastPracticeDate)
		if err != nil {
			return state, "", fmt.Errorf("stored last practice date: %w", err)
		}
		switch diff := daysBetween(last, day); {
		case diff < 0:
			return state, Backdated, nil
		case diff == 0:
			transition = SameDay
		case diff == 1:
			next.CurrentStreak++
			transition = Continued
		default:
			next.CurrentStreak = 1
			transition = Reset
		}
	}
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.LastPracticeDate = &date
	return next, transition, nil
}

// daysBetween counts calendar days from a to b. Both are UTC midnights as
// produced by model.ParseDate.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// Store is the settings persistence the engine reads and writes.
type Store interface {
	EnsureSettings(ctx context.Context, defaults model.Settings) (model.Settings, error)
	SaveStreak(ctx context.Context, state model.StreakState) error
}

// Engine persists streak transitions on the settings singleton.
type Engine struct {
	store Store
	newID func() string
}

func NewEngine(store Store, newID func() string) *Engine {
	return &Engine{store: store, newID: newID}
}

// Record applies a full-completion event for date. Concurrent calls are
// last-writer-wins.
func (e *Engine) Record(ctx context.Context, date string) (model.StreakState, error) {
	defaults := model.DefaultSettings()
	if e.newID != nil {
		defaults.ID = e.newID()
	}
	settings, err := e.store.EnsureSettings(ctx, defaults)
	if err != nil {
		return model.StreakState{}, fmt.Errorf("load settings: %w", err)
	}
	next, transition, err := Advance(settings.Streak(), date)
	if err != nil {
		return model.StreakState{}, err
	}
	logger := common.Logger()
	if transition == Backdated {
		logger.Info("streak: ignoring backdated completion", "date", date, "last_practice_date", *settings.LastPracticeDate)
		return next, nil
	}
	if err := e.store.SaveStreak(ctx, next); err != nil {
		return model.StreakState{}, fmt.Errorf("save streak: %w", err)
	}
	telemetry.RecordStreakUpdate(next.CurrentStreak)
	logger.Debug("streak: updated", "date", date, "transition", string(transition), "current", next.CurrentStreak, "longest", next.LongestStreak, "elapsed", telemetry.SpanDuration(ctx))
	return next, nil
}
