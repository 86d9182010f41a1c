// File path: internal/streak/streak_test.go
package streak

import (
	"context"
	"errors"
	"testing"

	"github.com/nicodishanthj/affirmd/internal/model"
)

func datePtr(v string) *string { return &v }

func TestAdvance(t *testing.T) {
	cases := []struct {
		name       string
		state      model.StreakState
		date       string
		want       model.StreakState
		transition Transition
	}{
		{
			name:       "first completion",
			state:      model.StreakState{},
			date:       "2024-03-01",
			want:       model.StreakState{CurrentStreak: 1, LongestStreak: 1, LastPracticeDate: datePtr("2024-03-01")},
			transition: Started,
		},
		{
			name:       "first completion keeps larger longest",
			state:      model.StreakState{LongestStreak: 9},
			date:       "2024-03-01",
			want:       model.StreakState{CurrentStreak: 1, LongestStreak: 9, LastPracticeDate: datePtr("2024-03-01")},
			transition: Started,
		},
		{
			name:       "consecutive day",
			state:      model.StreakState{CurrentStreak: 1, LongestStreak: 1, LastPracticeDate: datePtr("2024-03-01")},
			date:       "2024-03-02",
			want:       model.StreakState{CurrentStreak: 2, LongestStreak: 2, LastPracticeDate: datePtr("2024-03-02")},
			transition: Continued,
		},
		{
			name:       "consecutive across month end",
			state:      model.StreakState{CurrentStreak: 4, LongestStreak: 4, LastPracticeDate: datePtr("2024-02-29")},
			date:       "2024-03-01",
			want:       model.StreakState{CurrentStreak: 5, LongestStreak: 5, LastPracticeDate: datePtr("2024-03-01")},
			transition: Continued,
		},
		{
			name:       "same day",
			state:      model.StreakState{CurrentStreak: 2, LongestStreak: 3, LastPracticeDate: datePtr("2024-03-02")},
			date:       "2024-03-02",
			want:       model.StreakState{CurrentStreak: 2, LongestStreak: 3, LastPracticeDate: datePtr("2024-03-02")},
			transition: SameDay,
		},
		{
			name:       "gap resets",
			state:      model.StreakState{CurrentStreak: 2, LongestStreak: 2, LastPracticeDate: datePtr("2024-03-02")},
			date:       "2024-03-04",
			want:       model.StreakState{CurrentStreak: 1, LongestStreak: 2, LastPracticeDate: datePtr("2024-03-04")},
			transition: Reset,
		},
		{
			name:       "backdated is ignored",
			state:      model.StreakState{CurrentStreak: 3, LongestStreak: 3, LastPracticeDate: datePtr("2024-03-05")},
			date:       "2024-03-01",
			want:       model.StreakState{CurrentStreak: 3, LongestStreak: 3, LastPracticeDate: datePtr("2024-03-05")},
			transition: Backdated,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, transition, err := Advance(tc.state, tc.date)
			if err != nil {
				t.Fatalf("advance: %v", err)
			}
			if transition != tc.transition {
				t.Fatalf("expected transition %q, got %q", tc.transition, transition)
			}
			if got.CurrentStreak != tc.want.CurrentStreak || got.LongestStreak != tc.want.LongestStreak {
				t.Fatalf("expected streak %d/%d, got %d/%d", tc.want.CurrentStreak, tc.want.LongestStreak, got.CurrentStreak, got.LongestStreak)
			}
			if got.LastPracticeDate == nil || *got.LastPracticeDate != *tc.want.LastPracticeDate {
				t.Fatalf("expected last practice %s, got %v", *tc.want.LastPracticeDate, got.LastPracticeDate)
			}
			if got.LongestStreak < got.CurrentStreak {
				t.Fatalf("longest %d below current %d", got.LongestStreak, got.CurrentStreak)
			}
		})
	}
}

func TestAdvanceRejectsMalformedDate(t *testing.T) {
	_, _, err := Advance(model.StreakState{}, "03/01/2024")
	if !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

type memorySettings struct {
	settings *model.Settings
	saves    int
}

func (m *memorySettings) EnsureSettings(_ context.Context, defaults model.Settings) (model.Settings, error) {
	if m.settings == nil {
		copied := defaults
		m.settings = &copied
	}
	return *m.settings, nil
}

func (m *memorySettings) SaveStreak(_ context.Context, state model.StreakState) error {
	m.saves++
	m.settings.CurrentStreak = state.CurrentStreak
	m.settings.LongestStreak = state.LongestStreak
	m.settings.LastPracticeDate = state.LastPracticeDate
	return nil
}

func TestEngineRecordPersistsTransitions(t *testing.T) {
	store := &memorySettings{}
	engine := NewEngine(store, func() string { return "settings-id" })
	ctx := context.Background()

	for _, step := range []struct {
		date    string
		current int
		longest int
	}{
		{"2024-03-01", 1, 1},
		{"2024-03-02", 2, 2},
		{"2024-03-02", 2, 2},
		{"2024-03-05", 1, 2},
	} {
		state, err := engine.Record(ctx, step.date)
		if err != nil {
			t.Fatalf("record %s: %v", step.date, err)
		}
		if state.CurrentStreak != step.current || state.LongestStreak != step.longest {
			t.Fatalf("%s: expected %d/%d, got %d/%d", step.date, step.current, step.longest, state.CurrentStreak, state.LongestStreak)
		}
	}
	if store.settings.ID != "settings-id" {
		t.Fatalf("expected lazily created settings id, got %q", store.settings.ID)
	}
	if store.saves != 4 {
		t.Fatalf("expected 4 saves, got %d", store.saves)
	}
}

func TestEngineRecordSkipsSaveForBackdatedCompletion(t *testing.T) {
	store := &memorySettings{settings: &model.Settings{CurrentStreak: 2, LongestStreak: 2, LastPracticeDate: datePtr("2024-03-10")}}
	engine := NewEngine(store, nil)

	state, err := engine.Record(context.Background(), "2024-03-08")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("expected no save, got %d", store.saves)
	}
	if state.CurrentStreak != 2 || *store.settings.LastPracticeDate != "2024-03-10" {
		t.Fatalf("unexpected state after backdated completion: %+v", state)
	}
}
