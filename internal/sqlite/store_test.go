// File path: internal/sqlite/store_test.go
package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicodishanthj/affirmd/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenWithConfig(Config{Path: filepath.Join(t.TempDir(), "affirmations.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func affirmationFixture(id, text string, order int) model.Affirmation {
	return model.Affirmation{ID: id, Text: text, Order: order, CreatedAt: "2024-01-01T00:00:00Z"}
}

func TestOpenIsIdempotentOnExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "affirmations.db")
	first, err := OpenWithConfig(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, first.InsertAffirmations(context.Background(), affirmationFixture("a", "one", 0)))
	require.NoError(t, first.Close())

	second, err := OpenWithConfig(Config{Path: path})
	require.NoError(t, err)
	defer second.Close()
	count, err := second.CountAffirmations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpenWithConfigRequiresPath(t *testing.T) {
	_, err := OpenWithConfig(Config{Path: "   "})
	require.Error(t, err)
}

func TestListAffirmationsOrdersByRank(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.InsertAffirmations(ctx,
		affirmationFixture("c", "third", 2),
		affirmationFixture("a", "first", 0),
		affirmationFixture("b", "second", 1),
	))

	list, err := store.ListAffirmations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestMaxAffirmationOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.MaxAffirmationOrder(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.InsertAffirmations(ctx, affirmationFixture("a", "one", 4), affirmationFixture("b", "two", 9)))
	highest, ok, err := store.MaxAffirmationOrder(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 9, highest)
}

func TestUpdateAffirmationAppliesOnlySuppliedFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.InsertAffirmations(ctx, affirmationFixture("a", "original", 3)))

	text := "rewritten"
	updated, err := store.UpdateAffirmation(ctx, "a", &text, nil)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", updated.Text)
	assert.Equal(t, 3, updated.Order)

	order := 7
	updated, err = store.UpdateAffirmation(ctx, "a", nil, &order)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", updated.Text)
	assert.Equal(t, 7, updated.Order)
}

func TestUpdateAndDeleteUnknownAffirmation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	text := "x"

	_, err := store.UpdateAffirmation(ctx, "missing", &text, nil)
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = store.DeleteAffirmation(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestReorderAffirmationsSkipsUnknownIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.InsertAffirmations(ctx,
		affirmationFixture("a", "a", 0),
		affirmationFixture("b", "b", 1),
		affirmationFixture("c", "c", 2),
		affirmationFixture("d", "d", 10),
	))

	updated, err := store.ReorderAffirmations(ctx, []string{"c", "ghost", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 3, updated)

	byID := map[string]int{}
	list, err := store.ListAffirmations(ctx)
	require.NoError(t, err)
	for _, a := range list {
		byID[a.ID] = a.Order
	}
	assert.Equal(t, map[string]int{"c": 0, "a": 2, "b": 3, "d": 10}, byID)
}

func TestCreateProgressIfAbsentKeepsExistingRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.CreateProgressIfAbsent(ctx, model.DailyProgress{ID: "p1", Date: "2024-03-01", TotalAffirmations: 2})
	require.NoError(t, err)
	assert.Equal(t, "p1", first.ID)
	assert.Equal(t, []string{}, first.CompletedAffirmations)

	second, err := store.CreateProgressIfAbsent(ctx, model.DailyProgress{ID: "p2", Date: "2024-03-01", TotalAffirmations: 5})
	require.NoError(t, err)
	assert.Equal(t, "p1", second.ID)
	assert.Equal(t, 2, second.TotalAffirmations)
}

func TestSaveProgressRoundTripsCompletedOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	created, err := store.CreateProgressIfAbsent(ctx, model.DailyProgress{ID: "p1", Date: "2024-03-01"})
	require.NoError(t, err)

	created.CompletedAffirmations = []string{"z", "a", "m"}
	created.TotalAffirmations = 4
	created.CompletionPercentage = 75
	created.PracticeCount = 5
	require.NoError(t, store.SaveProgress(ctx, created))

	loaded, err := store.ProgressByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, created, loaded)

	_, err = store.ProgressByDate(ctx, "2024-03-02")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRecentProgressNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	for i, date := range []string{"2024-03-02", "2024-02-28", "2024-03-10", "2024-03-01"} {
		_, err := store.CreateProgressIfAbsent(ctx, model.DailyProgress{ID: string(rune('a' + i)), Date: date})
		require.NoError(t, err)
	}

	recent, err := store.RecentProgress(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"2024-03-10", "2024-03-02", "2024-03-01"}, []string{recent[0].Date, recent[1].Date, recent[2].Date})
}

func TestEnsureSettingsCreatesSingletonOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	defaults := model.DefaultSettings()
	defaults.ID = "s1"
	first, err := store.EnsureSettings(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, "s1", first.ID)
	assert.Nil(t, first.LastPracticeDate)
	assert.Len(t, first.NotificationTimes, 2)

	other := model.DefaultSettings()
	other.ID = "s2"
	other.MorningTime = "06:00"
	second, err := store.EnsureSettings(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, "s1", second.ID)
	assert.Equal(t, "08:00", second.MorningTime)

	var rows int
	require.NoError(t, store.db.GetContext(ctx, &rows, `SELECT COUNT(*) FROM settings`))
	assert.Equal(t, 1, rows)
}

func TestUpdateSettingsAndSaveStreak(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	defaults := model.DefaultSettings()
	defaults.ID = "s1"
	_, err := store.EnsureSettings(ctx, defaults)
	require.NoError(t, err)

	night := "22:30"
	disabled := false
	times := []model.NotificationTime{{ID: "noon", Time: "12:00", Label: "Noon", Enabled: true}}
	require.NoError(t, store.UpdateSettings(ctx, model.SettingsPatch{
		NightTime:            &night,
		NotificationsEnabled: &disabled,
		NotificationTimes:    &times,
	}))

	last := "2024-03-05"
	require.NoError(t, store.SaveStreak(ctx, model.StreakState{CurrentStreak: 3, LongestStreak: 4, LastPracticeDate: &last}))

	loaded, err := store.EnsureSettings(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, "08:00", loaded.MorningTime)
	assert.Equal(t, "22:30", loaded.NightTime)
	assert.False(t, loaded.NotificationsEnabled)
	assert.Equal(t, times, loaded.NotificationTimes)
	assert.Equal(t, 3, loaded.CurrentStreak)
	assert.Equal(t, 4, loaded.LongestStreak)
	require.NotNil(t, loaded.LastPracticeDate)
	assert.Equal(t, "2024-03-05", *loaded.LastPracticeDate)
}

func TestSaveStreakWithoutSettingsIsNotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveStreak(context.Background(), model.StreakState{CurrentStreak: 1, LongestStreak: 1})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
