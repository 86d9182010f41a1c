// File path: internal/settings/service_test.go
package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicodishanthj/affirmd/internal/model"
	"github.com/nicodishanthj/affirmd/internal/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := sqlite.OpenWithConfig(sqlite.Config{Path: filepath.Join(t.TempDir(), "affirmations.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store)
}

func TestGetCreatesDefaultsOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "08:00", first.MorningTime)
	assert.Equal(t, "20:00", first.NightTime)
	assert.True(t, first.NotificationsEnabled)
	assert.Equal(t, model.DefaultSettings().NotificationTimes, first.NotificationTimes)
	assert.Zero(t, first.CurrentStreak)
	assert.Zero(t, first.LongestStreak)
	assert.Nil(t, first.LastPracticeDate)

	second, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	morning := "06:15"
	updated, err := svc.Update(ctx, model.SettingsPatch{MorningTime: &morning})
	require.NoError(t, err)
	assert.Equal(t, "06:15", updated.MorningTime)
	assert.Equal(t, "20:00", updated.NightTime)
	assert.True(t, updated.NotificationsEnabled)
	assert.Len(t, updated.NotificationTimes, 2)

	times := []model.NotificationTime{}
	enabled := false
	updated, err = svc.Update(ctx, model.SettingsPatch{NotificationTimes: &times, NotificationsEnabled: &enabled})
	require.NoError(t, err)
	assert.Equal(t, "06:15", updated.MorningTime)
	assert.False(t, updated.NotificationsEnabled)
	assert.Empty(t, updated.NotificationTimes)
}

func TestUpdateDoesNotValidateTimeFormat(t *testing.T) {
	svc := newTestService(t)
	night := "late"
	updated, err := svc.Update(context.Background(), model.SettingsPatch{NightTime: &night})
	require.NoError(t, err)
	assert.Equal(t, "late", updated.NightTime)
}

func TestEmptyUpdateReturnsCurrentSettings(t *testing.T) {
	svc := newTestService(t)
	updated, err := svc.Update(context.Background(), model.SettingsPatch{})
	require.NoError(t, err)
	assert.Equal(t, "08:00", updated.MorningTime)
}
