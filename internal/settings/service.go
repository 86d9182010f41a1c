// File path: internal/settings/service.go
package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nicodishanthj/affirmd/internal/common"
	"github.com/nicodishanthj/affirmd/internal/model"
)

type Store interface {
	EnsureSettings(ctx context.Context, defaults model.Settings) (model.Settings, error)
	UpdateSettings(ctx context.Context, patch model.SettingsPatch) error
}

// Service exposes the global settings singleton. The record is created with
// defaults on first access.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the singleton, creating it with defaults if needed.
func (s *Service) Get(ctx context.Context) (model.Settings, error) {
	defaults := model.DefaultSettings()
	defaults.ID = uuid.NewString()
	settings, err := s.store.EnsureSettings(ctx, defaults)
	if err != nil {
		return model.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// Update applies the supplied fields without validating their format.
func (s *Service) Update(ctx context.Context, patch model.SettingsPatch) (model.Settings, error) {
	if _, err := s.Get(ctx); err != nil {
		return model.Settings{}, err
	}
	if patch.Empty() {
		return s.Get(ctx)
	}
	if err := s.store.UpdateSettings(ctx, patch); err != nil {
		return model.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	common.Logger().Debug("settings: updated",
		"morning_time", patch.MorningTime != nil,
		"night_time", patch.NightTime != nil,
		"notifications_enabled", patch.NotificationsEnabled != nil,
		"notification_times", patch.NotificationTimes != nil,
	)
	return s.Get(ctx)
}
