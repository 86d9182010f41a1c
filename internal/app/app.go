// File path: internal/app/app.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nicodishanthj/affirmd/internal/affirmation"
	"github.com/nicodishanthj/affirmd/internal/config"
	"github.com/nicodishanthj/affirmd/internal/progress"
	"github.com/nicodishanthj/affirmd/internal/settings"
	"github.com/nicodishanthj/affirmd/internal/sqlite"
	"github.com/nicodishanthj/affirmd/internal/streak"
)

// App wires the SQLite store to the domain services and exposes them to the
// API layer.
type App struct {
	cfg   config.Config
	store *sqlite.Store

	affirmations *affirmation.Service
	progress     *progress.Tracker
	settings     *settings.Service
}

type Option func(*options)

type options struct {
	now      func() time.Time
	location *time.Location
}

// WithClock injects a fixed clock. Primarily used in tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLocation overrides the time zone from the configuration.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

// New opens the store at cfg.DBPath and constructs the services.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	cfg = config.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	loc := o.location
	if loc == nil {
		resolved, err := cfg.Location()
		if err != nil {
			return nil, err
		}
		loc = resolved
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init sqlite store: %w", err)
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}

	engine := streak.NewEngine(store, uuid.NewString)
	a := &App{
		cfg:          cfg,
		store:        store,
		affirmations: affirmation.NewService(store, affirmation.WithClock(o.now)),
		progress: progress.NewTracker(store, engine,
			progress.WithClock(o.now),
			progress.WithLocation(loc),
		),
		settings: settings.NewService(store),
	}
	return a, nil
}

func (a *App) Config() config.Config {
	if a == nil {
		return config.Config{}
	}
	return a.cfg
}

func (a *App) Affirmations() *affirmation.Service {
	if a == nil {
		return nil
	}
	return a.affirmations
}

func (a *App) Progress() *progress.Tracker {
	if a == nil {
		return nil
	}
	return a.progress
}

func (a *App) Settings() *settings.Service {
	if a == nil {
		return nil
	}
	return a.settings
}

// Ping reports whether the backing store is reachable.
func (a *App) Ping(ctx context.Context) error {
	if a == nil || a.store == nil {
		return fmt.Errorf("app not initialised")
	}
	return a.store.Ping(ctx)
}

// Close releases the store.
func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}
