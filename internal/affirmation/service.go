// File path: internal/affirmation/service.go
package affirmation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nicodishanthj/affirmd/internal/common"
	"github.com/nicodishanthj/affirmd/internal/common/telemetry"
	"github.com/nicodishanthj/affirmd/internal/model"
)

// Examples are the seed affirmations inserted by SeedExamples, in order.
var Examples = []string{
	"I am worthy of love, success, and happiness.",
	"I trust the journey and embrace each moment with grace.",
	"My potential is limitless, and I grow stronger every day.",
	"I attract positive energy and opportunities into my life.",
	"I am grateful for all the blessings in my life.",
	"I choose peace, joy, and abundance in all that I do.",
	"I release what no longer serves me and welcome new beginnings.",
	"I am confident, capable, and worthy of my dreams.",
}

// Store is the persistence the service needs. *sqlite.Store satisfies it.
type Store interface {
	ListAffirmations(ctx context.Context) ([]model.Affirmation, error)
	MaxAffirmationOrder(ctx context.Context) (int, bool, error)
	CountExampleAffirmations(ctx context.Context) (int, error)
	InsertAffirmations(ctx context.Context, affirmations ...model.Affirmation) error
	UpdateAffirmation(ctx context.Context, id string, text *string, order *int) (model.Affirmation, error)
	DeleteAffirmation(ctx context.Context, id string) error
	ReorderAffirmations(ctx context.Context, ids []string) (int, error)
}

// Service manages the ordered affirmation collection.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	svc := &Service{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// List returns all affirmations ascending by order.
func (s *Service) List(ctx context.Context) ([]model.Affirmation, error) {
	return s.store.ListAffirmations(ctx)
}

// Create stores a user affirmation. A nil order appends after the current
// maximum rank; the lookup and insert are not atomic.
func (s *Service) Create(ctx context.Context, text string, order *int) (model.Affirmation, error) {
	if strings.TrimSpace(text) == "" {
		return model.Affirmation{}, fmt.Errorf("%w: text required", model.ErrInvalidArgument)
	}
	rank := 0
	if order != nil {
		rank = *order
	} else {
		highest, ok, err := s.store.MaxAffirmationOrder(ctx)
		if err != nil {
			return model.Affirmation{}, fmt.Errorf("next order: %w", err)
		}
		if ok {
			rank = highest + 1
		}
	}
	created := model.Affirmation{
		ID:        s.newID(),
		Text:      text,
		Order:     rank,
		IsExample: false,
		CreatedAt: model.FormatTimestamp(s.now()),
	}
	if err := s.store.InsertAffirmations(ctx, created); err != nil {
		return model.Affirmation{}, fmt.Errorf("create affirmation: %w", err)
	}
	telemetry.RecordAffirmationCreated(1)
	common.Logger().Debug("affirmation: created", "id", created.ID, "order", created.Order)
	return created, nil
}

// Update applies the supplied fields. At least one field is required.
func (s *Service) Update(ctx context.Context, id string, text *string, order *int) (model.Affirmation, error) {
	if text == nil && order == nil {
		return model.Affirmation{}, fmt.Errorf("%w: no fields to update", model.ErrInvalidArgument)
	}
	if text != nil && strings.TrimSpace(*text) == "" {
		return model.Affirmation{}, fmt.Errorf("%w: text must not be empty", model.ErrInvalidArgument)
	}
	return s.store.UpdateAffirmation(ctx, id, text, order)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteAffirmation(ctx, id); err != nil {
		return err
	}
	common.Logger().Debug("affirmation: deleted", "id", id)
	return nil
}

// Reorder assigns each id its index in ids as the new order. Unknown ids are
// skipped and the number of reordered affirmations is returned.
func (s *Service) Reorder(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	updated, err := s.store.ReorderAffirmations(ctx, ids)
	if err != nil {
		return 0, err
	}
	telemetry.RecordReorder()
	if skipped := len(ids) - updated; skipped > 0 {
		common.Logger().Info("affirmation: reorder skipped unknown ids", "requested", len(ids), "skipped", skipped)
	}
	return updated, nil
}

// SeedResult reports what SeedExamples did.
type SeedResult struct {
	Seeded         int
	AlreadyExisted bool
}

// Message is the human-readable outcome reported to API and CLI callers.
func (r SeedResult) Message() string {
	if r.AlreadyExisted {
		return "Example affirmations already exist"
	}
	return fmt.Sprintf("Seeded %d example affirmations", r.Seeded)
}

// SeedExamples inserts the example affirmations once. If any example already
// exists it does nothing.
func (s *Service) SeedExamples(ctx context.Context) (SeedResult, error) {
	existing, err := s.store.CountExampleAffirmations(ctx)
	if err != nil {
		return SeedResult{}, fmt.Errorf("count examples: %w", err)
	}
	if existing > 0 {
		return SeedResult{AlreadyExisted: true}, nil
	}
	createdAt := model.FormatTimestamp(s.now())
	examples := make([]model.Affirmation, 0, len(Examples))
	for idx, text := range Examples {
		examples = append(examples, model.Affirmation{
			ID:        s.newID(),
			Text:      text,
			Order:     idx,
			IsExample: true,
			CreatedAt: createdAt,
		})
	}
	if err := s.store.InsertAffirmations(ctx, examples...); err != nil {
		return SeedResult{}, fmt.Errorf("seed examples: %w", err)
	}
	telemetry.RecordExamplesSeeded(len(examples))
	common.Logger().Info("affirmation: examples seeded", "count", len(examples))
	return SeedResult{Seeded: len(examples)}, nil
}
