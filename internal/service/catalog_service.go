package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/events"
	"github.com/spec-kit/pizza-service/internal/persistence"
	"github.com/spec-kit/pizza-service/internal/repository"
	apperrors "github.com/spec-kit/pizza-service/pkg/util"
)

const catalogCacheKey = "catalog:available"

// CatalogService manages the pizza catalog. Public listings are served from a
// Redis snapshot; admin writes invalidate it.
type CatalogService struct {
	pizzas     repository.PizzaRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PizzaInput describes catalog write payloads. IsAvailable is a pointer so
// partial updates can leave availability untouched.
type PizzaInput struct {
	Name        string
	Description string
	PriceCents  int64
	IsAvailable *bool
	ImageURL    string
}

// NewCatalogService constructs the service.
func NewCatalogService(pizzas repository.PizzaRepository, cache *persistence.Redis, cacheTTL time.Duration, dispatcher events.Dispatcher, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		pizzas:     pizzas,
		cache:      cache,
		cacheTTL:   cacheTTL,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ListAvailable returns available pizzas, preferring the cached snapshot.
func (s *CatalogService) ListAvailable(ctx context.Context) ([]domain.Pizza, error) {
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}

	pizzas, err := s.pizzas.List(ctx, true)
	if err != nil {
		return nil, err
	}
	s.storeList(ctx, pizzas)
	return pizzas, nil
}

// ListAll returns the full catalog including unavailable items.
func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Pizza, error) {
	return s.pizzas.List(ctx, false)
}

// Get returns one catalog item.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Pizza, error) {
	pizza, err := s.pizzas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("pizza", nil)
		}
		return nil, err
	}
	return pizza, nil
}

// Create adds a catalog item on behalf of an admin.
func (s *CatalogService) Create(ctx context.Context, actor domain.Identity, input PizzaInput) (*domain.Pizza, error) {
	if input.Name == "" || input.PriceCents <= 0 {
		return nil, apperrors.NewValidationError("name and positive price required", nil)
	}

	pizza := &domain.Pizza{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		IsAvailable: input.IsAvailable != nil && *input.IsAvailable,
		ImageURL:    input.ImageURL,
		CreatedBy:   actor.SubjectID,
	}
	if err := s.pizzas.Create(ctx, pizza); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publishCatalogChange(ctx, actor, pizza.ID, "created")
	return pizza, nil
}

// Update modifies a catalog item.
func (s *CatalogService) Update(ctx context.Context, actor domain.Identity, id string, input PizzaInput) (*domain.Pizza, error) {
	pizza, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		pizza.Name = input.Name
	}
	if input.Description != "" {
		pizza.Description = input.Description
	}
	if input.PriceCents > 0 {
		pizza.PriceCents = input.PriceCents
	}
	if input.ImageURL != "" {
		pizza.ImageURL = input.ImageURL
	}
	if input.IsAvailable != nil {
		pizza.IsAvailable = *input.IsAvailable
	}

	if err := s.pizzas.Update(ctx, pizza); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publishCatalogChange(ctx, actor, pizza.ID, "updated")
	return pizza, nil
}

// Delete removes a catalog item.
func (s *CatalogService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if err := s.pizzas.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("pizza", nil)
		}
		return err
	}

	s.invalidate(ctx)
	s.publishCatalogChange(ctx, actor, id, "deleted")
	return nil
}

func (s *CatalogService) cachedList(ctx context.Context) ([]domain.Pizza, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, catalogCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var pizzas []domain.Pizza
	if err := json.Unmarshal([]byte(raw), &pizzas); err != nil {
		return nil, false
	}
	return pizzas, true
}

func (s *CatalogService) storeList(ctx context.Context, pizzas []domain.Pizza) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(pizzas)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, catalogCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *CatalogService) publishCatalogChange(ctx context.Context, actor domain.Identity, pizzaID, change string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCatalogChanged,
		Actor:     events.Actor{SubjectID: actor.SubjectID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   events.CatalogChangedPayload{PizzaID: pizzaID, Change: change},
	})
}
