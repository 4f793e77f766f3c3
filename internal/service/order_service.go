package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pizza-service/internal/auth"
	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/events"
	"github.com/spec-kit/pizza-service/internal/repository"
	apperrors "github.com/spec-kit/pizza-service/pkg/util"
)

// orderAccessPolicy guards user-scoped order reads and amendments: customers
// reach only their own orders, admins reach all of them.
var orderAccessPolicy = auth.Policy{
	AllowedRoles: []domain.Role{domain.RoleUser, domain.RoleAdmin},
	Ownership:    true,
}

// OrderService coordinates order workflows. Resource-level authorization
// happens here: the owner is looked up first (missing records 404 before any
// ownership evaluation) and the engine decides.
type OrderService struct {
	orders     repository.OrderRepository
	pizzas     repository.PizzaRepository
	engine     *auth.Engine
	dispatcher events.Dispatcher
}

// NewOrderService constructs the service.
func NewOrderService(orders repository.OrderRepository, pizzas repository.PizzaRepository, engine *auth.Engine, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{
		orders:     orders,
		pizzas:     pizzas,
		engine:     engine,
		dispatcher: dispatcher,
	}
}

// Place creates an order owned by the caller.
func (s *OrderService) Place(ctx context.Context, actor domain.Identity, pizzaID string, quantity int) (*domain.Order, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}

	pizza, err := s.pizzas.GetByID(ctx, pizzaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("pizza", nil)
		}
		return nil, err
	}
	if !pizza.IsAvailable {
		return nil, apperrors.NewValidationError("pizza is not available", nil)
	}

	order := &domain.Order{
		UserID:     actor.SubjectID,
		PizzaID:    pizza.ID,
		Quantity:   quantity,
		TotalCents: pizza.PriceCents * int64(quantity),
		Status:     domain.OrderStatusPlaced,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, actor, events.EventOrderPlaced, events.OrderPlacedPayload{
		OrderID:    order.ID,
		PizzaID:    order.PizzaID,
		Quantity:   order.Quantity,
		TotalCents: order.TotalCents,
	})
	return order, nil
}

// Get returns one order after the ownership decision.
func (s *OrderService) Get(ctx context.Context, actor domain.Identity, id string) (*domain.Order, error) {
	if err := s.authorizeAccess(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, id)
}

// ListMine returns the caller's own orders.
func (s *OrderService) ListMine(ctx context.Context, actor domain.Identity, limit, offset int) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, actor.SubjectID, limit, offset)
}

// ListAll returns every order. Route registration restricts this to admins.
func (s *OrderService) ListAll(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	return s.orders.List(ctx, limit, offset)
}

// Amend changes the quantity of a not-yet-prepared order.
func (s *OrderService) Amend(ctx context.Context, actor domain.Identity, id string, quantity int) (*domain.Order, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}
	if err := s.authorizeAccess(ctx, actor, id); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPlaced {
		return nil, apperrors.NewConflict("order can no longer be amended", nil)
	}

	pizza, err := s.pizzas.GetByID(ctx, order.PizzaID)
	if err != nil {
		return nil, err
	}

	order.Quantity = quantity
	order.TotalCents = pizza.PriceCents * int64(quantity)
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel moves an order to CANCELLED on behalf of its owner or an admin.
func (s *OrderService) Cancel(ctx context.Context, actor domain.Identity, id string) (*domain.Order, error) {
	if err := s.authorizeAccess(ctx, actor, id); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, apperrors.NewConflict("order already completed", nil)
	}

	old := order.Status
	order.Status = domain.OrderStatusCancelled
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, actor, events.EventOrderStatusChanged, events.OrderStatusChangedPayload{
		OrderID:   order.ID,
		OldStatus: old,
		NewStatus: order.Status,
	})
	return order, nil
}

// AdvanceStatus sets an order's status. Route registration restricts this to
// admins; the transition rules still apply.
func (s *OrderService) AdvanceStatus(ctx context.Context, actor domain.Identity, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown order status", nil)
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", nil)
		}
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, apperrors.NewConflict("order already completed", nil)
	}

	old := order.Status
	order.Status = status
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, actor, events.EventOrderStatusChanged, events.OrderStatusChangedPayload{
		OrderID:   order.ID,
		OldStatus: old,
		NewStatus: order.Status,
	})
	return order, nil
}

// Delete removes an order. Route registration restricts this to admins.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order", nil)
		}
		return err
	}
	return nil
}

// authorizeAccess resolves the order's owner and lets the engine decide.
// A missing order surfaces as 404 before any ownership evaluation.
func (s *OrderService) authorizeAccess(ctx context.Context, actor domain.Identity, id string) error {
	ownerID, err := s.orders.OwnerIDOf(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order", nil)
		}
		return err
	}
	if s.engine.Authorize(actor, orderAccessPolicy, ownerID) != auth.Allow {
		return apperrors.NewForbidden("access denied")
	}
	return nil
}

func (s *OrderService) publish(ctx context.Context, actor domain.Identity, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{SubjectID: actor.SubjectID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
