package service

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pizza-service/internal/domain"
)

// In-memory repositories backing service tests.

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = strconv.Itoa(r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakePizzaRepo struct {
	pizzas map[string]*domain.Pizza
	nextID int
}

func newFakePizzaRepo() *fakePizzaRepo {
	return &fakePizzaRepo{pizzas: make(map[string]*domain.Pizza)}
}

func (r *fakePizzaRepo) Create(_ context.Context, pizza *domain.Pizza) error {
	r.nextID++
	pizza.ID = "pizza-" + strconv.Itoa(r.nextID)
	pizza.CreatedAt = time.Now()
	pizza.UpdatedAt = pizza.CreatedAt
	clone := *pizza
	r.pizzas[pizza.ID] = &clone
	return nil
}

func (r *fakePizzaRepo) Update(_ context.Context, pizza *domain.Pizza) error {
	if _, ok := r.pizzas[pizza.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *pizza
	r.pizzas[pizza.ID] = &clone
	return nil
}

func (r *fakePizzaRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.pizzas[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.pizzas, id)
	return nil
}

func (r *fakePizzaRepo) GetByID(_ context.Context, id string) (*domain.Pizza, error) {
	pizza, ok := r.pizzas[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *pizza
	return &clone, nil
}

func (r *fakePizzaRepo) List(_ context.Context, onlyAvailable bool) ([]domain.Pizza, error) {
	out := make([]domain.Pizza, 0, len(r.pizzas))
	for _, pizza := range r.pizzas {
		if onlyAvailable && !pizza.IsAvailable {
			continue
		}
		out = append(out, *pizza)
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
	nextID int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.nextID++
	order.ID = "order-" + strconv.Itoa(r.nextID)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *domain.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepo) OwnerIDOf(_ context.Context, id string) (string, error) {
	order, ok := r.orders[id]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return order.UserID, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.Order, error) {
	out := make([]domain.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context, _, _ int) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}
