package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pizza-service/internal/domain"
)

// OrderRepository encapsulates order persistence. OwnerIDOf feeds the
// authorization engine's ownership check without loading the full record.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	OwnerIDOf(ctx context.Context, id string) (string, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (user_id, pizza_id, quantity, total_cents, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.UserID,
		order.PizzaID,
		order.Quantity,
		order.TotalCents,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
        UPDATE orders SET quantity=$1, total_cents=$2, status=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		order.Quantity,
		order.TotalCents,
		order.Status,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT id, user_id, pizza_id, quantity, total_cents, status, created_at, updated_at
        FROM orders WHERE id=$1`

	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.PizzaID,
		&order.Quantity,
		&order.TotalCents,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) OwnerIDOf(ctx context.Context, id string) (string, error) {
	var userID string
	if err := r.pool.QueryRow(ctx, `SELECT user_id FROM orders WHERE id=$1`, id).Scan(&userID); err != nil {
		return "", err
	}
	return userID, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error) {
	const query = `
        SELECT id, user_id, pizza_id, quantity, total_cents, status, created_at, updated_at
        FROM orders WHERE user_id=$1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	return r.fetchMany(ctx, query, userID, normalizeLimit(limit), offset)
}

func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	const query = `
        SELECT id, user_id, pizza_id, quantity, total_cents, status, created_at, updated_at
        FROM orders
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`
	return r.fetchMany(ctx, query, normalizeLimit(limit), offset)
}

func (r *orderRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.PizzaID,
			&order.Quantity,
			&order.TotalCents,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}
