package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pizza-service/internal/domain"
)

// PizzaRepository encapsulates catalog persistence.
type PizzaRepository interface {
	Create(ctx context.Context, pizza *domain.Pizza) error
	Update(ctx context.Context, pizza *domain.Pizza) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Pizza, error)
	List(ctx context.Context, onlyAvailable bool) ([]domain.Pizza, error)
}

type pizzaRepository struct {
	pool *pgxpool.Pool
}

// NewPizzaRepository instantiates repository.
func NewPizzaRepository(pool *pgxpool.Pool) PizzaRepository {
	return &pizzaRepository{pool: pool}
}

func (r *pizzaRepository) Create(ctx context.Context, pizza *domain.Pizza) error {
	const query = `
        INSERT INTO pizzas (name, description, price_cents, is_available, image_url, created_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		pizza.Name,
		pizza.Description,
		pizza.PriceCents,
		pizza.IsAvailable,
		pizza.ImageURL,
		pizza.CreatedBy,
	).Scan(&pizza.ID, &pizza.CreatedAt, &pizza.UpdatedAt)
}

func (r *pizzaRepository) Update(ctx context.Context, pizza *domain.Pizza) error {
	const query = `
        UPDATE pizzas SET name=$1, description=$2, price_cents=$3, is_available=$4,
            image_url=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		pizza.Name,
		pizza.Description,
		pizza.PriceCents,
		pizza.IsAvailable,
		pizza.ImageURL,
		pizza.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pizzaRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM pizzas WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pizzaRepository) GetByID(ctx context.Context, id string) (*domain.Pizza, error) {
	const query = `
        SELECT id, name, description, price_cents, is_available, image_url, created_by, created_at, updated_at
        FROM pizzas WHERE id=$1`

	var pizza domain.Pizza
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&pizza.ID,
		&pizza.Name,
		&pizza.Description,
		&pizza.PriceCents,
		&pizza.IsAvailable,
		&pizza.ImageURL,
		&pizza.CreatedBy,
		&pizza.CreatedAt,
		&pizza.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pizza, nil
}

func (r *pizzaRepository) List(ctx context.Context, onlyAvailable bool) ([]domain.Pizza, error) {
	query := `
        SELECT id, name, description, price_cents, is_available, image_url, created_by, created_at, updated_at
        FROM pizzas`
	if onlyAvailable {
		query += ` WHERE is_available=TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pizzas := make([]domain.Pizza, 0)
	for rows.Next() {
		var pizza domain.Pizza
		if err := rows.Scan(
			&pizza.ID,
			&pizza.Name,
			&pizza.Description,
			&pizza.PriceCents,
			&pizza.IsAvailable,
			&pizza.ImageURL,
			&pizza.CreatedBy,
			&pizza.CreatedAt,
			&pizza.UpdatedAt,
		); err != nil {
			return nil, err
		}
		pizzas = append(pizzas, pizza)
	}
	return pizzas, rows.Err()
}
