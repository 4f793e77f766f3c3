package dto

import (
	"time"

	"github.com/spec-kit/pizza-service/internal/domain"
)

// PizzaRequest payload for catalog writes. IsAvailable is a pointer so a
// partial PATCH that omits it leaves availability unchanged.
type PizzaRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	IsAvailable *bool  `json:"is_available"`
	ImageURL    string `json:"image_url"`
}

// PizzaResponse is the public view of a catalog item.
type PizzaResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	IsAvailable bool      `json:"is_available"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPizzaResponse maps a domain pizza.
func NewPizzaResponse(pizza *domain.Pizza) PizzaResponse {
	return PizzaResponse{
		ID:          pizza.ID,
		Name:        pizza.Name,
		Description: pizza.Description,
		PriceCents:  pizza.PriceCents,
		IsAvailable: pizza.IsAvailable,
		ImageURL:    pizza.ImageURL,
		CreatedAt:   pizza.CreatedAt,
		UpdatedAt:   pizza.UpdatedAt,
	}
}

// NewPizzaListResponse maps a slice of domain pizzas.
func NewPizzaListResponse(pizzas []domain.Pizza) []PizzaResponse {
	out := make([]PizzaResponse, 0, len(pizzas))
	for i := range pizzas {
		out = append(out, NewPizzaResponse(&pizzas[i]))
	}
	return out
}
