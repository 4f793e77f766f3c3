package dto

import (
	"time"

	"github.com/spec-kit/pizza-service/internal/domain"
)

// OrderCreateRequest payload for placing an order.
type OrderCreateRequest struct {
	PizzaID  string `json:"pizza_id"`
	Quantity int    `json:"quantity"`
}

// OrderAmendRequest payload for changing a placed order.
type OrderAmendRequest struct {
	Quantity int `json:"quantity"`
}

// OrderStatusRequest payload for admin status updates.
type OrderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	PizzaID    string             `json:"pizza_id"`
	Quantity   int                `json:"quantity"`
	TotalCents int64              `json:"total_cents"`
	Status     domain.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		PizzaID:    order.PizzaID,
		Quantity:   order.Quantity,
		TotalCents: order.TotalCents,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

// NewOrderListResponse maps a slice of domain orders.
func NewOrderListResponse(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
