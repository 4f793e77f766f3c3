package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/pizza-service/internal/auth"
	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/events"
	apperrors "github.com/spec-kit/pizza-service/pkg/util"
)

type orderFixture struct {
	svc    *OrderService
	orders *fakeOrderRepo
	pizzas *fakePizzaRepo
	pizza  *domain.Pizza
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	pizzas := newFakePizzaRepo()
	pizza := &domain.Pizza{
		Name:        "Margherita",
		PriceCents:  950,
		IsAvailable: true,
		CreatedBy:   "admin-1",
	}
	require.NoError(t, pizzas.Create(context.Background(), pizza))

	orders := newFakeOrderRepo()
	svc := NewOrderService(orders, pizzas, auth.NewEngine(zap.NewNop()), events.NewInMemoryDispatcher())
	return &orderFixture{svc: svc, orders: orders, pizzas: pizzas, pizza: pizza}
}

func customer(id string) domain.Identity {
	return domain.Identity{SubjectID: id, Role: domain.RoleUser}
}

func admin(id string) domain.Identity {
	return domain.Identity{SubjectID: id, Role: domain.RoleAdmin}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestPlaceOrder(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.svc.Place(context.Background(), customer("7"), f.pizza.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, "7", order.UserID)
	assert.Equal(t, int64(2850), order.TotalCents)
	assert.Equal(t, domain.OrderStatusPlaced, order.Status)
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Place(context.Background(), customer("7"), f.pizza.ID, 0)
	assertCode(t, err, "VALIDATION_FAILED")

	_, err = f.svc.Place(context.Background(), customer("7"), "missing-pizza", 1)
	assertCode(t, err, "NOT_FOUND")

	f.pizza.IsAvailable = false
	require.NoError(t, f.pizzas.Update(context.Background(), f.pizza))
	_, err = f.svc.Place(context.Background(), customer("7"), f.pizza.ID, 1)
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestGetOrderOwnership(t *testing.T) {
	f := newOrderFixture(t)

	placed, err := f.svc.Place(context.Background(), customer("9"), f.pizza.ID, 1)
	require.NoError(t, err)

	// Owner reads their own order.
	got, err := f.svc.Get(context.Background(), customer("9"), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	// A different customer is denied.
	_, err = f.svc.Get(context.Background(), customer("7"), placed.ID)
	assertCode(t, err, "FORBIDDEN")

	// An admin reads anyone's order.
	got, err = f.svc.Get(context.Background(), admin("1"), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)
}

func TestGetOrderMissingIs404NotForbidden(t *testing.T) {
	f := newOrderFixture(t)

	// The not-found check precedes any ownership evaluation.
	_, err := f.svc.Get(context.Background(), customer("7"), "no-such-order")
	assertCode(t, err, "NOT_FOUND")
}

func TestAmendOrder(t *testing.T) {
	f := newOrderFixture(t)

	placed, err := f.svc.Place(context.Background(), customer("7"), f.pizza.ID, 1)
	require.NoError(t, err)

	amended, err := f.svc.Amend(context.Background(), customer("7"), placed.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, amended.Quantity)
	assert.Equal(t, int64(3800), amended.TotalCents)

	_, err = f.svc.Amend(context.Background(), customer("9"), placed.ID, 2)
	assertCode(t, err, "FORBIDDEN")
}

func TestAmendRejectedOncePreparing(t *testing.T) {
	f := newOrderFixture(t)

	placed, err := f.svc.Place(context.Background(), customer("7"), f.pizza.ID, 1)
	require.NoError(t, err)

	_, err = f.svc.AdvanceStatus(context.Background(), admin("1"), placed.ID, domain.OrderStatusPreparing)
	require.NoError(t, err)

	_, err = f.svc.Amend(context.Background(), customer("7"), placed.ID, 2)
	assertCode(t, err, "CONFLICT")
}

func TestCancelOrder(t *testing.T) {
	f := newOrderFixture(t)

	placed, err := f.svc.Place(context.Background(), customer("7"), f.pizza.ID, 1)
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(context.Background(), customer("7"), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)

	// Terminal orders cannot be cancelled again.
	_, err = f.svc.Cancel(context.Background(), customer("7"), placed.ID)
	assertCode(t, err, "CONFLICT")
}

func TestAdvanceStatus(t *testing.T) {
	f := newOrderFixture(t)

	placed, err := f.svc.Place(context.Background(), customer("7"), f.pizza.ID, 1)
	require.NoError(t, err)

	order, err := f.svc.AdvanceStatus(context.Background(), admin("1"), placed.ID, domain.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, order.Status)

	_, err = f.svc.AdvanceStatus(context.Background(), admin("1"), placed.ID, domain.OrderStatusPreparing)
	assertCode(t, err, "CONFLICT")

	_, err = f.svc.AdvanceStatus(context.Background(), admin("1"), placed.ID, domain.OrderStatus("BURNT"))
	assertCode(t, err, "VALIDATION_FAILED")

	_, err = f.svc.AdvanceStatus(context.Background(), admin("1"), "no-such-order", domain.OrderStatusPreparing)
	assertCode(t, err, "NOT_FOUND")
}

func TestDeleteOrder(t *testing.T) {
	f := newOrderFixture(t)

	placed, err := f.svc.Place(context.Background(), customer("7"), f.pizza.ID, 1)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), placed.ID))

	err = f.svc.Delete(context.Background(), placed.ID)
	assertCode(t, err, "NOT_FOUND")
}

func TestListMineScopedToCaller(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Place(context.Background(), customer("7"), f.pizza.ID, 1)
	require.NoError(t, err)
	_, err = f.svc.Place(context.Background(), customer("9"), f.pizza.ID, 2)
	require.NoError(t, err)

	mine, err := f.svc.ListMine(context.Background(), customer("7"), 50, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "7", mine[0].UserID)

	all, err := f.svc.ListAll(context.Background(), 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
