package usecase_test

import (
	"context"
	"testing"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/repository/memory"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staleOrderRepo имитирует заказ, статус которого изменили между чтением и записью.
type staleOrderRepo struct {
	usecase.OrderRepository
}

func (staleOrderRepo) UpdateStatus(context.Context, string, domain.OrderStatus, domain.OrderStatus) (bool, error) {
	return false, nil
}

func checkout(t *testing.T, env *testEnv, who domain.Identity, productIDs ...string) *domain.Order {
	t.Helper()
	ctx := context.Background()

	for _, id := range productIDs {
		_, err := env.cart.AddItem(ctx, who, id)
		require.NoError(t, err)
	}

	order, err := env.orders.Checkout(ctx, who, validShipping())
	require.NoError(t, err)
	return order
}

func TestOrderCheckoutClearsCartAndWritesOutbox(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	order := checkout(t, env, customer, "1", "1", "5")

	assert.Equal(t, domain.StatusConfirmed, order.Status)
	require.NotNil(t, order.UserID)
	assert.Equal(t, customer.ID, *order.UserID)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("219.97")), order.Total.String())
	assert.Len(t, order.Items, 2)

	cart, err := env.cart.Get(ctx, customer)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	events, err := env.outbox.GetAndMarkAsProcessing(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, usecase.OrderCreated, events[0].EventType)
	assert.Equal(t, order.ID, events[0].AggregateID)
	assert.Equal(t, "ORDER_CREATED:"+order.ID+":Confirmed", string(events[0].Payload))
}

func TestOrderCheckoutGuest(t *testing.T) {
	env := newTestEnv(t)

	order := checkout(t, env, guest, "2")
	assert.Nil(t, order.UserID)

	// гостевой заказ не виден никому, кроме администратора
	_, err := env.orders.Get(context.Background(), customer, order.ID)
	assert.ErrorIs(t, err, e.ErrOrderNotFound)

	got, err := env.orders.Get(context.Background(), admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestOrderCheckoutRejectsEmptyCartAndBadShipping(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.orders.Checkout(ctx, customer, validShipping())
	assert.ErrorIs(t, err, e.ErrEmptyCart)

	_, err = env.cart.AddItem(ctx, customer, "1")
	require.NoError(t, err)

	bad := validShipping()
	bad.Email = "nope"
	_, err = env.orders.Checkout(ctx, customer, bad)
	assert.ErrorIs(t, err, e.ErrInvalidShipping)

	cart, err := env.cart.Get(ctx, customer)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	pending, err := env.outbox.Pending(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestOrderUpdateStatusByAdmin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	order := checkout(t, env, customer, "1")

	updated, err := env.orders.UpdateStatus(ctx, admin, order.ID, domain.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)

	_, err = env.orders.UpdateStatus(ctx, admin, order.ID, domain.StatusCancelled)
	assert.ErrorIs(t, err, e.ErrInvalidTransition)

	_, err = env.orders.UpdateStatus(ctx, admin, order.ID, domain.StatusDelivered)
	require.NoError(t, err)

	_, err = env.orders.UpdateStatus(ctx, admin, order.ID, domain.StatusShipped)
	assert.ErrorIs(t, err, e.ErrInvalidTransition)

	pending, err := env.outbox.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, pending)
}

func TestOrderAdminMaySkipToDelivered(t *testing.T) {
	env := newTestEnv(t)
	order := checkout(t, env, customer, "1")

	updated, err := env.orders.UpdateStatus(context.Background(), admin, order.ID, domain.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
}

func TestOrderUpdateStatusByOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	order := checkout(t, env, customer, "1")

	_, err := env.orders.UpdateStatus(ctx, customer, order.ID, domain.StatusShipped)
	assert.ErrorIs(t, err, e.ErrForbidden)

	_, err = env.orders.UpdateStatus(ctx, other, order.ID, domain.StatusCancelled)
	assert.ErrorIs(t, err, e.ErrForbidden)

	_, err = env.orders.UpdateStatus(ctx, domain.Anonymous(customer.ID), order.ID, domain.StatusCancelled)
	assert.ErrorIs(t, err, e.ErrForbidden)

	updated, err := env.orders.UpdateStatus(ctx, customer, order.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	_, err = env.orders.UpdateStatus(ctx, customer, order.ID, domain.StatusCancelled)
	assert.ErrorIs(t, err, e.ErrInvalidTransition)
}

func TestOrderOwnerCannotCancelShipped(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	order := checkout(t, env, customer, "1")

	_, err := env.orders.UpdateStatus(ctx, admin, order.ID, domain.StatusShipped)
	require.NoError(t, err)

	_, err = env.orders.UpdateStatus(ctx, customer, order.ID, domain.StatusCancelled)
	assert.ErrorIs(t, err, e.ErrForbidden)
}

func TestOrderUpdateStatusDetectsConcurrentChange(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	order := checkout(t, env, customer, "1")

	orders := usecase.NewOrderUC(
		staleOrderRepo{memory.NewOrderRepo(env.store)}, env.carts, env.outbox,
		fakeEncoder{}, env.txm, env.feed, logger.Nop(),
	)

	_, err := orders.UpdateStatus(ctx, admin, order.ID, domain.StatusShipped)
	assert.ErrorIs(t, err, e.ErrInvalidTransition)
	assert.ErrorIs(t, err, e.ErrConcurrentTransition)

	// событие статуса не записано
	pending, err := env.outbox.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}

func TestOrderListScopes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	checkout(t, env, customer, "1")
	checkout(t, env, other, "2")
	checkout(t, env, guest, "3")

	mine, err := env.orders.List(ctx, customer, nil)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := env.orders.List(ctx, admin, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := env.orders.List(ctx, guest, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	shipped := domain.StatusShipped
	filtered, err := env.orders.List(ctx, admin, &shipped)
	require.NoError(t, err)
	assert.Empty(t, filtered)
}

func TestOrderSubscribe(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.orders.Subscribe(ctx, guest, func([]domain.Order) {})
	assert.ErrorIs(t, err, e.ErrLoginRequired)

	rec := &recorder[[]domain.Order]{}
	sub, err := env.orders.Subscribe(ctx, admin, rec.push)
	require.NoError(t, err)
	defer sub.Unsubscribe()
	assert.Empty(t, rec.last())

	order := checkout(t, env, customer, "1")
	require.Len(t, rec.last(), 1)

	_, err = env.orders.UpdateStatus(ctx, admin, order.ID, domain.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, rec.last()[0].Status)
}
