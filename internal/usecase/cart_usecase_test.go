package usecase_test

import (
	"context"
	"testing"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItemIncrementsUpToStock(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	stock := 2
	_, err := env.catalog.Update(ctx, admin, "1", &usecase.UpdateProductReq{Patch: domain.ProductPatch{Stock: &stock}})
	require.NoError(t, err)

	item, err := env.cart.AddItem(ctx, guest, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	item, err = env.cart.AddItem(ctx, guest, "1")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	_, err = env.cart.AddItem(ctx, guest, "1")
	assert.ErrorIs(t, err, e.ErrStockLimitExceeded)

	cart, err := env.cart.Get(ctx, guest)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartAddItemOutOfStock(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.cart.AddItem(ctx, guest, "6")
	assert.ErrorIs(t, err, e.ErrOutOfStock)

	_, err = env.cart.AddItem(ctx, guest, "missing")
	assert.ErrorIs(t, err, e.ErrOutOfStock)

	cart, err := env.cart.Get(ctx, guest)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartAddItemRequiresCartID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.cart.AddItem(context.Background(), domain.Anonymous(""), "1")
	assert.ErrorIs(t, err, e.ErrCartIDRequired)
}

func TestCartSetQuantityClampsToStock(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.cart.SetQuantity(ctx, customer, "3", 20)
	require.NoError(t, err)
	assert.True(t, res.Clamped)
	assert.Equal(t, 8, res.Quantity)

	res, err = env.cart.SetQuantity(ctx, customer, "3", 3)
	require.NoError(t, err)
	assert.False(t, res.Clamped)
	assert.Equal(t, 3, res.Item.Quantity)

	cart, err := env.cart.Get(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Count())
}

func TestCartSetQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.cart.AddItem(ctx, customer, "2")
	require.NoError(t, err)

	res, err := env.cart.SetQuantity(ctx, customer, "2", 0)
	require.NoError(t, err)
	assert.Zero(t, res.Quantity)

	cart, err := env.cart.Get(ctx, customer)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartSetQuantityDropsDeletedProduct(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.cart.AddItem(ctx, customer, "2")
	require.NoError(t, err)
	require.NoError(t, env.catalog.Delete(ctx, admin, "2"))

	res, err := env.cart.SetQuantity(ctx, customer, "2", 2)
	require.NoError(t, err)
	assert.True(t, res.Clamped)
	assert.Zero(t, res.Quantity)

	cart, err := env.cart.Get(ctx, customer)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartItemKeepsPriceSnapshot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.cart.AddItem(ctx, customer, "1")
	require.NoError(t, err)

	price := domain.DefaultCatalog()[0].Price.Add(domain.DefaultCatalog()[0].Price)
	_, err = env.catalog.Update(ctx, admin, "1", &usecase.UpdateProductReq{Patch: domain.ProductPatch{Price: &price}})
	require.NoError(t, err)

	cart, err := env.cart.Get(ctx, customer)
	require.NoError(t, err)
	assert.True(t, cart.Items[0].Price.Equal(domain.DefaultCatalog()[0].Price))
}

func TestCartMergeOnLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.cart.SetQuantity(ctx, guest, "1", 2)
	require.NoError(t, err)
	_, err = env.cart.AddItem(ctx, guest, "2")
	require.NoError(t, err)
	_, err = env.cart.SetQuantity(ctx, customer, "1", 5)
	require.NoError(t, err)
	_, err = env.cart.AddItem(ctx, customer, "4")
	require.NoError(t, err)

	merged, err := env.cart.MergeOnLogin(ctx, guest, customer)
	require.NoError(t, err)
	assert.Equal(t, 2, merged)

	cart, err := env.cart.Get(ctx, customer)
	require.NoError(t, err)
	require.Len(t, cart.Items, 3)
	item, ok := cart.Find("1")
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)

	anon, err := env.cart.Get(ctx, guest)
	require.NoError(t, err)
	assert.Empty(t, anon.Items)
}

func TestCartMergeOnLoginEdgeCases(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.cart.MergeOnLogin(ctx, other, customer)
	assert.ErrorIs(t, err, e.ErrMergeSource)

	_, err = env.cart.MergeOnLogin(ctx, guest, domain.Anonymous("x"))
	assert.ErrorIs(t, err, e.ErrLoginRequired)

	merged, err := env.cart.MergeOnLogin(ctx, domain.Anonymous(customer.ID), customer)
	require.NoError(t, err)
	assert.Zero(t, merged)

	merged, err = env.cart.MergeOnLogin(ctx, guest, customer)
	require.NoError(t, err)
	assert.Zero(t, merged)
}

func TestCartSubscribe(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	rec := &recorder[*domain.Cart]{}
	sub, err := env.cart.Subscribe(ctx, guest, rec.push)
	require.NoError(t, err)
	require.Equal(t, 1, rec.len())
	assert.Empty(t, rec.last().Items)

	_, err = env.cart.AddItem(ctx, guest, "5")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.last().Count())

	// другая корзина не приходит в эту подписку
	pushes := rec.len()
	_, err = env.cart.AddItem(ctx, customer, "5")
	require.NoError(t, err)
	assert.Equal(t, pushes, rec.len())

	_, err = env.cart.MergeOnLogin(ctx, guest, customer)
	require.NoError(t, err)

	select {
	case <-sub.Done():
	default:
		t.Fatal("anonymous cart subscription must be torn down after merge")
	}
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for _, id := range []string{"1", "2", "3"} {
		_, err := env.cart.AddItem(ctx, customer, id)
		require.NoError(t, err)
	}

	require.NoError(t, env.cart.Clear(ctx, customer))

	cart, err := env.cart.Get(ctx, customer)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
