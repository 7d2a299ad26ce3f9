package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistToggleKeepsCounterInSync(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.wishlist.Toggle(ctx, customer, "2")
	require.NoError(t, err)
	assert.True(t, res.Member)
	assert.Equal(t, 1, res.WishlistCount)
	assert.True(t, env.wishlist.IsMember(customer, "2"))

	res, err = env.wishlist.Toggle(ctx, other, "2")
	require.NoError(t, err)
	assert.Equal(t, 2, res.WishlistCount)

	product, err := env.products.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 2, product.WishlistCount)

	res, err = env.wishlist.Toggle(ctx, customer, "2")
	require.NoError(t, err)
	assert.False(t, res.Member)
	assert.Equal(t, 1, res.WishlistCount)
	assert.False(t, env.wishlist.IsMember(customer, "2"))

	snapshot, ok := env.catalog.GetByID("2")
	require.True(t, ok)
	assert.Equal(t, 1, snapshot.WishlistCount)
}

func TestWishlistToggleIdentityRules(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.wishlist.Toggle(ctx, guest, "1")
	assert.ErrorIs(t, err, e.ErrLoginRequired)

	res, err := env.wishlist.Toggle(ctx, admin, "1")
	require.NoError(t, err)
	assert.False(t, res.Member)

	product, err := env.products.Get(ctx, "1")
	require.NoError(t, err)
	assert.Zero(t, product.WishlistCount)

	items, err := env.wishlist.List(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.False(t, env.wishlist.IsMember(admin, "1"))
	assert.False(t, env.wishlist.IsMember(guest, "1"))
}

func TestWishlistToggleMissingProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.wishlist.Toggle(context.Background(), customer, "missing")
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestWishlistToggleRemovesStaleMembership(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.wishlist.Toggle(ctx, customer, "5")
	require.NoError(t, err)
	require.NoError(t, env.catalog.Delete(ctx, admin, "5"))

	res, err := env.wishlist.Toggle(ctx, customer, "5")
	require.NoError(t, err)
	assert.False(t, res.Member)

	items, err := env.wishlist.List(ctx, customer)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlistListRefreshesMembership(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.wishlist.Toggle(ctx, customer, "1")
	require.NoError(t, err)
	_, err = env.wishlist.Toggle(ctx, customer, "3")
	require.NoError(t, err)

	items, err := env.wishlist.List(ctx, customer)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, env.wishlist.IsMember(customer, "3"))
	assert.False(t, env.wishlist.IsMember(other, "3"))

	_, err = env.wishlist.List(ctx, guest)
	assert.ErrorIs(t, err, e.ErrLoginRequired)
}

func TestWishlistRankMostWished(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for _, op := range []struct {
		who domain.Identity
		id  string
	}{
		{customer, "4"}, {other, "4"}, {customer, "2"}, {other, "1"}, {customer, "5"},
	} {
		_, err := env.wishlist.Toggle(ctx, op.who, op.id)
		require.NoError(t, err)
	}

	_, err := env.wishlist.RankMostWished(ctx, customer)
	assert.ErrorIs(t, err, e.ErrForbidden)

	ranking, err := env.wishlist.RankMostWished(ctx, admin)
	require.NoError(t, err)
	require.Len(t, ranking, 4)
	assert.Equal(t, "4", ranking[0].Product.ID)
	assert.Equal(t, 2, ranking[0].WishlistCount)
	assert.Equal(t, []string{"1", "2", "5"}, []string{ranking[1].Product.ID, ranking[2].Product.ID, ranking[3].Product.ID})

	// удаленный товар выпадает из рейтинга, новый toggle сбрасывает кэш
	require.NoError(t, env.catalog.Delete(ctx, admin, "4"))
	_, err = env.wishlist.Toggle(ctx, other, "5")
	require.NoError(t, err)

	ranking, err = env.wishlist.RankMostWished(ctx, admin)
	require.NoError(t, err)
	require.Len(t, ranking, 3)
	assert.Equal(t, "5", ranking[0].Product.ID)
	assert.Equal(t, 2, ranking[0].WishlistCount)
}

func TestWishlistSubscribe(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.wishlist.Subscribe(ctx, guest, func([]domain.WishlistItem) {})
	assert.ErrorIs(t, err, e.ErrLoginRequired)

	_, err = env.wishlist.Subscribe(ctx, admin, func([]domain.WishlistItem) {})
	assert.ErrorIs(t, err, e.ErrForbidden)

	rec := &recorder[[]domain.WishlistItem]{}
	sub, err := env.wishlist.Subscribe(ctx, customer, rec.push)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	_, err = env.wishlist.Toggle(ctx, customer, "3")
	require.NoError(t, err)
	require.Len(t, rec.last(), 1)
	assert.Equal(t, "3", rec.last()[0].ProductID)

	pushes := rec.len()
	_, err = env.wishlist.Toggle(ctx, other, "3")
	require.NoError(t, err)
	assert.Equal(t, pushes, rec.len())
}

func TestWishlistSnapshotDroppedAfterUnsubscribe(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.wishlist.Toggle(ctx, customer, "4")
	require.NoError(t, err)

	sub, err := env.wishlist.Subscribe(ctx, customer, func([]domain.WishlistItem) {})
	require.NoError(t, err)
	assert.True(t, env.wishlist.IsMember(customer, "4"))

	sub.Unsubscribe()
	assert.Eventually(t, func() bool {
		return !env.wishlist.IsMember(customer, "4")
	}, time.Second, 5*time.Millisecond)

	// следующий List загружает снимок заново
	_, err = env.wishlist.List(ctx, customer)
	require.NoError(t, err)
	assert.True(t, env.wishlist.IsMember(customer, "4"))
}
