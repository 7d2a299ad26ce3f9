package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/repository/memory"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTx struct{ err error }

func (f failingTx) Do(context.Context, func(ctx context.Context) error) error {
	return f.err
}

func newProductReq() *usecase.CreateProductReq {
	return &usecase.CreateProductReq{
		Name:     "Canvas Tote Bag",
		Price:    decimal.RequireFromString("45.00"),
		Stock:    4,
		Category: domain.CategoryHandbags,
		Audience: domain.AudienceHer,
		Image:    usecase.NewProductImage([]byte{0xff, 0xd8}, "image/jpeg", 2, "tote.jpg"),
	}
}

func TestCatalogStartSeedsDefaultCatalog(t *testing.T) {
	env := newTestEnv(t)

	products := env.catalog.List(domain.ProductFilter{})
	require.Len(t, products, len(domain.DefaultCatalog()))
	assert.Equal(t, "Bifold Leather Wallet", products[0].Name)

	seeded, err := env.catalog.SeedIfEmpty(context.Background(), domain.DefaultCatalog())
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestCatalogSeedRunsOnceEvenAfterCatalogEmptied(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for _, p := range env.catalog.List(domain.ProductFilter{}) {
		require.NoError(t, env.catalog.Delete(ctx, admin, p.ID))
	}
	assert.Empty(t, env.catalog.List(domain.ProductFilter{}))

	seeded, err := env.catalog.SeedIfEmpty(ctx, domain.DefaultCatalog())
	require.NoError(t, err)
	assert.False(t, seeded)

	count, err := env.products.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCatalogListSortedByName(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	req := newProductReq()
	req.Name = "aviator sling"
	_, err := env.catalog.Create(ctx, admin, req)
	require.NoError(t, err)

	var names []string
	for _, p := range env.catalog.List(domain.ProductFilter{}) {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{
		"aviator sling",
		"Bifold Leather Wallet",
		"Mini Crossbody Bag",
		"Silk Scarf Twilly",
		"Structured Leather Tote",
		"Trail Roll-Top Backpack",
		"Urban Commuter Backpack",
	}, names)
}

func TestCatalogStartWithoutSeed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepo(store)

	catalog := usecase.NewCatalogUC(products, memory.NewMarkerRepo(store), memory.NewTxManager(store), &fakeImages{}, live.NewLocalFeed(), logger.Nop())
	catalog.DisableSeed()
	require.NoError(t, catalog.Start(ctx))
	defer catalog.Stop()

	assert.Empty(t, catalog.List(domain.ProductFilter{}))
}

func TestCatalogSeedSkippedWhenProductsExist(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepo(store)
	markers := memory.NewMarkerRepo(store)

	existing := domain.DefaultCatalog()[0]
	existing.ID = "legacy"
	_, err := products.Create(ctx, &existing)
	require.NoError(t, err)

	catalog := usecase.NewCatalogUC(products, markers, memory.NewTxManager(store), &fakeImages{}, live.NewLocalFeed(), logger.Nop())
	seeded, err := catalog.SeedIfEmpty(ctx, domain.DefaultCatalog())
	require.NoError(t, err)
	assert.False(t, seeded)

	done, err := markers.Exists(ctx, domain.CatalogSeededMarker)
	require.NoError(t, err)
	assert.True(t, done)

	count, err := products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCatalogCreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.Create(context.Background(), customer, newProductReq())
	assert.ErrorIs(t, err, e.ErrForbidden)
	assert.Empty(t, env.images.uploads)
}

func TestCatalogCreateUploadsImage(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.catalog.Create(context.Background(), admin, newProductReq())
	require.NoError(t, err)
	require.Len(t, env.images.uploads, 1)
	assert.Equal(t, "https://cdn.test/"+env.images.uploads[0], created.ImageURL)
	assert.Equal(t, "canvas tote", created.ImageHint)

	got, ok := env.catalog.GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, created.Name, got.Name)
}

func TestCatalogCreateValidatesBeforeUpload(t *testing.T) {
	env := newTestEnv(t)

	req := newProductReq()
	req.Price = decimal.RequireFromString("1.005")
	_, err := env.catalog.Create(context.Background(), admin, req)
	assert.ErrorIs(t, err, e.ErrPricePrecision)

	req = newProductReq()
	req.Image = nil
	_, err = env.catalog.Create(context.Background(), admin, req)
	assert.ErrorIs(t, err, e.ErrImageRequired)

	assert.Empty(t, env.images.uploads)
}

func TestCatalogCreateUploadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.images.fail = errors.New("minio down")

	_, err := env.catalog.Create(context.Background(), admin, newProductReq())
	assert.ErrorIs(t, err, e.ErrUploadFailed)
	assert.Len(t, env.catalog.List(domain.ProductFilter{}), len(domain.DefaultCatalog()))
}

func TestCatalogCreateCleansUpImageWhenWriteFails(t *testing.T) {
	store := memory.NewStore()
	images := &fakeImages{}
	storeErr := e.Store("memory", errors.New("disk full"))
	catalog := usecase.NewCatalogUC(
		memory.NewProductRepo(store), memory.NewMarkerRepo(store),
		failingTx{err: storeErr}, images, live.NewLocalFeed(), logger.Nop(),
	)

	_, err := catalog.Create(context.Background(), admin, newProductReq())
	require.ErrorIs(t, err, e.ErrStoreUnavailable)
	assert.Equal(t, images.uploads, images.cleaned)
}

func TestCatalogUpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	off := false
	stock := 2
	updated, err := env.catalog.Update(ctx, admin, "3", &usecase.UpdateProductReq{
		Patch: domain.ProductPatch{HasDiscount: &off, Stock: &stock},
	})
	require.NoError(t, err)
	assert.False(t, updated.HasDiscount)
	assert.Nil(t, updated.OriginalPrice)
	assert.Equal(t, 2, updated.Stock)
	assert.Equal(t, "Structured Leather Tote", updated.Name)

	got, ok := env.catalog.GetByID("3")
	require.True(t, ok)
	assert.Equal(t, 2, got.Stock)
}

func TestCatalogUpdateRejectsInvalidResult(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	percent := 0
	_, err := env.catalog.Update(ctx, admin, "3", &usecase.UpdateProductReq{
		Patch: domain.ProductPatch{DiscountPercentage: &percent},
	})
	assert.ErrorIs(t, err, e.ErrInvalidDiscount)

	_, err = env.catalog.Update(ctx, admin, "missing", &usecase.UpdateProductReq{})
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestCatalogDeleteMissing(t *testing.T) {
	env := newTestEnv(t)

	err := env.catalog.Delete(context.Background(), admin, "missing")
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	err = env.catalog.Delete(context.Background(), guest, "1")
	assert.ErrorIs(t, err, e.ErrForbidden)
}

func TestCatalogSubscribePushesFilteredSnapshot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	handbags := domain.CategoryHandbags
	rec := &recorder[[]domain.Product]{}
	sub, err := env.catalog.Subscribe(ctx, guest, domain.ProductFilter{Category: &handbags}, rec.push)
	require.NoError(t, err)
	require.Equal(t, 1, rec.len())
	assert.Len(t, rec.last(), 2)

	_, err = env.catalog.Create(ctx, admin, newProductReq())
	require.NoError(t, err)
	assert.Len(t, rec.last(), 3)

	sub.Unsubscribe()
	pushes := rec.len()
	require.NoError(t, env.catalog.Delete(ctx, admin, "4"))
	assert.Equal(t, pushes, rec.len())
}

func TestCatalogResubscribeReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.catalog.Subscribe(ctx, customer, domain.ProductFilter{}, func([]domain.Product) {})
	require.NoError(t, err)

	_, err = env.catalog.Subscribe(ctx, customer, domain.ProductFilter{}, func([]domain.Product) {})
	require.NoError(t, err)

	select {
	case <-first.Done():
	default:
		t.Fatal("previous subscription must be closed")
	}
}
