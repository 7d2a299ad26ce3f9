package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/repository/memory"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/stretchr/testify/require"
)

var (
	admin    = domain.Admin("admin-1", "admin@nest.store")
	customer = domain.Customer("user-1", "ana@example.com")
	other    = domain.Customer("user-2", "bo@example.com")
	guest    = domain.Anonymous("cart-anon-1")
)

type fakeEncoder struct{}

func (fakeEncoder) EncodeOrderEvent(ev *usecase.OrderEvent) ([]byte, error) {
	return fmt.Appendf(nil, "%s:%s:%s", ev.Type, ev.OrderID, ev.Status), nil
}

type fakeImages struct {
	mu      sync.Mutex
	fail    error
	uploads []string
	cleaned []string
}

func (f *fakeImages) UploadImage(_ context.Context, req *usecase.UploadImageReq) (*usecase.UploadImageRes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail != nil {
		return nil, f.fail
	}
	key := fmt.Sprintf("%s/%d-%s", req.Name, len(f.uploads), req.Image.Name)
	f.uploads = append(f.uploads, key)
	return usecase.NewUploadImageRes(key, "https://cdn.test/"+key), nil
}

func (f *fakeImages) CleanupImages(keys []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleaned = append(f.cleaned, keys...)
}

type testEnv struct {
	store    *memory.Store
	txm      *memory.TxManager
	feed     *live.LocalFeed
	products *memory.ProductRepo
	carts    *memory.CartRepo
	outbox   *memory.OutboxEventRepo
	images   *fakeImages

	catalog  *usecase.CatalogUseCase
	cart     *usecase.CartUseCase
	wishlist *usecase.WishlistUseCase
	orders   *usecase.OrderUseCase
}

// newTestEnv собирает все usecase поверх хранилища в памяти и запускает каталог с начальными товарами.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	env := &testEnv{
		store:    store,
		txm:      memory.NewTxManager(store),
		feed:     live.NewLocalFeed(),
		products: memory.NewProductRepo(store),
		carts:    memory.NewCartRepo(store),
		outbox:   memory.NewOutboxEventRepo(store),
		images:   &fakeImages{},
	}
	log := logger.Nop()

	env.catalog = usecase.NewCatalogUC(env.products, memory.NewMarkerRepo(store), env.txm, env.images, env.feed, log)
	env.cart = usecase.NewCartUC(env.carts, env.products, env.txm, env.feed, log)
	env.wishlist = usecase.NewWishlistUC(
		memory.NewWishlistRepo(store), env.products, env.catalog,
		memory.NewRankingCache(time.Minute), env.txm, env.feed, log,
	)
	env.orders = usecase.NewOrderUC(
		memory.NewOrderRepo(store), env.carts, env.outbox, fakeEncoder{}, env.txm, env.feed, log,
	)

	require.NoError(t, env.catalog.Start(context.Background()))
	t.Cleanup(func() {
		env.catalog.Stop()
		env.cart.Stop()
		env.wishlist.Stop()
		env.orders.Stop()
	})

	return env
}

func validShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		Name:    "Ana Silva",
		Email:   "ana@example.com",
		Address: "12 Harbour Road",
		City:    "Lisbon",
		Zip:     "10001",
	}
}

// recorder собирает значения, отданные подпиской.
type recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

func (r *recorder[T]) push(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder[T]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

func (r *recorder[T]) last() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[len(r.values)-1]
}
