// Package memory — хранилище в памяти процесса для режима STORE_DRIVER=memory и тестов.
// Все операции сериализуются; транзакция откатывается восстановлением снимка.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/usecase"
)

type txKey struct{}

// Store — общее состояние всех репозиториев памяти.
type Store struct {
	mu sync.Mutex

	products  map[string]domain.Product
	carts     map[string]map[string]domain.CartItem     // cartID -> productID
	wishlists map[string]map[string]domain.WishlistItem // userID -> productID
	orders    map[string]domain.Order
	outbox    []usecase.OutboxEvent
	outboxSeq int64
	markers   map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		products:  make(map[string]domain.Product),
		carts:     make(map[string]map[string]domain.CartItem),
		wishlists: make(map[string]map[string]domain.WishlistItem),
		orders:    make(map[string]domain.Order),
		markers:   make(map[string]struct{}),
	}
}

// state — копия состояния для отката транзакции. Значения в картах не изменяются на месте,
// поэтому достаточно скопировать сами карты.
type state struct {
	products  map[string]domain.Product
	carts     map[string]map[string]domain.CartItem
	wishlists map[string]map[string]domain.WishlistItem
	orders    map[string]domain.Order
	outbox    []usecase.OutboxEvent
	outboxSeq int64
	markers   map[string]struct{}
}

func (s *Store) save() state {
	st := state{
		products:  maps.Clone(s.products),
		carts:     make(map[string]map[string]domain.CartItem, len(s.carts)),
		wishlists: make(map[string]map[string]domain.WishlistItem, len(s.wishlists)),
		orders:    maps.Clone(s.orders),
		outbox:    append([]usecase.OutboxEvent(nil), s.outbox...),
		outboxSeq: s.outboxSeq,
		markers:   maps.Clone(s.markers),
	}
	for id, items := range s.carts {
		st.carts[id] = maps.Clone(items)
	}
	for id, items := range s.wishlists {
		st.wishlists[id] = maps.Clone(items)
	}
	return st
}

func (s *Store) restore(st state) {
	s.products = st.products
	s.carts = st.carts
	s.wishlists = st.wishlists
	s.orders = st.orders
	s.outbox = st.outbox
	s.outboxSeq = st.outboxSeq
	s.markers = st.markers
}

// run выполняет fn под блокировкой хранилища, если вызов не находится внутри транзакции.
func (s *Store) run(ctx context.Context, fn func() error) error {
	if _, ok := ctx.Value(txKey{}).(bool); ok {
		return fn()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// TxManager реализует usecase.TxManager поверх Store.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Do выполняет fn атомарно. При ошибке состояние хранилища возвращается к началу транзакции.
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(bool); ok {
		return fn(ctx)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	saved := m.store.save()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.store.restore(saved)
		return err
	}

	return nil
}
