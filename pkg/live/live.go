// Package live реализует живые подписки: подписка с синхронной отпиской,
// реестр "одна активная подписка на scope" и внутрипроцессную ленту изменений.
package live

import (
	"context"
	"sync"
)

// Subscription — активная подписка. Unsubscribe синхронный и идемпотентный.
type Subscription interface {
	Unsubscribe()
	Done() <-chan struct{}
}

type subscription struct {
	once     sync.Once
	done     chan struct{}
	teardown func()
}

// NewSubscription создает подписку, teardown вызывается ровно один раз.
func NewSubscription(teardown func()) Subscription {
	return &subscription{
		done:     make(chan struct{}),
		teardown: teardown,
	}
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.teardown != nil {
			s.teardown()
		}
		close(s.done)
	})
}

func (s *subscription) Done() <-chan struct{} {
	return s.done
}

// Registry хранит не более одной активной подписки на scope.
type Registry struct {
	mu     sync.Mutex
	active map[string]Subscription
}

func NewRegistry() *Registry {
	return &Registry{active: make(map[string]Subscription)}
}

// Replace регистрирует подписку для scope, предварительно закрывая предыдущую.
func (r *Registry) Replace(scope string, sub Subscription) {
	r.mu.Lock()
	prev, ok := r.active[scope]
	r.active[scope] = sub
	r.mu.Unlock()

	if ok && prev != sub {
		prev.Unsubscribe()
	}
}

// Release закрывает подписку scope, если она всё ещё активна.
func (r *Registry) Release(scope string, sub Subscription) {
	r.mu.Lock()
	cur, ok := r.active[scope]
	if ok && cur == sub {
		delete(r.active, scope)
	}
	r.mu.Unlock()

	sub.Unsubscribe()
}

// Drop закрывает текущую подписку scope, если она есть.
func (r *Registry) Drop(scope string) {
	r.mu.Lock()
	cur, ok := r.active[scope]
	delete(r.active, scope)
	r.mu.Unlock()

	if ok {
		cur.Unsubscribe()
	}
}

// Forget убирает подписку из реестра, не закрывая ее. Вызывается из teardown самой подписки.
func (r *Registry) Forget(scope string, sub Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.active[scope]; ok && cur == sub {
		delete(r.active, scope)
	}
}

// Active возвращает число активных подписок.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// CloseAll закрывает все подписки (при остановке приложения).
func (r *Registry) CloseAll() {
	r.mu.Lock()
	subs := make([]Subscription, 0, len(r.active))
	for scope, sub := range r.active {
		subs = append(subs, sub)
		delete(r.active, scope)
	}
	r.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// LocalFeed — лента изменений внутри процесса. Обработчики вызываются синхронно в Publish.
type LocalFeed struct {
	mu       sync.RWMutex
	next     uint64
	handlers map[string]map[uint64]func()
}

func NewLocalFeed() *LocalFeed {
	return &LocalFeed{handlers: make(map[string]map[uint64]func())}
}

func (f *LocalFeed) Publish(_ context.Context, topic string) error {
	f.Dispatch(topic)
	return nil
}

// Dispatch вызывает обработчики topic. Список копируется, чтобы обработчик мог отписаться.
func (f *LocalFeed) Dispatch(topic string) {
	f.mu.RLock()
	hs := make([]func(), 0, len(f.handlers[topic]))
	for _, h := range f.handlers[topic] {
		hs = append(hs, h)
	}
	f.mu.RUnlock()

	for _, h := range hs {
		h()
	}
}

func (f *LocalFeed) Subscribe(topic string, fn func()) func() {
	f.mu.Lock()
	f.next++
	id := f.next
	if f.handlers[topic] == nil {
		f.handlers[topic] = make(map[uint64]func())
	}
	f.handlers[topic][id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers[topic], id)
		if len(f.handlers[topic]) == 0 {
			delete(f.handlers, topic)
		}
	}
}

// Topics возвращает число топиков с подписчиками.
func (f *LocalFeed) Topics() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.handlers)
}
