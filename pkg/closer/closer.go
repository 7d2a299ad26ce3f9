// Package closer закрывает ресурсы приложения в обратном порядке их открытия.
package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

type resource struct {
	name  string
	close Func
}

// Closer обеспечивает потокобезопасное закрытие ресурсов.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	resources     []resource
	forcedTimeout time.Duration
	onClosed      func(name string, took time.Duration, err error)
}

// NewCloser создает Closer. forcedTimeout — время на принудительное закрытие того,
// что не успело закрыться до отмены контекста Close.
func NewCloser(forcedTimeout time.Duration) *Closer {
	const defaultForcedTimeout = 2 * time.Second

	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// OnClosed задает обработчик, который вызывается после закрытия каждого ресурса (для логов).
func (c *Closer) OnClosed(fn func(name string, took time.Duration, err error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onClosed = fn
}

// Add регистрирует ресурс. Закрываются в порядке, обратном добавлению.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources = append(c.resources, resource{name: name, close: f})
}

// AddFunc регистрирует функцию закрытия без контекста и ошибки.
func (c *Closer) AddFunc(name string, f func()) {
	c.Add(name, func(context.Context) error {
		f()
		return nil
	})
}

// Close закрывает ресурсы по одному (LIFO). Повторный вызов ничего не делает.
// Если ctx отменяется раньше, оставшиеся ресурсы закрываются параллельно с forcedTimeout.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		resources := c.resources
		c.mu.Unlock()

		remaining, errs := c.gracefulClose(ctx, resources)
		if len(remaining) == 0 {
			if len(errs) > 0 {
				err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
			}
			return
		}

		errs = append(errs, c.forcedClose(remaining)...)
		err = fmt.Errorf(
			"shutdown interrupted after %d/%d resources:\n%s",
			len(resources)-len(remaining),
			len(resources),
			strings.Join(errs, "\n"),
		)
	})

	return err
}

// gracefulClose возвращает ресурсы, до которых не дошла очередь, и ошибки закрытия.
// Ресурс, прерванный отменой ctx, считается незакрытым.
func (c *Closer) gracefulClose(ctx context.Context, resources []resource) ([]resource, []string) {
	var errs []string
	for i := len(resources) - 1; i >= 0; i-- {
		r := resources[i]
		done := make(chan error, 1)
		start := time.Now()

		go func() {
			done <- r.close(ctx)
		}()

		select {
		case err := <-done:
			c.report(r.name, time.Since(start), err)
			if err != nil {
				errs = append(errs, fmt.Sprintf("[!] %s: %v", r.name, err))
			}
		case <-ctx.Done():
			return resources[:i+1], errs
		}
	}

	return nil, errs
}

// forcedClose параллельно закрывает оставшиеся ресурсы с собственным таймаутом.
func (c *Closer) forcedClose(resources []resource) []string {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []string
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, r := range resources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			err := r.close(ctx)
			c.report(r.name, time.Since(start), err)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("[FORCED] %s: %v", r.name, err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}

func (c *Closer) report(name string, took time.Duration, err error) {
	c.mu.Lock()
	fn := c.onClosed
	c.mu.Unlock()

	if fn != nil {
		fn(name, took, err)
	}
}
