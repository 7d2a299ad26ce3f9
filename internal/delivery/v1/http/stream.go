package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
)

const keepAliveInterval = 15 * time.Second

// serveStream отдает подписку как Server-Sent Events. В очереди хранится только последнее
// значение: медленный клиент получает актуальное состояние, а не всю историю.
// Поток завершается при отключении клиента или когда подписку сняли (например, новым потоком того же scope).
func serveStream[T any, R any](
	w http.ResponseWriter,
	r *http.Request,
	log logger.Logger,
	subscribe func(onChange func(T)) (live.Subscription, error),
	toResponse func(T) R,
) {
	updates := make(chan T, 1)
	push := func(v T) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- v:
		default:
		}
	}

	sub, err := subscribe(push)
	if err != nil {
		log.Warnf("Stream %s rejected: %v", r.URL.Path, err)
		WriteError(w, err)
		return
	}
	defer sub.Unsubscribe()

	rc := http.NewResponseController(w)
	// сервер ограничивает время записи, для потока это снимается
	_ = rc.SetWriteDeadline(time.Time{})

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	_ = rc.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub.Done():
			fmt.Fprint(w, "event: closed\ndata: {}\n\n")
			_ = rc.Flush()
			return
		case v := <-updates:
			data, err := json.Marshal(toResponse(v))
			if err != nil {
				log.Errorf(err, "Failed to encode stream update for %s", r.URL.Path)
				return
			}
			if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
