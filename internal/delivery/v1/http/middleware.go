package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/DRSN-tech/nest-store/internal/auth"
	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	// CartIDHeader — идентификатор анонимной корзины, выдается сервером.
	CartIDHeader = "X-Cart-ID"

	accessTokenQuery = "access_token"
	cartIDQuery      = "cart_id"
)

type identityCtxKey struct{}

// Identity кладет в контекст идентичность запроса. EventSource не умеет слать заголовки,
// поэтому токен и id корзины принимаются и из query.
func Identity(authn *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.GetBearerToken(r)
			if token == "" {
				token = r.URL.Query().Get(accessTokenQuery)
			}

			var identity domain.Identity
			if token != "" {
				claims, err := authn.ParseToken(token)
				if err != nil {
					WriteError(w, err)
					return
				}
				identity = authn.Identity(claims)
			} else {
				identity = domain.Anonymous(anonymousCartID(r))
			}

			ctx := context.WithValue(r.Context(), identityCtxKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func anonymousCartID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(CartIDHeader)); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL.Query().Get(cartIDQuery))
}

// IdentityFrom возвращает идентичность запроса. Без middleware — анонимный посетитель без корзины.
func IdentityFrom(ctx context.Context) domain.Identity {
	identity, _ := ctx.Value(identityCtxKey{}).(domain.Identity)
	return identity
}

// cartOwner возвращает владельца корзины. Анонимному посетителю без корзины выдается новый id.
func cartOwner(w http.ResponseWriter, r *http.Request) domain.Identity {
	identity := IdentityFrom(r.Context())
	if !identity.IsAuthenticated() && identity.ID == "" {
		identity = domain.Anonymous(uuid.NewString())
	}
	if !identity.IsAuthenticated() {
		w.Header().Set(CartIDHeader, identity.ID)
	}
	return identity
}

// RequestLogger пишет строку лога на каждый запрос.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			msg := "%s %s %d %dB %s request_id=%s"
			args := []any{r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context())}
			if status >= http.StatusInternalServerError {
				log.Warnf(msg, args...)
				return
			}
			log.Debugf(msg, args...)
		})
	}
}
