// Package auth — провайдер идентичности: разбор и выпуск JWT (HS256).
package auth

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/DRSN-tech/nest-store/internal/cfg"
	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const RoleAdmin = "admin"

// Claims — ожидаемые поля токена. sub — id пользователя.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret     []byte
	adminEmail string
	now        func() time.Time
}

func NewAuthenticator(cfg *cfg.AuthCfg) *Authenticator {
	return &Authenticator{
		secret:     []byte(cfg.JWTSecret),
		adminEmail: cfg.AdminEmail,
		now:        time.Now,
	}
}

// ParseToken проверяет подпись и срок действия токена.
func (a *Authenticator) ParseToken(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", e.ErrInvalidToken, err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Subject == "" {
		return nil, e.ErrInvalidToken
	}

	return claims, nil
}

// Identity переводит claims в идентичность. Администратор — роль admin или адрес ADMIN_EMAIL.
func (a *Authenticator) Identity(claims *Claims) domain.Identity {
	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if HasRole(claims.Roles, RoleAdmin) || (a.adminEmail != "" && email == a.adminEmail) {
		return domain.Admin(claims.Subject, email)
	}
	return domain.Customer(claims.Subject, email)
}

// IssueToken выпускает токен. Используется nestctl и тестами.
func (a *Authenticator) IssueToken(subject, email string, roles []string, ttl time.Duration) (string, error) {
	now := a.now()
	claims := Claims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", e.Wrap("auth.IssueToken", err)
	}

	return signed, nil
}

// GetBearerToken извлекает токен из заголовка Authorization.
func GetBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}

	return ""
}

func HasRole(userRoles []string, required string) bool {
	return slices.Contains(userRoles, required)
}
