package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DRSN-tech/nest-store/internal/cfg"
	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth() *Authenticator {
	return NewAuthenticator(&cfg.AuthCfg{JWTSecret: "test-secret", AdminEmail: "boss@nest.test"})
}

func TestIssueAndParseToken(t *testing.T) {
	a := newAuth()

	token, err := a.IssueToken("user-1", "Ana@Example.com", nil, time.Hour)
	require.NoError(t, err)

	claims, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	identity := a.Identity(claims)
	assert.Equal(t, domain.RoleCustomer, identity.Role)
	assert.Equal(t, "ana@example.com", identity.Email)
}

func TestIdentityAdminRules(t *testing.T) {
	a := newAuth()

	byRole := a.Identity(&Claims{Roles: []string{"admin"}, RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}})
	assert.True(t, byRole.IsAdmin())

	byEmail := a.Identity(&Claims{Email: "BOSS@nest.test", RegisteredClaims: jwt.RegisteredClaims{Subject: "u2"}})
	assert.True(t, byEmail.IsAdmin())

	plain := a.Identity(&Claims{Email: "x@nest.test", Roles: []string{"viewer"}, RegisteredClaims: jwt.RegisteredClaims{Subject: "u3"}})
	assert.False(t, plain.IsAdmin())
}

func TestParseTokenRejects(t *testing.T) {
	a := newAuth()

	expired, err := a.IssueToken("user-1", "a@b.c", nil, -time.Minute)
	require.NoError(t, err)
	_, err = a.ParseToken(expired)
	assert.ErrorIs(t, err, e.ErrInvalidToken)

	foreign, err := NewAuthenticator(&cfg.AuthCfg{JWTSecret: "other"}).IssueToken("user-1", "a@b.c", nil, time.Hour)
	require.NoError(t, err)
	_, err = a.ParseToken(foreign)
	assert.ErrorIs(t, err, e.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = a.ParseToken(none)
	assert.ErrorIs(t, err, e.ErrInvalidToken)

	noSubject, err := a.IssueToken("", "a@b.c", nil, time.Hour)
	require.NoError(t, err)
	_, err = a.ParseToken(noSubject)
	assert.ErrorIs(t, err, e.ErrInvalidToken)
}

func TestGetBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, GetBearerToken(r))

	r.Header.Set("Authorization", "bearer abc.def")
	assert.Equal(t, "abc.def", GetBearerToken(r))

	r.Header.Set("Authorization", "Basic xyz")
	assert.Empty(t, GetBearerToken(r))
}
