package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/testutil"
	"swapdmarket/pkg/errors"
)

type fakeVerifier map[string]*auth.Token

func (f fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if token, ok := f[idToken]; ok {
		return token, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func newAuth() *AuthMiddleware {
	verifier := fakeVerifier{
		"good":  {UID: "u1", Claims: map[string]interface{}{"email": "ann@example.com", "name": "Ann"}},
		"admin": {UID: "boss", Claims: map[string]interface{}{}},
	}
	users := &testutil.Users{Users: []entity.User{{ID: "boss", IsAdmin: true, DisplayName: "The Boss"}}}
	return NewAuthMiddleware(verifier, users)
}

func serve(mw echo.MiddlewareFunc, req *http.Request) (echo.Context, *entity.Identity, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var seen *entity.Identity
	err := mw(func(c echo.Context) error {
		seen = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return c, seen, err
}

func TestAuthenticate(t *testing.T) {
	m := newAuth()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	_, identity, err := serve(m.Authenticate, req)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "u1", identity.ID)
	assert.Equal(t, "Ann", identity.Name)
	assert.False(t, identity.IsAdmin)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	_, _, err = serve(m.Authenticate, req)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged")
	_, _, err = serve(m.Authenticate, req)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestAuthenticate_TokenQueryAndAdminRecord(t *testing.T) {
	m := newAuth()

	req := httptest.NewRequest(http.MethodGet, "/ws?token=admin", nil)
	_, identity, err := serve(m.Authenticate, req)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin)
	assert.Equal(t, "The Boss", identity.Name)
}

func TestOptionalAuth(t *testing.T) {
	m := newAuth()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged")
	_, identity, err := serve(m.OptionalAuth, req)
	require.NoError(t, err)
	assert.Nil(t, identity)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	_, identity, err = serve(m.OptionalAuth, req)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.ID)
}

func TestAdminOnly(t *testing.T) {
	m := newAuth()
	chain := func(next echo.HandlerFunc) echo.HandlerFunc { return m.Authenticate(AdminOnly(next)) }

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	_, _, err := serve(chain, req)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer admin")
	_, _, err = serve(chain, req)
	assert.NoError(t, err)
}

func TestClientID(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ClientIDHeader, "tab-123")
	assert.Equal(t, "tab-123", ClientID(e.NewContext(req, httptest.NewRecorder())))

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, ClientID(c))
	c.Set(ContextKeyUID, "u1")
	assert.Equal(t, "u1", ClientID(c))
}

type countingLimiter struct{ left int }

func (l *countingLimiter) Allow(key, action string) (bool, time.Duration) {
	if l.left == 0 {
		return false, 3 * time.Second
	}
	l.left--
	return true, 0
}

func TestRateLimit(t *testing.T) {
	mw := RateLimit(&countingLimiter{left: 1}, "public_api")

	c, _, err := serve(mw, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Empty(t, c.Response().Header().Get("Retry-After"))

	c, _, err = serve(mw, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, errors.Is(err, errors.CodeTooManyRequests))
	assert.Equal(t, "4", c.Response().Header().Get("Retry-After"))
}
