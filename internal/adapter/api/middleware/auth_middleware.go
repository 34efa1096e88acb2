package middleware

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
)

const (
	ContextKeyUID      = "uid"
	ContextKeyIdentity = "identity"
	ClientIDHeader     = "X-Client-ID"
)

// TokenVerifier checks a Firebase ID token. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	userRepo repository.UserRepository
}

func NewAuthMiddleware(verifier TokenVerifier, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		userRepo: userRepo,
	}
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return errors.Unauthorized("Authorization header is required", nil)
		}

		identity, err := m.Identify(c.Request().Context(), token)
		if err != nil {
			return errors.Unauthorized("Invalid or expired token", err)
		}

		setIdentity(c, identity)
		return next(c)
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets anonymous requests through.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token := bearerToken(c); token != "" {
			if identity, err := m.Identify(c.Request().Context(), token); err == nil {
				setIdentity(c, identity)
			}
		}
		return next(c)
	}
}

// Identify verifies token and builds the caller's identity from its claims and user record.
func (m *AuthMiddleware) Identify(ctx context.Context, idToken string) (*entity.Identity, error) {
	token, err := m.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	identity := &entity.Identity{
		ID:       token.UID,
		Name:     claim(token.Claims, "name"),
		Email:    claim(token.Claims, "email"),
		PhotoURL: claim(token.Claims, "picture"),
	}
	if admin, ok := token.Claims["admin"].(bool); ok && admin {
		identity.IsAdmin = true
	}

	user, err := m.userRepo.GetByID(ctx, token.UID)
	switch {
	case err == nil:
		identity.IsAdmin = identity.IsAdmin || user.IsAdmin
		if identity.Name == "" {
			identity.Name = user.DisplayName
		}
		if identity.PhotoURL == "" {
			identity.PhotoURL = user.PhotoURL
		}
	case !errors.Is(err, errors.CodeNotFound):
		logger.Warn("Failed to load user record for %s: %v", token.UID, err)
	}
	return identity, nil
}

func claim(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}

// bearerToken reads the Authorization header, falling back to the token query
// parameter used by WebSocket clients.
func bearerToken(c echo.Context) string {
	if header := c.Request().Header.Get("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.QueryParam("token")
}

func setIdentity(c echo.Context, identity *entity.Identity) {
	c.Set(ContextKeyUID, identity.ID)
	c.Set(ContextKeyIdentity, identity)
}

// IdentityFrom returns the authenticated caller, or nil.
func IdentityFrom(c echo.Context) *entity.Identity {
	identity, _ := c.Get(ContextKeyIdentity).(*entity.Identity)
	return identity
}

// ClientID names the client whose local state a request reads and writes.
// WebSocket clients pass it as the client_id query parameter. Requests that
// carry no client id and no signed-in user yield "" and have no persisted state.
func ClientID(c echo.Context) string {
	if id := strings.TrimSpace(c.Request().Header.Get(ClientIDHeader)); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.QueryParam("client_id")); id != "" {
		return id
	}
	if uid, ok := c.Get(ContextKeyUID).(string); ok && uid != "" {
		return uid
	}
	return ""
}
