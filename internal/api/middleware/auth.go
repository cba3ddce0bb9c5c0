package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/vidshare/platform/internal/core/domain"
)

const identityKey = "identity"

// TokenVerifier resolves a bearer token to the identity it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// AuthConfig configures the token middleware.
type AuthConfig struct {
	// Skipper leaves matching requests untouched.
	Skipper  echomiddleware.Skipper
	Verifier TokenVerifier
	// Lenient lets requests with a malformed, expired or revoked token through
	// as anonymous instead of rejecting them with 401.
	Lenient  bool
}

// Auth resolves the bearer token, when present, and injects the identity into
// the context. Requests without an Authorization header pass through as
// anonymous; a malformed, expired or revoked token is rejected with 401.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return AuthWithConfig(AuthConfig{Verifier: verifier})
}

// AuthWithConfig returns the token middleware for cfg. Verifier failures
// other than an invalid token are returned as is, whatever cfg.Lenient says.
func AuthWithConfig(cfg AuthConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = echomiddleware.DefaultSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				if cfg.Lenient {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := cfg.Verifier.Verify(c.Request().Context(), parts[1])
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthenticated) {
					return err
				}
				if cfg.Lenient {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// RequireAuth rejects requests that carry no identity.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Identity(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// Identity returns the identity injected by Auth, or nil for anonymous requests.
func Identity(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}
