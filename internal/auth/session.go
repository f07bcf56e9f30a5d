package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// CookieName is the cookie carrying the session token for browser clients.
	CookieName = "session"

	claimsKey = "auth.claims"
)

// Sessions ties token issuing to revocation and exposes them to echo handlers.
type Sessions struct {
	tokens       *Tokens
	revocations  Revocations
	log          *slog.Logger
	secureCookie bool
}

func NewSessions(tokens *Tokens, revocations Revocations, log *slog.Logger, secureCookie bool) *Sessions {
	return &Sessions{
		tokens:       tokens,
		revocations:  revocations,
		log:          log,
		secureCookie: secureCookie,
	}
}

// Start issues a session token for the user.
func (s *Sessions) Start(userID, userName string) (string, *Claims, error) {
	return s.tokens.Issue(userID, userName)
}

// End revokes the session token until its natural expiry.
func (s *Sessions) End(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return nil
	}

	expiresAt := time.Now().Add(s.tokens.TTL())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return s.revocations.Revoke(ctx, claims.ID, expiresAt)
}

// Verify parses the token and rejects revoked ones.
func (s *Sessions) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	} else if revoked {
		return nil, fmt.Errorf("%w: revoked", ErrInvalidToken)
	}

	return claims, nil
}

// Middleware loads claims from the Authorization bearer token or the session cookie.
// Requests without a valid token pass through anonymously.
func (s *Sessions) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c.Request())
			if token == "" {
				return next(c)
			}

			claims, err := s.Verify(c.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, ErrInvalidToken) {
					s.log.Error("session verification failed", "error", err)
				}
				return next(c)
			}

			c.Set(claimsKey, claims)

			return next(c)
		}
	}
}

// SetCookie stores the token in an HTTP-only cookie.
func (s *Sessions) SetCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.tokens.TTL().Seconds()),
	})
}

func (s *Sessions) ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// ClaimsFrom returns claims stored by Middleware, nil for anonymous requests.
func ClaimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(claimsKey).(*Claims)
	return claims
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get(echo.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}

	return ""
}
