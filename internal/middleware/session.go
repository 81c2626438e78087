package middleware

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/apiclient"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccessTokenCookie is the cookie holding the backend token of a signed-in guest.
const AccessTokenCookie = "accessToken"

type sessionKey struct{}

// SessionConfig configures the guest session cookie.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// GuestSession ensures every request carries a guest session id, issuing a
// new cookie when the request has none or an invalid one.
func GuestSession(cfg SessionConfig, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(cfg.CookieName); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}

			if id == "" {
				id = uuid.NewString()
				logger.Debug().Str("path", r.URL.Path).Msg("issuing guest session")
			}

			// Refresh on every request so the cookie lives as long as the cart.
			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

// WithSessionID returns a context carrying the guest session id.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionID returns the guest session id stored by GuestSession.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// AccessToken forwards the accessToken cookie to backend calls made while
// serving the request.
func AccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
			r = r.WithContext(apiclient.WithAccessToken(r.Context(), c.Value))
		}
		next.ServeHTTP(w, r)
	})
}
