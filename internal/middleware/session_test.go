package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/apiclient"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestSession(t *testing.T) {
	cfg := SessionConfig{CookieName: "guest_session", TTL: 4 * time.Hour, Secure: true}
	existing := uuid.NewString()

	tests := []struct {
		name       string
		cookie     string
		expectSame bool
	}{
		{name: "Reuses a valid session", cookie: existing, expectSame: true},
		{name: "Replaces a tampered session", cookie: "../../etc/passwd"},
		{name: "Issues a new session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := GuestSession(cfg, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = SessionID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/en/guest/menu", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			_, err := uuid.Parse(seen)
			require.NoError(t, err)
			if tt.expectSame {
				assert.Equal(t, existing, seen)
			} else {
				assert.NotEqual(t, tt.cookie, seen)
			}

			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, cfg.CookieName, cookies[0].Name)
			assert.Equal(t, seen, cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
			assert.True(t, cookies[0].Secure)
			assert.Equal(t, "/", cookies[0].Path)
			assert.Equal(t, int((4 * time.Hour).Seconds()), cookies[0].MaxAge)
		})
	}
}

func TestSessionID_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, SessionID(req.Context()))
}

func TestAccessToken(t *testing.T) {
	tests := []struct {
		name     string
		cookie   *http.Cookie
		expected string
	}{
		{name: "Forwards cookie", cookie: &http.Cookie{Name: AccessTokenCookie, Value: "jwt-token"}, expected: "jwt-token"},
		{name: "Ignores other cookies", cookie: &http.Cookie{Name: "refreshToken", Value: "x"}},
		{name: "No cookie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := AccessToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = apiclient.AccessToken(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.expected, seen)
		})
	}
}
