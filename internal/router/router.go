package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// Options carries the settings the middleware chain needs.
type Options struct {
	PublicURL string
	Session   middleware.SessionConfig
}

// New creates a new HTTP router with all routes and middleware configured.
func New(pages *handler.PageHandler, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", pages.Health)
	mux.HandleFunc("GET /{$}", pages.Root)

	// Public catalogue pages
	mux.HandleFunc("GET /{locale}", pages.Localized(pages.Home))
	mux.HandleFunc("GET /{locale}/categories", pages.Localized(pages.Categories))
	mux.HandleFunc("GET /{locale}/categories/{slug}", pages.Localized(pages.Category))
	mux.HandleFunc("GET /{locale}/dishes/{slug}", pages.Localized(pages.Dish))

	// Guest ordering
	mux.HandleFunc("GET /{locale}/guest/menu", pages.Localized(pages.Menu))
	mux.HandleFunc("POST /{locale}/guest/menu/quantity", pages.Localized(pages.SetQuantity))
	mux.HandleFunc("POST /{locale}/guest/menu/order", pages.Localized(pages.PlaceOrder))
	mux.HandleFunc("GET /{locale}/guest/orders", pages.Localized(pages.Orders))

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> GuestSession -> AccessToken
	var h http.Handler = mux
	h = middleware.AccessToken(h)
	h = middleware.GuestSession(opts.Session, logger)(h)
	h = middleware.CORS(opts.PublicURL)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
