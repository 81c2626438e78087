package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/apiclient"
	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/handler"
	"storefront/internal/menu"
	"storefront/internal/messages"
	"storefront/internal/middleware"
	"storefront/internal/query"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/view"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// sources bundles the catalogue and order backends selected by config.
type sources struct {
	dishes     query.DishSource
	categories query.CategorySource
	orders     query.OrderSource
	close      func()
}

// publisher is the event sink handed to the order service.
type publisher interface {
	service.EventPublisher
	Close() error
}

func run() error {
	// A missing .env file is fine; the environment still applies
	if err := godotenv.Overload(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("catalogue_source", cfg.Catalogue.Source).
		Strs("locales", cfg.Site.Locales).
		Msg("starting storefront")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := newSources(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer src.close()

	// Cached query layer
	cache := query.NewCache(cfg.Catalogue.CacheTTL)
	dishes := query.NewDishes(src.dishes, cache)
	categories := query.NewCategories(src.categories, cache)
	orders := query.NewOrders(src.orders, cache)

	// Message catalogues with S3 and local fallback
	bundle, err := messages.LoadBundle(ctx, newMessageLoader(ctx, cfg, logger), cfg.Site.Locales, cfg.Site.DefaultLocale, logger)
	if err != nil {
		return fmt.Errorf("failed to load message catalogues: %w", err)
	}

	renderer, err := view.New(bundle, menu.NewImageResolver(cfg.Site.PublicURL), cfg.Site.PublicURL, cfg.Site.Locales)
	if err != nil {
		return fmt.Errorf("failed to initialize templates: %w", err)
	}

	eventPublisher, err := newPublisher(cfg.Events, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close event publisher")
		}
	}()

	// Session carts live in memory until they expire
	store := cart.NewMemoryStore(cfg.Session.TTL)
	go store.RunSweeper(ctx, cfg.Session.SweepInterval, func(removed int) {
		logger.Debug().Int("removed", removed).Int("remaining", store.Len()).Msg("expired carts swept")
	})

	// Initialize services
	catalogueService := service.NewCatalogueService(dishes, categories, logger)
	cartService := service.NewCartService(store, dishes, logger)
	orderService := service.NewOrderService(orders, store, eventPublisher, logger)

	// Initialize HTTP handlers and router
	pages := handler.NewPageHandler(catalogueService, cartService, orderService, renderer, bundle, logger)
	mux := router.New(pages, router.Options{
		PublicURL: cfg.Site.PublicURL,
		Session: middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.SecureCookie,
		},
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

func newSources(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*sources, error) {
	switch cfg.Catalogue.Source {
	case config.SourcePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return &sources{
			dishes:     repository.NewDishRepository(pool, logger),
			categories: repository.NewCategoryRepository(pool, logger),
			orders:     repository.NewGuestOrderRepository(pool, logger),
			close:      pool.Close,
		}, nil
	default:
		client := apiclient.NewClient(cfg.API.BaseURL, cfg.API.Timeout, nil, logger)
		return &sources{
			dishes:     client,
			categories: client,
			orders:     client,
			close:      func() {},
		}, nil
	}
}

func newMessageLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) messages.Loader {
	fileLoader := messages.NewFileLoader(cfg.Messages.Dir, logger)
	if !cfg.S3.Enabled {
		logger.Info().Str("dir", cfg.Messages.Dir).Msg("using local file system for message catalogues (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := messages.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}
	return messages.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
}

func newPublisher(cfg config.EventsConfig, logger zerolog.Logger) (publisher, error) {
	if !cfg.Enabled {
		return events.NewNoopPublisher(logger), nil
	}
	p, err := events.Dial(cfg.URL, cfg.Exchange, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to event broker: %w", err)
	}
	return p, nil
}
