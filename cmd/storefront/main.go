package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/shopify"
)

// Long enough that a returning shopper finds their cart again.
const sessionCookieMaxAge = 30 * 24 * time.Hour

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("storefront stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var database *sql.DB
	if cfg.DatabaseDSN != "" {
		if cfg.RunMigrations {
			if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
		}
		var err error
		database, err = db.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer database.Close()
	}

	var store cart.Store = cart.NewMemoryStore()
	if cfg.Cart.Store == "postgres" {
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = cart.NewPostgresStore(pool)
	}

	// Upstream client (shared)
	upstream, err := shopify.NewClient(shopify.Options{
		StoreDomain: cfg.Shopify.StoreDomain,
		AccessToken: cfg.Shopify.AccessToken,
		APIVersion:  cfg.Shopify.APIVersion,
		HTTP:        &http.Client{Timeout: cfg.UpstreamTimeout},
	})
	if err != nil {
		return fmt.Errorf("storefront api client: %w", err)
	}
	if !upstream.Configured() {
		logger.Warn("storefront api credentials missing, serving fallback catalog and failing cart calls")
	}

	cartOpts := []cart.ClientOption{
		cart.WithExpiryPolicy(cart.PolicyByName(cfg.Cart.ExpiryPolicy)),
		cart.WithLogger(logger),
	}
	if cfg.RabbitMQURL != "" {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		var sequences events.SequenceRepository
		if database != nil {
			sequences = events.NewSequenceRepository(database)
		}
		publisher, err := events.NewPublisher(conn, sequences, events.PublisherOptions{Producer: cfg.EventProducer})
		if err != nil {
			return fmt.Errorf("create cart publisher: %w", err)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("publisher close", zap.Error(err))
			}
		}()
		cartOpts = append(cartOpts, cart.WithEvents(publisher))
	}

	carts := cart.NewClient(upstream, store, cartOpts...)
	sessions := cart.NewRegistry(carts, cfg.Cart.SessionTTL, logger)
	products := catalog.NewService(upstream, cfg.Catalog.CacheTTL, logger)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:           logger,
		Catalog:          products,
		Sessions:         sessions,
		Upstream:         upstream,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		SessionCookie: middleware.SessionCookie{
			Name:   cfg.Cart.SessionCookie,
			Secure: cfg.Cart.SecureCookie,
			MaxAge: sessionCookieMaxAge,
		},
		PageSize: cfg.Catalog.PageSize,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sessions.Run(gctx) })
	g.Go(func() error { return products.Run(gctx) })
	g.Go(func() error {
		logger.Info("storefront listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown error", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}
