// Package main is the entry point for the flight booking wizard service.
//
//	@title						Flight Booking Wizard API
//	@version					1.0.0
//	@description				Step-by-step flight booking: search a generated catalog, pick a flight, enter passengers and confirm.
//
//	@contact.name				API Support
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flight-search/flight-booking-wizard/docs"

	// Application layers
	"github.com/flight-search/flight-booking-wizard/internal/adapter/events/kafka"
	"github.com/flight-search/flight-booking-wizard/internal/adapter/events/rabbitmq"
	wizardhttp "github.com/flight-search/flight-booking-wizard/internal/adapter/http"
	"github.com/flight-search/flight-booking-wizard/internal/adapter/http/middleware"
	"github.com/flight-search/flight-booking-wizard/internal/adapter/render/pdf"
	"github.com/flight-search/flight-booking-wizard/internal/adapter/store/memory"
	redisstore "github.com/flight-search/flight-booking-wizard/internal/adapter/store/redis"
	"github.com/flight-search/flight-booking-wizard/internal/catalog"
	"github.com/flight-search/flight-booking-wizard/internal/config"
	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/logger"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/retry"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-booking-wizard/internal/usecase"
)

// startupTimeout bounds dialing the session store and event broker.
const startupTimeout = 30 * time.Second

// sessionStore is a SessionStore holding a connection to release on shutdown.
type sessionStore interface {
	domain.SessionStore
	io.Closer
}

func main() {
	cfg := config.MustLoad()

	appLog := setupLogger(cfg)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("session_store", cfg.Session.Store).
		Str("events_driver", cfg.Events.Driver).
		Msg("Configuration loaded")

	flights, err := buildCatalog(cfg.Catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build flight catalog")
	}
	log.Info().Int("flights", flights.Len()).Msg("Flight catalog generated")

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Failed to open session store")
	}

	publisher, err := newPublisher(ctx, cfg)
	cancel()
	if err != nil {
		_ = store.Close()
		log.Fatal().Err(err).Msg("Failed to connect event publisher")
	}

	wizard := usecase.NewWizard(usecase.NewSearchEngine(flights), timeutil.NewRealClock())
	service := usecase.NewBookingService(store, wizard, &usecase.ServiceConfig{
		Publisher:    publisher,
		PublishRetry: retry.DefaultConfig.WithMaxAttempts(cfg.Events.RetryAttempts).WithRetryIf(retry.SkipPermanent),
		Logger:       appLog,
	})

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.SetupWithConfig(e, appLog.Logger, middleware.RecoveryConfig{
		DisablePrintStack: cfg.IsProduction(),
	})

	setupRoutes(e, service, appLog)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, cfg.Server.ShutdownTimeout, publisher, store)
}

// setupLogger builds the application logger and installs it as the global zerolog logger.
func setupLogger(cfg *config.Config) *logger.Logger {
	l := logger.New(cfg.Logging)
	logger.SetGlobal(l)
	return l
}

// buildCatalog generates the flight catalog from the YAML config or the defaults.
func buildCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	genCfg := catalog.DefaultConfig()
	if cfg.Path != "" {
		loaded, err := catalog.LoadFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		genCfg = loaded
	}

	if err := genCfg.Validate(); err != nil {
		return nil, fmt.Errorf("catalog config: %w", err)
	}

	return catalog.Build(genCfg, catalog.NewRandomSource(uint64(cfg.Seed))), nil
}

// newSessionStore opens the configured session store.
func newSessionStore(ctx context.Context, cfg *config.Config) (sessionStore, error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		store, err := retry.DoWithResult(ctx, func() (*redisstore.Store, error) {
			return redisstore.New(ctx, redisstore.Config{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
				TTL:      cfg.Session.TTL,
			})
		}, retry.ConnectConfig)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return memory.New(memory.WithTTL(cfg.Session.TTL)), nil
	}
}

// newPublisher connects the configured booking event publisher.
func newPublisher(ctx context.Context, cfg *config.Config) (domain.EventPublisher, error) {
	switch cfg.Events.Driver {
	case config.EventsKafka:
		p, err := kafka.NewPublisher(kafka.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.EventsRabbitMQ:
		p, err := rabbitmq.NewPublisher(ctx, rabbitmq.Config{
			URL:   cfg.RabbitMQ.URL,
			Queue: cfg.RabbitMQ.Queue,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return domain.NopPublisher{}, nil
	}
}

// setupRoutes configures the HTTP routes.
func setupRoutes(e *echo.Echo, service usecase.BookingService, appLog *logger.Logger) {
	handler := wizardhttp.NewWizardHandler(service, pdf.NewRenderer(), appLog)
	wizardhttp.RegisterRoutes(e, handler)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals,
// then releases the publisher and session store.
func gracefulShutdown(e *echo.Echo, timeout time.Duration, closers ...io.Closer) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg("Error releasing resource")
		}
	}

	log.Info().Msg("Server stopped")
}
