package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rumibeauty/storefront/pkg/database"
	"github.com/rumibeauty/storefront/pkg/health"
	"github.com/rumibeauty/storefront/pkg/httpclient"
	pkgkafka "github.com/rumibeauty/storefront/pkg/kafka"
	"github.com/rumibeauty/storefront/pkg/middleware"
	"github.com/rumibeauty/storefront/pkg/tracing"

	"github.com/rumibeauty/storefront/internal/admin"
	"github.com/rumibeauty/storefront/internal/advisor"
	"github.com/rumibeauty/storefront/internal/cart"
	"github.com/rumibeauty/storefront/internal/catalog"
	"github.com/rumibeauty/storefront/internal/config"
	"github.com/rumibeauty/storefront/internal/event"
	"github.com/rumibeauty/storefront/internal/gateway"
	handler "github.com/rumibeauty/storefront/internal/handler/http"
	"github.com/rumibeauty/storefront/internal/ledger"
	"github.com/rumibeauty/storefront/internal/notice"
	"github.com/rumibeauty/storefront/internal/session"
	"github.com/rumibeauty/storefront/internal/storage"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
	traceStop  func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	app := &App{cfg: cfg, logger: logger}
	healthHandler := health.NewHandler()

	// Tracing.
	if cfg.OTELEnabled {
		stop, err := tracing.InitTracer(ctx, tracing.Config{
			ServiceName:  "storefront",
			Environment:  cfg.Environment,
			OTLPEndpoint: cfg.OTELEndpoint,
			SampleRate:   cfg.OTELSampleRate,
			Enabled:      true,
		})
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		app.traceStop = stop
	}

	// Catalog gateway.
	var catalogGateway catalog.Gateway
	if cfg.CatalogGateway == "postgres" {
		pgCfg := database.DefaultPostgresConfig()
		pgCfg.Host = cfg.PostgresHost
		pgCfg.Port = cfg.PostgresPort
		pgCfg.User = cfg.PostgresUser
		pgCfg.Password = cfg.PostgresPass
		pgCfg.DBName = cfg.PostgresDB
		pgCfg.SSLMode = cfg.PostgresSSL

		pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		app.pool = pool
		catalogGateway = gateway.NewPostgresGateway(pool)
		healthHandler.Register("postgres", func(ctx context.Context) error {
			return pool.Ping(ctx)
		})
	} else {
		catalogGateway = gateway.NewMemoryGateway()
		logger.Info("using in-memory catalog gateway")
	}

	// Session store.
	var sessions session.Store
	sessionTTL := time.Duration(cfg.SessionTTLHrs) * time.Hour
	if cfg.SessionStore == "redis" {
		rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		app.rdb = rdb
		sessions = session.NewRedisStore(rdb, sessionTTL)
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr()))
	} else {
		sessions = session.NewMemoryStore()
		logger.Info("using in-memory session store")
	}

	// Domain events.
	var catalogEvents catalog.Events
	var cartEvents cart.Events
	if cfg.KafkaEnabled {
		app.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		producer := event.NewProducer(app.producer, logger)
		catalogEvents = producer
		cartEvents = producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		catalogEvents = event.Nop{}
		cartEvents = event.Nop{}
	}

	// Outbound HTTP clients.
	baseClient := httpclient.New(httpclient.DefaultConfig())

	var chatClient advisor.ChatClient
	if cfg.ChatClient == "http" {
		cb := httpclient.NewCircuitBreakerClient(baseClient, httpclient.DefaultCircuitBreakerConfig("chat"), logger)
		chatClient = advisor.NewHTTPClient(cb, cfg.ChatAPIURL, cfg.ChatModel)
	} else {
		chatClient = advisor.NewScriptedClient()
		logger.Info("using scripted chat client")
	}

	var objects storage.ObjectStore
	if cfg.ObjectStore == "http" {
		cb := httpclient.NewCircuitBreakerClient(baseClient, httpclient.DefaultCircuitBreakerConfig("storage"), logger)
		objects = storage.NewHTTPStore(cb, cfg.StorageAPIURL)
	} else {
		objects = storage.NewMemoryStore()
		logger.Info("using in-memory object store")
	}

	// Build the dependency graph.
	notices := notice.NewRecorder(0)
	purchases := ledger.New(sessions)
	catalogService := catalog.NewService(catalogGateway, notices, catalogEvents, purchases, logger)
	catalogService.Load(ctx)

	cartService := cart.NewService(sessions, catalogService, cartEvents, logger)
	advisorService := advisor.NewService(chatClient, catalogService, logger)
	auth := admin.NewAuthenticator(
		cfg.AdminEmail,
		cfg.AdminPasswordHash,
		cfg.AdminJWTSecret,
		time.Duration(cfg.AdminTokenMins)*time.Minute,
	)

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(handler.RouterConfig{
		Catalog:        catalogService,
		Cart:           cartService,
		Advisor:        advisorService,
		Auth:           auth,
		Sessions:       sessions,
		Ledger:         purchases,
		Notices:        notices,
		Objects:        objects,
		Health:         healthHandler,
		CORS:           corsCfg,
		WhatsAppNumber: cfg.WhatsAppNumber,
		UploadBucket:   cfg.StorageBucket,
		AdvisorRPS:     cfg.AdvisorRPS,
		AdvisorBurst:   cfg.AdvisorBurst,
		Logger:         logger,
	})

	app.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // streaming advisor replies must not be cut off
		IdleTimeout:  60 * time.Second,
	}

	return app, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if a.pool != nil {
		a.pool.Close()
	}

	if a.traceStop != nil {
		if err := a.traceStop(shutdownCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
