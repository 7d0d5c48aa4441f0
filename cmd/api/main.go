// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/storefront/internal/auth"
	"github.com/carterperez-dev/storefront/internal/config"
	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/dashboard"
	"github.com/carterperez-dev/storefront/internal/health"
	"github.com/carterperez-dev/storefront/internal/kvstore"
	"github.com/carterperez-dev/storefront/internal/metrics"
	"github.com/carterperez-dev/storefront/internal/middleware"
	"github.com/carterperez-dev/storefront/internal/profile"
	"github.com/carterperez-dev/storefront/internal/server"
	"github.com/carterperez-dev/storefront/internal/session"
	"github.com/carterperez-dev/storefront/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"store_driver", cfg.Store.Driver,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewCollector(registry)

	backend, err := openStore(ctx, cfg, logger, registry)
	if err != nil {
		return err
	}
	defer backend.close(logger)

	store := kvstore.WithPrefix(backend.store, cfg.Store.KeyPrefix)

	generated, err := auth.EnsureKeyPair(cfg.JWT)
	if err != nil {
		return err
	}
	if generated {
		logger.Warn("generated a new client token signing key",
			"path", cfg.JWT.PrivateKeyPath,
		)
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	var google auth.IDTokenVerifier
	var googleVerifier *auth.GoogleVerifier
	if cfg.Auth.GoogleEnabled {
		googleVerifier, err = auth.NewGoogleVerifier(ctx, cfg.Auth)
		if err != nil {
			return err
		}
		google = googleVerifier
		logger.Info("google sign-in enabled",
			"jwks_url", cfg.Auth.GoogleJWKSURL,
			"refresh", cfg.Auth.GoogleJWKSRefresh,
		)
	}

	clientCfg := middleware.ClientConfig{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.CookieSecure,
	}

	sessions := session.NewRepository(store)
	profiles := profile.NewRepository(store)
	userSvc := user.NewService(user.NewRepository(store))

	authSvc := auth.NewService(userSvc, sessions, profiles, google, recorder, logger)
	authHandler := auth.NewHandler(authSvc, clientCfg)

	profileSvc := profile.NewService(profiles, sessions, recorder, logger)
	profileHandler := profile.NewHandler(profileSvc)

	dashboardSvc := dashboard.NewService(sessions, profiles, recorder, logger)
	dashboardHandler := dashboard.NewHandler(dashboardSvc, clientCfg)

	healthHandler := health.NewHandler(backend.checks...)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logger(logger))
	router.Use(metrics.Middleware(recorder))
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, metrics.Handler(registry))
	}

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	credentialLimiter := middleware.NewRateLimiter(
		ctx,
		backend.redisClient(),
		middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			KeyFunc:  middleware.KeyByClientAndEndpoint,
			FailOpen: true,
		},
	)

	router.Route("/v1", func(r chi.Router) {
		r.Use(middleware.ClientIdentifier(jwtManager, clientCfg))

		authHandler.RegisterRoutes(r, credentialLimiter.Handler)
		profileHandler.RegisterRoutes(r)
		dashboardHandler.RegisterRoutes(r)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if googleVerifier != nil {
		if err := googleVerifier.Close(shutdownCtx); err != nil {
			logger.Error("jwks cache shutdown error", "error", err)
		}
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
}

type storeBackend struct {
	store  kvstore.Store
	checks []health.Check
	redis  *core.Redis
	db     *core.Database
}

// openStore connects the configured key-value driver. Redis is also
// dialed for rate limiting whenever a URL is set.
func openStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	registry prometheus.Registerer,
) (*storeBackend, error) {
	b := &storeBackend{}

	if cfg.Redis.URL != "" {
		rdb, err := core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		b.redis = rdb
		b.checks = append(b.checks, health.Check{Name: rdb.Name(), Checker: rdb})
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	}

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		b.store = kvstore.NewMemory()
		logger.Warn("using the in-memory store; data is lost on restart")

	case config.StoreDriverRedis:
		b.store = kvstore.NewRedis(b.redis.Client)

	case config.StoreDriverPostgres:
		if cfg.Store.Migrate {
			if err := kvstore.Migrate(cfg.Database.URL); err != nil {
				b.close(logger)
				return nil, err
			}
			logger.Info("store migrations applied")
		}

		db, err := core.NewDatabase(ctx, cfg.Database)
		if err != nil {
			b.close(logger)
			return nil, err
		}
		b.db = db
		b.store = kvstore.NewPostgres(db.DB)
		b.checks = append(b.checks, health.Check{Name: db.Name(), Checker: db})
		registry.MustRegister(collectors.NewDBStatsCollector(db.DB.DB, "storefront"))
		logger.Info("database connected",
			"max_open_conns", cfg.Database.MaxOpenConns,
			"max_idle_conns", cfg.Database.MaxIdleConns,
		)

	default:
		b.close(logger)
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return b, nil
}

func (b *storeBackend) redisClient() *redis.Client {
	if b.redis == nil {
		return nil
	}
	return b.redis.Client
}

func (b *storeBackend) close(logger *slog.Logger) {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
