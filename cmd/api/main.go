// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/rossoverde/supporters/internal/admin"
	"github.com/rossoverde/supporters/internal/auth"
	"github.com/rossoverde/supporters/internal/charter"
	"github.com/rossoverde/supporters/internal/cms"
	"github.com/rossoverde/supporters/internal/config"
	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/gallery"
	"github.com/rossoverde/supporters/internal/guard"
	"github.com/rossoverde/supporters/internal/health"
	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/invoice"
	"github.com/rossoverde/supporters/internal/membership"
	"github.com/rossoverde/supporters/internal/middleware"
	"github.com/rossoverde/supporters/internal/news"
	"github.com/rossoverde/supporters/internal/notify"
	"github.com/rossoverde/supporters/internal/order"
	"github.com/rossoverde/supporters/internal/product"
	"github.com/rossoverde/supporters/internal/profile"
	"github.com/rossoverde/supporters/internal/server"
	"github.com/rossoverde/supporters/internal/tier"
	"github.com/rossoverde/supporters/internal/web"
)

const (
	drainDelay     = 5 * time.Second
	purgeInterval  = time.Hour
	metricsSubject = "rossoverde"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	flag.Parse()

	// A missing dotenv file is normal outside local development.
	_ = godotenv.Load(*envFile)

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

	if cfg.Database.AutoMigrate {
		if err := core.Migrate(cfg.Database.URL, "up"); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	if !cfg.IsProduction() {
		created, keyErr := auth.EnsureKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)
		if keyErr != nil {
			return keyErr
		}
		if created {
			logger.Warn("generated development signing keys",
				"path", cfg.JWT.PrivateKeyPath,
			)
		}
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.KeyID(),
	)

	metrics := middleware.NewMetrics(metricsSubject)
	mailer := notify.FromConfig(cfg.Email)
	preferences := i18n.NewPreferences(cfg.I18n, cfg.Web.SecureCookies)
	cookie := auth.CookieConfig{
		Name:   cfg.Web.SessionCookie,
		Secure: cfg.Web.SecureCookies,
	}

	authSvc := auth.NewService(
		auth.NewRepository(db.DB),
		auth.NewAccountRepository(db.DB),
		jwtManager,
		auth.NewRedisBlacklist(redis.Client),
		mailer,
	)
	authHandler := auth.NewHandler(authSvc, cookie)

	profileLoader := profile.NewLoader(
		profile.NewRepository(db.DB),
		profile.NewRedisCache(redis.Client, cfg.Profile.CacheTTL),
	)
	profileHandler := profile.NewHandler(profileLoader)
	routeGuard := guard.New(profileLoader, metrics)

	tierSvc := tier.NewService(tier.NewRepository(db.DB))
	productSvc := product.NewService(product.NewRepository(db.DB))
	membershipSvc := membership.NewService(membership.NewRepository(db.DB))
	orderSvc := order.NewService(order.NewRepository(db.DB), membershipSvc, mailer)
	invoiceSvc := invoice.NewService(invoice.NewRepository(db.DB), orderSvc)
	newsSvc := news.NewService(news.NewRepository(db.DB))
	gallerySvc := gallery.NewService(gallery.NewRepository(db.DB))
	cmsSvc := cms.NewService(cms.NewRepository(db.DB))
	charterSvc := charter.NewService(charter.NewRepository(db.DB))

	tierHandler := tier.NewHandler(tierSvc)
	productHandler := product.NewHandler(productSvc)
	membershipHandler := membership.NewHandler(membershipSvc)
	orderHandler := order.NewHandler(orderSvc)
	invoiceHandler := invoice.NewHandler(invoiceSvc)
	newsHandler := news.NewHandler(newsSvc)
	galleryHandler := gallery.NewHandler(gallerySvc)
	cmsHandler := cms.NewHandler(cmsSvc)
	charterHandler := charter.NewHandler(charterSvc)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Members:     profileLoader,
		Memberships: membershipSvc,
		Orders:      orderSvc,
		DBStats:     db.Stats,
		RedisStats:  redis.PoolStats,
		DBPing:      db.Ping,
		RedisPing:   redis.Ping,
	})

	webHandler, err := web.NewHandler(web.Config{
		Tiers:       tierSvc,
		Products:    productSvc,
		News:        newsSvc,
		Gallery:     gallerySvc,
		Content:     cmsSvc,
		Charter:     charterSvc,
		Sessions:    authSvc,
		Guard:       routeGuard,
		Preferences: preferences,
		Cookie:      cookie,
	})
	if err != nil {
		return err
	}

	csrf, err := middleware.CSRF(cfg.Web)
	if err != nil {
		return err
	}

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(metrics.Handler)
	router.Use(preferences.Middleware)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.Limit(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			Skip:     middleware.SkipProbes,
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.JWKSHandler())
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, metrics.Exposition())
	}

	authenticator := middleware.Authenticator(authSvc, cfg.Web.SessionCookie)
	authLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.Limit(
			cfg.RateLimit.AuthRequests,
			cfg.RateLimit.AuthBurst,
			cfg.RateLimit.Window,
		),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
	})
	requireSession := routeGuard.Require(guard.RequireSession, guard.APIResponder{})
	requireAdmin := routeGuard.Require(guard.RequireAdmin, guard.APIResponder{})

	router.Route("/v1", func(r chi.Router) {
		r.Post("/language", preferences.Switch)

		tierHandler.RegisterRoutes(r)
		productHandler.RegisterRoutes(r)
		newsHandler.RegisterRoutes(r)
		galleryHandler.RegisterRoutes(r)
		cmsHandler.RegisterRoutes(r)
		charterHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Handler)
			authHandler.RegisterRoutes(r, authenticator)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(requireSession)

			profileHandler.RegisterRoutes(r)
			membershipHandler.RegisterRoutes(r)
			orderHandler.RegisterRoutes(r)
			invoiceHandler.RegisterRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(requireAdmin)

			profileHandler.RegisterRPC(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticator)
			r.Use(requireAdmin)

			profileHandler.RegisterAdminRoutes(r)
			tierHandler.RegisterAdminRoutes(r)
			membershipHandler.RegisterAdminRoutes(r)
			productHandler.RegisterAdminRoutes(r)
			orderHandler.RegisterAdminRoutes(r)
			newsHandler.RegisterAdminRoutes(r)
			galleryHandler.RegisterAdminRoutes(r)
			cmsHandler.RegisterAdminRoutes(r)
			charterHandler.RegisterAdminRoutes(r)
			adminHandler.RegisterAdminRoutes(r)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(csrf)
		r.Use(middleware.OptionalAuth(authSvc, cfg.Web.SessionCookie))
		webHandler.RegisterRoutes(r)
	})

	go purgeExpiredSessions(ctx, authSvc, logger)

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

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// purgeExpiredSessions drops expired refresh tokens until ctx is done.
func purgeExpiredSessions(ctx context.Context, svc *auth.Service, logger *slog.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.PurgeExpired(ctx)
			if err != nil {
				logger.Error("purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("purged expired sessions", "count", n)
			}
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
