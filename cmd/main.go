package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	_ "github.com/sbilibin2017/gw-movie-streaming/docs"
	"github.com/sbilibin2017/gw-movie-streaming/internal/config"
	"github.com/sbilibin2017/gw-movie-streaming/internal/health"
	"github.com/sbilibin2017/gw-movie-streaming/internal/jwt"
	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
	"github.com/sbilibin2017/gw-movie-streaming/internal/metrics"
	"github.com/sbilibin2017/gw-movie-streaming/internal/middlewares"
	"github.com/sbilibin2017/gw-movie-streaming/internal/migrations"
	"github.com/sbilibin2017/gw-movie-streaming/internal/password"
	"github.com/sbilibin2017/gw-movie-streaming/internal/repositories"
	"github.com/sbilibin2017/gw-movie-streaming/internal/router"
	"github.com/sbilibin2017/gw-movie-streaming/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-movie-streaming API
// @version 1.0.0
// @description Movie streaming backend: accounts, watchlists, favorites and catalog browsing
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// run initializes the logger, database, Redis, Kafka, the gRPC health server
// and the HTTP server, and blocks until ctx is cancelled or a signal arrives.
func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Initialize(cfg.LogLevel, cfg.IsDevelopment()); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync()
	logger.Log.Infow("Logger initialized", "level", cfg.LogLevel, "env", cfg.AppEnv)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// PostgreSQL
	db, err := repositories.Connect(ctx, cfg.DatabaseURL, cfg.PGMaxOpenConns, cfg.PGMaxIdleConns, cfg.PGConnectAttempts)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	// Redis is optional; without it the auth endpoints are not rate limited.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Warnw("Redis is not reachable, rate limiter will fail open", "addr", cfg.RedisAddr, "error", err)
		}
	}

	// Kafka is optional; without brokers events are dropped with a warning.
	var events services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		kw := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           5 * time.Second,
		}
		defer func() {
			if err := kw.Close(); err != nil {
				logger.Log.Errorw("Failed to close Kafka writer", "error", err)
			}
		}()
		events = services.PublishAfterCommit(kw, middlewares.AfterCommit)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterMetrics(reg)

	handler, checker := newApp(db, rdb, events, cfg, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	lis, err := net.Listen("tcp", cfg.GRPCAddr())
	if err != nil {
		return fmt.Errorf("listen gRPC: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		checker.Run(gctx)
		return nil
	})

	g.Go(func() error {
		return health.Serve(gctx, lis, checker)
	})

	g.Go(func() error {
		logger.Log.Infow("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorw("HTTP server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Log.Info("Service stopped gracefully")
	return nil
}

// newApp wires repositories, services and the router.
func newApp(db *sqlx.DB, rdb *redis.Client, events services.KafkaWriter, cfg *config.Config, metricsHandler http.Handler) (http.Handler, *health.Checker) {
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecret), jwt.WithExpiration(cfg.JWTExpiration))
	hasher := password.NewHasher(cfg.BcryptCost, cfg.HashWorkers)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	movieReadRepo := repositories.NewMovieReadRepository(db)
	watchlistRepo := repositories.NewWatchlistRepository(db, middlewares.GetTxFromContext)
	favoritesRepo := repositories.NewFavoritesRepository(db, middlewares.GetTxFromContext)

	// the limiter must see a nil interface, not a nil *redis.Client
	var limiter redis.Scripter
	if rdb != nil {
		limiter = rdb
	}

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, hasher, tokens, events)
	accountService := services.NewAccountService(userReadRepo, userWriteRepo, hasher, watchlistRepo, favoritesRepo, events, cfg.ResetTokenTTL)
	watchlistService := services.NewWatchlistService(watchlistRepo, events)
	favoritesService := services.NewFavoritesService(favoritesRepo, events)
	movieService := services.NewMovieService(movieReadRepo)

	checker := health.NewChecker(db, cfg.HealthCheckInterval)

	handler := router.New(router.Services{
		Auth:      authService,
		Account:   accountService,
		Watchlist: watchlistService,
		Favorites: favoritesService,
		Movies:    movieService,
	}, router.Options{
		Tokener:            tokens,
		Users:              userReadRepo,
		DB:                 db,
		Redis:              limiter,
		RateLimitMax:       cfg.RateLimitMax,
		RateLimitWindow:    cfg.RateLimitWindow,
		TrustedProxies:     cfg.TrustedProxies,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:          cfg.StaticDir,
		Debug:              cfg.IsDevelopment(),
		Health:             checker,
		Metrics:            metricsHandler,
	})

	return handler, checker
}
