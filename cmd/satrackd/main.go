// The satrackd command runs the server-side analytics relay
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/wrale/wrale-analytics/internal/satrackd/config"
	relayhttp "github.com/wrale/wrale-analytics/internal/satrackd/http"
	"github.com/wrale/wrale-analytics/internal/satrackd/ratelimit"
	"github.com/wrale/wrale-analytics/internal/satrackd/ratelimit/memory"
	redisstore "github.com/wrale/wrale-analytics/internal/satrackd/ratelimit/redis"
	"github.com/wrale/wrale-analytics/pkg/analytics"
	"github.com/wrale/wrale-analytics/pkg/analytics/client"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before reading configuration")
	flag.Parse()

	// Structured JSON logging on stdout
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "satrackd").Logger()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("file", *envFile).Msg("failed to load env file")
	}

	// Load configuration
	var cfg *config.Config
	var err error

	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load config file")
		}
	} else {
		cfg, err = config.Load()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load configuration")
		}
	}

	level, _ := zerolog.ParseLevel(cfg.Log.Level)
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	if cfg.Tracking.Hostname == "" {
		logger.Warn().Msg("no default hostname configured; requests must pass one or will not be tracked")
	}

	handler, cleanup, err := setupHandler(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up relay")
	}
	defer cleanup()

	// Create HTTP server with timeouts and configuration
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine to allow for graceful shutdown
	go func() {
		logger.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("upstream", cfg.Proxy.Upstream).
			Msg("starting relay")

		var err error
		if cfg.Server.TLSCert != "" && cfg.Server.TLSKey != "" {
			err = server.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Set up graceful shutdown on interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	<-shutdown
	logger.Info().Msg("shutting down relay...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}

	logger.Info().Msg("relay stopped")
}

// setupHandler wires the dispatcher, tracker, rate limiter and upstream proxy
func setupHandler(cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	cleanup := func() {}

	dispatcher, err := client.NewClient(
		client.WithEndpoint(cfg.Tracking.Endpoint),
		client.WithTimeout(cfg.Tracking.Timeout),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, cleanup, err
	}

	tracker, err := analytics.New(cfg.Analytics(), dispatcher, logger)
	if err != nil {
		return nil, cleanup, err
	}

	// Rate limiting for the event endpoint
	var limiter ratelimit.Service
	if cfg.RateLimit.Rate > 0 {
		var store ratelimit.Store = memory.NewStore()
		if cfg.RateLimit.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.RateLimit.RedisAddr,
				Password: cfg.RateLimit.RedisPassword,
				DB:       cfg.RateLimit.RedisDB,
			})
			rs := redisstore.NewStore(rdb)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := rs.Ping(ctx); err != nil {
				_ = rdb.Close()
				return nil, cleanup, fmt.Errorf("connecting to redis at %s: %w", cfg.RateLimit.RedisAddr, err)
			}
			store = rs
			cleanup = func() { _ = rdb.Close() }
		}

		limiter = ratelimit.NewService(store, logger)
		if err := limiter.RegisterLimit(ratelimit.EventRelayLimit, ratelimit.Limit{
			Rate:      cfg.RateLimit.Rate,
			Period:    cfg.RateLimit.Period,
			BurstSize: cfg.RateLimit.BurstSize,
		}); err != nil {
			return nil, cleanup, err
		}
	}

	opts := relayhttp.Options{
		Defaults: cfg.TrackingOptions(),
		SkipBots: cfg.Tracking.SkipBots,
	}
	if cfg.Proxy.Upstream != "" {
		upstream, err := relayhttp.NewUpstream(cfg.Proxy.Upstream, logger)
		if err != nil {
			return nil, cleanup, err
		}
		opts.Upstream = upstream
	}

	return relayhttp.NewHandler(tracker, limiter, opts, logger).Router(), cleanup, nil
}
