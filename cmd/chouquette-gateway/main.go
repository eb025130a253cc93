// chouquette-gateway serves the GraphQL API of the chouquette.ch frontend,
// aggregating the WordPress REST endpoints behind it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"chouquette-gateway/internal/cache"
	"chouquette-gateway/internal/config"
	"chouquette-gateway/internal/datasource"
	"chouquette-gateway/internal/logging"
	"chouquette-gateway/internal/metrics"
	"chouquette-gateway/internal/ratelimit"
	"chouquette-gateway/internal/resolver"
	"chouquette-gateway/internal/schema"
	"chouquette-gateway/internal/server"
	"chouquette-gateway/internal/upstream"
)

func main() {
	bind := flag.String("bind", "", "Network interface and port to bind to (e.g., :4000 or 0.0.0.0:4000)")
	configPath := flag.String("config", "", "Optional config.yaml path")
	envFile := flag.String("env-file", "", "Optional env file to load before startup")
	logFormat := flag.String("log-format", "", "Log format: text or json")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, or error")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *bind != "" {
		cfg.Bind = *bind
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	collector := metrics.NewCollector()
	client := upstream.NewClient(strings.TrimRight(cfg.WordPressURL, "/")+"/wp-json", cfg.UpstreamTimeout(), logger)
	client.OnRequest(func(method string, status int, _ time.Duration) {
		collector.RecordUpstream(method, status)
	})

	services := datasource.NewServices(client, logger, cfg.MaxPageSize)

	sdl, err := schema.Merge()
	if err != nil {
		logger.Error("schema composition failed", "error", err)
		os.Exit(1)
	}
	gqlSchema, err := graphql.ParseSchema(sdl, resolver.New(services))
	if err != nil {
		logger.Error("schema parse failed", "error", err)
		os.Exit(1)
	}

	opts := server.Options{Metrics: collector}
	if cfg.RateLimit.PerMinute > 0 {
		opts.Limiter = ratelimit.New(cfg.RateLimit.PerMinute)
	}
	if cfg.Cache.Enabled {
		opts.CacheTTL = cfg.CacheTTL()
		opts.ResponseCache = buildResponseCache(cfg, logger)
	}

	srv := server.New(gqlSchema, logger, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              cfg.Bind,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("gateway listening", "bind", cfg.Bind, "wordpress", cfg.WordPressURL)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("gateway stopped")
}

// buildResponseCache prefers Redis when configured and falls back to the
// in-process store when Redis is unreachable at startup.
func buildResponseCache(cfg *config.Config, logger *slog.Logger) cache.Store {
	addr := cfg.RedisAddr()
	if addr == "" {
		logger.Info("response cache using in-process store")
		return cache.NewMemory()
	}

	store := cache.NewRedis(addr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		logger.Warn("redis unreachable, using in-process response cache", "addr", addr, "error", err)
		_ = store.Close()
		return cache.NewMemory()
	}
	logger.Info("response cache using redis", "addr", addr)
	return store
}
