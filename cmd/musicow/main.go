package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sglre6355/musicow/internal/bot"
	_ "github.com/sglre6355/musicow/internal/modules/playlist_sync"
	"github.com/sglre6355/musicow/internal/telemetry"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/musicow
var version = "dev"

const defaultConfigPath = "config.toml"

func main() {
	// A missing .env file is fine; real environment variables still apply
	_ = godotenv.Load()

	configPath := flag.String("config", envOr("MUSICOW_CONFIG", defaultConfigPath), "path to TOML config file")
	flag.Parse()

	// Configure JSON logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	})))

	slog.Info("starting musicow", "version", version)

	// Load configuration
	cfg, err := bot.LoadConfig(resolveConfigPath(*configPath))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	telemetry.Init()

	// Create and configure bot
	b := bot.NewBot(cfg)
	b.LoadModules()

	// Start bot
	if err := b.Start(); err != nil {
		slog.Error("failed to start bot", "error", err)
		os.Exit(1)
	}

	// Opened only after Start has validated every module config
	opsServer := startOpsServer(cfg.MetricsAddr)

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("received termination signal, shutting down")
	if err := b.Stop(); err != nil {
		slog.Error("failed to shutdown", "error", err)
	}

	stopOpsServer(opsServer)

	slog.Info("completed bot shutdown")
	os.Exit(0)
}

// startOpsServer serves /healthz and /metrics on addr. An empty addr disables it.
func startOpsServer(addr string) *http.Server {
	if addr == "" {
		return nil
	}

	srv := telemetry.NewServer(addr)
	go func() {
		slog.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to serve metrics", "error", err)
		}
	}()
	return srv
}

func stopOpsServer(srv *http.Server) {
	if srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown metrics server", "error", err)
	}
}

// resolveConfigPath skips the default config file when it does not exist,
// so the bot can run from environment variables alone.
func resolveConfigPath(path string) string {
	if path != defaultConfigPath {
		return path
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
