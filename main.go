package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/CAFxX/httpcompression"
	"github.com/Thatkidtk/packtrack-pro/internal/handler"
	"github.com/Thatkidtk/packtrack-pro/internal/repository/sqlite"
	"github.com/Thatkidtk/packtrack-pro/internal/service"
)

const sessionTTL = 24 * time.Hour

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	port := envOrDefault("PORT", "3000")
	dbPath := envOrDefault("DATABASE_PATH", "packtrack.db")

	// Default to secure cookies; disable only for local development.
	cookieSecure := os.Getenv("COOKIE_SECURE") != "false"

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	authService := service.NewAuthService(db.Users(), bcryptCost)
	sessionService := service.NewSessionService(db.Sessions(), sessionTTL)
	itemService := service.NewItemService(db.Items())

	// Seed the demo account (idempotent). Opt-out for real deployments.
	if os.Getenv("SEED_DEMO") != "false" {
		if err := authService.SeedDemo(context.Background()); err != nil {
			slog.Error("failed to seed demo user", "error", err)
			os.Exit(1)
		}
		slog.Info("demo user available", "email", "demo@packtrack.com")
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, sessionService, itemService, cookieSecure)

	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		slog.Error("failed to set up compression", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.SecurityHeaders(handler.Recover(compress(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sweep expired sessions in the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := sessionService.PurgeExpired(context.Background())
				if err != nil {
					slog.Error("purge expired sessions", "error", err)
					continue
				}
				if n > 0 {
					slog.Info("purged expired sessions", "count", n)
				}
			}
		}
	}()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
