package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/brgysanantonio/portal/internal/api"
	"github.com/brgysanantonio/portal/internal/auth"
	"github.com/brgysanantonio/portal/internal/chat"
	"github.com/brgysanantonio/portal/internal/config"
	"github.com/brgysanantonio/portal/internal/models"
	"github.com/brgysanantonio/portal/internal/storage"
	"github.com/brgysanantonio/portal/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portal HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg := config.Load()

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.LogLevel, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Bootstrap the configured admin credential.
	if cfg.AdminUser != "" && cfg.AdminPassword != "" {
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}
		if _, err := db.EnsureAdmin(cfg.AdminUser, hash); err != nil {
			return fmt.Errorf("bootstrapping admin account: %w", err)
		}
		slog.Info("admin account ready", "username", cfg.AdminUser)
	}

	bot := chat.New(liveTotalAllocated(db))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(db, bot, cfg),
	}

	// Expired sessions pile up otherwise; sweep them hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := db.CleanExpiredSessions(); err != nil {
					slog.Warn("cleaning expired sessions", "error", err)
				}
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("portal listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// liveTotalAllocated sums allocated amounts from the store, falling back
// to the seed rows when the store is unreachable, mirroring the dashboard.
func liveTotalAllocated(db *storage.DB) func() float64 {
	return func() float64 {
		total, err := db.TotalAllocated()
		if err != nil {
			slog.Warn("budget total query failed, using seed total", "error", err)
			total = 0
			for _, a := range models.SeedAllocations() {
				total += a.Allocated
			}
		}
		return total
	}
}

func newRouter(db *storage.DB, bot *chat.Bot, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Mount("/api", api.New(db, bot, cfg.SecureCookie).Router())

	pages := web.NewHandlers(db, cfg.TemplateDir)
	r.Get("/", pages.Index)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	return r
}
