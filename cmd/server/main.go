package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tickets-go-admin/internal/config"
	"tickets-go-admin/internal/logger"
	"tickets-go-admin/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	l := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		ServiceName: "tickets-go-admin",
		Development: cfg.IsDevelopment(),
	})
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, cfg, l)
	if err != nil {
		l.Fatal("failed to initialize console", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			l.Warn("failed to close console", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.ListenAndServe()
	}()
	l.Info("server starting",
		zap.String("addr", srv.Addr),
		zap.String("env", cfg.Server.Env),
		zap.String("api", cfg.API.BaseURL),
	)

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("server error", zap.Error(err))
		}
	case <-ctx.Done():
		l.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("server shutdown error", zap.Error(err))
	}
	l.Info("server stopped")
}
