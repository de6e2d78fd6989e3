package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/addition-london/donations-gateway/internal/config"
	"github.com/addition-london/donations-gateway/internal/core/domain"
	"github.com/addition-london/donations-gateway/internal/infrastructure/processor"
	"github.com/addition-london/donations-gateway/internal/infrastructure/pubsub"
	"github.com/addition-london/donations-gateway/internal/interfaces/rest/handlers"
	"github.com/addition-london/donations-gateway/internal/interfaces/rest/middleware"
	"github.com/addition-london/donations-gateway/internal/notify"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting donations gateway",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"environment", cfg.Processor.Environment,
	)

	clients, err := config.LoadClients(cfg.Clients.File)
	if err != nil {
		logger.Error("failed to load client directory", "error", err)
		os.Exit(1)
	}
	logger.Info("client directory loaded", "clients", len(clients))

	validator := domain.NewValidator(clients, cfg.Limits.MinAmount, cfg.Limits.MaxAmount)
	loader := processor.NewLoader(cfg.Processor, clients, logger)
	topics := pubsub.NewClient(cfg.PubSub)
	notifier := notify.NewNotifier(clients, topics, cfg.PubSub.PublishTimeout, logger)

	h := handlers.NewHandlers(loader, clients, validator, notifier, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
