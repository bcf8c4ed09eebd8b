package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/topichat/core/broker"
	"github.com/dmitrymomot/topichat/core/chat"
	"github.com/dmitrymomot/topichat/core/config"
	"github.com/dmitrymomot/topichat/core/health"
	"github.com/dmitrymomot/topichat/core/logger"
	"github.com/dmitrymomot/topichat/core/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg)

	log := newLogger(cfg)

	registry := broker.NewFromConfig(cfg.Broker,
		broker.WithLogger(log.With("component", "broker")),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", chat.Handler(registry,
		chat.WithLogger(log.With("component", "chat")),
		chat.WithReadLimit(cfg.MaxFrameBytes),
	))
	mux.HandleFunc("GET /topics", chat.TopicsHandler(registry))
	mux.HandleFunc("GET /healthz", health.Liveness)
	mux.HandleFunc("GET /readyz", health.Readiness(log))

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log.With("component", "server")))
	if err != nil {
		log.Error("failed to create server", logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(srv.Run(ctx, mux))

	if err := eg.Wait(); err != nil {
		log.Error("failed to run server", logger.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func newLogger(cfg Config) *slog.Logger {
	if cfg.Environment == "production" {
		return logger.New(logger.WithProduction(cfg.AppName))
	}
	return logger.New(logger.WithDevelopment(cfg.AppName))
}
