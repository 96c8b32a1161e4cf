// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

// Package main is the entry point for the Focusgraph server.
//
// Focusgraph is a self-hosted analytics backend for Pomodoro timers. It
// records completed focus and break sessions, computes streaks, period
// aggregates, and a leaderboard, and pushes a live activity feed to
// WebSocket subscribers.
//
// Startup order:
//
//  1. Configuration: defaults, optional YAML file, FOCUSGRAPH_* env vars
//  2. Logging: zerolog, JSON or console per config
//  3. Store: BadgerDB (on disk, or in-memory for ephemeral runs)
//  4. Feed hub: WebSocket broadcast loop
//  5. HTTP API: Chi router on the configured address
//
// The feed hub and HTTP server run under a suture supervision tree and
// restart independently on failure. SIGINT and SIGTERM trigger graceful
// shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tomtom215/focusgraph/internal/api"
	"github.com/tomtom215/focusgraph/internal/auth"
	"github.com/tomtom215/focusgraph/internal/cache"
	"github.com/tomtom215/focusgraph/internal/config"
	"github.com/tomtom215/focusgraph/internal/database"
	"github.com/tomtom215/focusgraph/internal/logging"
	"github.com/tomtom215/focusgraph/internal/supervisor"
	"github.com/tomtom215/focusgraph/internal/supervisor/services"
	"github.com/tomtom215/focusgraph/internal/websocket"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Bool("in_memory", cfg.Database.InMemory).
		Str("timezone", cfg.Stats.Timezone).
		Msg("starting focusgraph")

	store, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("store close failed")
		}
	}()

	jwtManager, err := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.SessionTimeout)
	if err != nil {
		return err
	}

	loc, err := cfg.Stats.Location()
	if err != nil {
		return err
	}

	hub := websocket.NewHub(cfg.Feed.BroadcastRate)

	handler := api.NewHandler(store, cache.New(cfg.Cache.TTL), hub, jwtManager, api.StatsOptions{
		CountWorkOnly:       cfg.Stats.CountWorkOnly,
		DefaultLookbackDays: cfg.Stats.DefaultLookbackDays,
		Location:            loc,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, cfg).SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddDataService(services.NewStoreGCService(store))
	tree.AddMessagingService(services.NewFeedHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("shutdown signal received")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("service did not stop in time")
		}
	}

	logging.Info().Msg("focusgraph stopped")
	return nil
}
