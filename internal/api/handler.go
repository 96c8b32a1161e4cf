// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

// Package api provides the HTTP handlers and Chi routing for the JSON API.
package api

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/focusgraph/internal/auth"
	"github.com/tomtom215/focusgraph/internal/cache"
	"github.com/tomtom215/focusgraph/internal/database"
	"github.com/tomtom215/focusgraph/internal/logging"
	"github.com/tomtom215/focusgraph/internal/metrics"
	"github.com/tomtom215/focusgraph/internal/models"
	"github.com/tomtom215/focusgraph/internal/websocket"
)

// StatsOptions carries the aggregation settings handlers need.
type StatsOptions struct {
	// CountWorkOnly restricts streaks to work sessions.
	CountWorkOnly bool

	// DefaultLookbackDays is the period window when the request omits one.
	DefaultLookbackDays int

	// Location is the timezone for all day-boundary arithmetic.
	Location *time.Location
}

// Handler bundles the dependencies behind every endpoint.
type Handler struct {
	store      *database.Store
	cache      *cache.Cache
	hub        *websocket.Hub
	jwtManager *auth.JWTManager
	stats      StatsOptions

	// breaker guards the store-wide leaderboard scan. When open, requests
	// degrade to a single-entry board for the requesting user.
	breaker *gobreaker.CircuitBreaker[[]models.LeaderboardEntry]

	// now is injectable for deterministic tests.
	now func() time.Time

	// The dashboard's paired fetches go through these hooks so each
	// collaborator can fail independently. They default to the store.
	listSessions    func(ctx context.Context, userID string) ([]models.Session, error)
	listReflections func(ctx context.Context, userID string) ([]models.Reflection, error)
}

// NewHandler wires a Handler. The leaderboard circuit breaker trips after
// 60% failures over at least 10 requests, stays open for two minutes, and
// admits three probes when half-open.
func NewHandler(store *database.Store, c *cache.Cache, hub *websocket.Hub, jwtManager *auth.JWTManager, stats StatsOptions) *Handler {
	if stats.Location == nil {
		stats.Location = time.UTC
	}
	if stats.DefaultLookbackDays <= 0 {
		stats.DefaultLookbackDays = 30
	}

	h := &Handler{
		store:      store,
		cache:      c,
		hub:        hub,
		jwtManager: jwtManager,
		stats:      stats,
		now:        time.Now,
	}
	h.listSessions = store.ListSessionsByUser
	h.listReflections = store.ListReflectionsByUser

	h.breaker = gobreaker.NewCircuitBreaker[[]models.LeaderboardEntry](gobreaker.Settings{
		Name:        "leaderboard",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.Set(float64(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return h
}
