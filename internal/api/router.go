// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/focusgraph/internal/auth"
	"github.com/tomtom215/focusgraph/internal/config"
	"github.com/tomtom215/focusgraph/internal/middleware"
	"github.com/tomtom215/focusgraph/internal/models"
)

// loginRateLimit caps login and register attempts per IP per minute,
// independent of the general API limit.
const loginRateLimit = 5

// Router assembles the HTTP surface around a Handler.
type Router struct {
	handler *Handler
	cfg     *config.Config
}

// NewRouter creates a Router for the given handler and configuration.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{handler: handler, cfg: cfg}
}

// SetupChi builds the Chi mux: global middleware, public health and auth
// routes, and the authenticated API group.
func (rt *Router) SetupChi() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Health probes stay unauthenticated and loosely limited so
		// orchestrators are never locked out.
		r.Group(func(r chi.Router) {
			r.Use(rateLimitByIP(60, time.Minute))
			r.Get("/health", rt.handler.Health)
			r.Get("/health/live", rt.handler.HealthLive)
			r.Get("/health/ready", rt.handler.HealthReady)
		})

		// Credential endpoints carry a strict per-IP limit against
		// brute forcing.
		r.Group(func(r chi.Router) {
			r.Use(rateLimitByIP(loginRateLimit, time.Minute))
			r.Post("/auth/register", rt.handler.Register)
			r.Post("/auth/login", rt.handler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.PrometheusMetrics)
			if !rt.cfg.Security.RateLimitDisabled {
				r.Use(rateLimitByIP(rt.cfg.Security.RateLimitRequests, rt.cfg.Security.RateLimitWindow))
			}
			r.Use(auth.NewMiddleware(rt.handler.jwtManager).RequireAuth)

			r.Get("/auth/me", rt.handler.Me)

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", rt.handler.ListSessions)
				r.Post("/", rt.handler.CreateSession)
				r.Get("/{id}", rt.handler.GetSession)
				r.Put("/{id}", rt.handler.UpdateSession)
				r.Delete("/{id}", rt.handler.DeleteSession)
			})

			r.Route("/reflections", func(r chi.Router) {
				r.Get("/", rt.handler.ListReflections)
				r.Post("/", rt.handler.CreateReflection)
				r.Put("/{id}", rt.handler.UpdateReflection)
				r.Delete("/{id}", rt.handler.DeleteReflection)
			})

			r.Get("/dashboard", rt.handler.Dashboard)
			r.Get("/stats/periods", rt.handler.Periods)
			r.Get("/stats/streak", rt.handler.Streak)
			r.Get("/leaderboard", rt.handler.Leaderboard)
			r.Get("/feed", rt.handler.Feed)
			r.Get("/ws", rt.handler.FeedWebSocket)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "VALIDATION_ERROR", "Method not allowed", nil)
	})

	return r
}

// rateLimitByIP builds a per-IP limiter that rejects with the standard
// envelope instead of httprate's plain-text body.
func rateLimitByIP(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusTooManyRequests, &models.APIResponse{
				Status:   "error",
				Metadata: models.Metadata{Timestamp: time.Now()},
				Error: &models.APIError{
					Code:    "RATE_LIMIT_EXCEEDED",
					Message: "Too many requests, slow down",
				},
			})
		}),
	)
}
