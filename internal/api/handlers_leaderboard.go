// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/focusgraph/internal/logging"
	"github.com/tomtom215/focusgraph/internal/metrics"
	"github.com/tomtom215/focusgraph/internal/models"
	"github.com/tomtom215/focusgraph/internal/stats"
)

// LeaderboardResponse is the body of the leaderboard endpoint.
type LeaderboardResponse struct {
	Entries []models.LeaderboardEntry `json:"entries"`

	// Degraded marks a fallback board built from the requester's own
	// data when the store-wide scan is unavailable.
	Degraded bool `json:"degraded,omitempty"`
}

// Leaderboard ranks all users by work-session focus minutes.
//
// The full ranking needs a store-wide scan, so it runs behind a circuit
// breaker. When the scan fails or the breaker is open, the endpoint never
// errors: it degrades to a single-entry board for the requesting user.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	const cacheKey = "leaderboard:global"
	if h.cache != nil {
		if cached, hit := h.cache.Get(cacheKey); hit {
			metrics.RecordCacheLookup("leaderboard", true)
			respondCached(w, cached)
			return
		}
		metrics.RecordCacheLookup("leaderboard", false)
	}

	entries, err := h.breaker.Execute(func() ([]models.LeaderboardEntry, error) {
		opStart := time.Now()
		sessions, err := h.store.ListAllSessions(r.Context())
		metrics.RecordStoreOperation("list_all_sessions", time.Since(opStart), err)
		if err != nil {
			return nil, err
		}

		opStart = time.Now()
		users, err := h.store.ListPublicUsers(r.Context())
		metrics.RecordStoreOperation("list_users", time.Since(opStart), err)
		if err != nil {
			return nil, err
		}

		return stats.Rank(sessions, users, h.now(), h.stats.Location), nil
	})
	if err != nil {
		h.respondFallbackLeaderboard(w, r, claims.UserID, claims.Username, err, started)
		return
	}

	response := &LeaderboardResponse{Entries: entries}
	if h.cache != nil {
		h.cache.Set(cacheKey, response)
	}

	respondData(w, http.StatusOK, response, started)
}

// respondFallbackLeaderboard answers with a single-entry board built from
// the requester's claims and, best effort, their own sessions.
func (h *Handler) respondFallbackLeaderboard(w http.ResponseWriter, r *http.Request, userID, username string, cause error, started time.Time) {
	metrics.LeaderboardFallbacks.Inc()
	logging.Warn().
		Err(cause).
		Str("user_id", userID).
		Msg("leaderboard degraded to fallback entry")

	// The per-user scan is much cheaper than the global one and may still
	// succeed; a nil slice is fine if it does not.
	sessions, err := h.store.ListSessionsByUser(r.Context(), userID)
	if err != nil {
		sessions = nil
	}

	entry := stats.FallbackEntry(models.PublicUser{
		ID:       userID,
		Username: username,
	}, sessions, h.now(), h.stats.Location)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   &LeaderboardResponse{Entries: []models.LeaderboardEntry{entry}, Degraded: true},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(started).Milliseconds(),
			Partial:     true,
		},
	})
}
