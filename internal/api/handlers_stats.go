// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/focusgraph/internal/metrics"
	"github.com/tomtom215/focusgraph/internal/models"
	"github.com/tomtom215/focusgraph/internal/stats"
)

// maxLookbackDays bounds the periods query window.
const maxLookbackDays = 365

// PeriodsResponse is the body of the periods endpoint.
type PeriodsResponse struct {
	Granularity models.Granularity    `json:"granularity"`
	Days        int                   `json:"days"`
	Buckets     []models.PeriodBucket `json:"buckets"`
}

// StreakResponse is the body of the streak endpoint.
type StreakResponse struct {
	CurrentStreak int    `json:"current_streak"`
	Timezone      string `json:"timezone"`
}

// Periods returns the user's sessions grouped into day, week, or month
// buckets over a lookback window.
func (h *Handler) Periods(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	granularity := models.Granularity(r.URL.Query().Get("granularity"))
	if granularity == "" {
		granularity = models.GranularityDay
	}
	if !granularity.Valid() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			fmt.Sprintf("Unknown granularity %q, expected day, week, or month", sanitizeLogValue(string(granularity))), nil)
		return
	}

	days := getIntParam(r, "days", h.stats.DefaultLookbackDays)
	if days <= 0 || days > maxLookbackDays {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			fmt.Sprintf("days must be between 1 and %d", maxLookbackDays), nil)
		return
	}

	cacheKey := fmt.Sprintf("stats:%s:periods:%s:%d", claims.UserID, granularity, days)
	if h.cache != nil {
		if cached, hit := h.cache.Get(cacheKey); hit {
			metrics.RecordCacheLookup("periods", true)
			respondCached(w, cached)
			return
		}
		metrics.RecordCacheLookup("periods", false)
	}

	opStart := time.Now()
	sessions, err := h.store.ListSessionsByUser(r.Context(), claims.UserID)
	metrics.RecordStoreOperation("list_sessions", time.Since(opStart), err)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	response := &PeriodsResponse{
		Granularity: granularity,
		Days:        days,
		Buckets:     stats.AggregatePeriods(sessions, days, granularity, h.now(), h.stats.Location),
	}

	if h.cache != nil {
		h.cache.Set(cacheKey, response)
	}

	respondData(w, http.StatusOK, response, started)
}

// Streak returns the user's current consecutive-day completion streak.
func (h *Handler) Streak(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	cacheKey := "stats:" + claims.UserID + ":streak"
	if h.cache != nil {
		if cached, hit := h.cache.Get(cacheKey); hit {
			metrics.RecordCacheLookup("streak", true)
			respondCached(w, cached)
			return
		}
		metrics.RecordCacheLookup("streak", false)
	}

	opStart := time.Now()
	sessions, err := h.store.ListSessionsByUser(r.Context(), claims.UserID)
	metrics.RecordStoreOperation("list_sessions", time.Since(opStart), err)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	completions := stats.Completions(sessions, h.stats.CountWorkOnly)
	response := &StreakResponse{
		CurrentStreak: stats.CurrentStreak(completions, h.now(), h.stats.Location),
		Timezone:      h.stats.Location.String(),
	}

	if h.cache != nil {
		h.cache.Set(cacheKey, response)
	}

	respondData(w, http.StatusOK, response, started)
}

// respondCached sends a cache hit in the standard envelope.
func respondCached(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			Cached:    true,
		},
	})
}
