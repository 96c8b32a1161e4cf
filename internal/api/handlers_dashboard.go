// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/focusgraph/internal/logging"
	"github.com/tomtom215/focusgraph/internal/metrics"
	"github.com/tomtom215/focusgraph/internal/models"
	"github.com/tomtom215/focusgraph/internal/stats"
)

// maxRecentReflections bounds the dashboard's reflection list.
const maxRecentReflections = 5

// Dashboard composes the user's summary view: streak, totals, weekly
// activity, period buckets, calendar map, and recent reflections.
//
// Sessions and reflections are fetched concurrently. Either fetch failing
// independently degrades its portion to an empty collection and flags the
// response as partial instead of failing the whole dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	cacheKey := "dashboard:" + claims.UserID
	if h.cache != nil {
		if cached, hit := h.cache.Get(cacheKey); hit {
			metrics.RecordCacheLookup("dashboard", true)
			summary := cached.(*models.DashboardSummary)
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status: "success",
				Data:   summary,
				Metadata: models.Metadata{
					Timestamp: time.Now(),
					Cached:    true,
					Partial:   summary.SessionsPartial || summary.ReflectionsPartial,
				},
			})
			return
		}
		metrics.RecordCacheLookup("dashboard", false)
	}

	var (
		wg             sync.WaitGroup
		sessions       []models.Session
		reflections    []models.Reflection
		sessionsErr    error
		reflectionsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sessions, sessionsErr = h.listSessions(r.Context(), claims.UserID)
	}()
	go func() {
		defer wg.Done()
		reflections, reflectionsErr = h.listReflections(r.Context(), claims.UserID)
	}()
	wg.Wait()

	summary := &models.DashboardSummary{}

	log := logging.FromContext(r.Context())
	if sessionsErr != nil {
		log.Error().Err(sessionsErr).Str("user_id", claims.UserID).Msg("dashboard session fetch failed")
		sessions = nil
		summary.SessionsPartial = true
	}
	if reflectionsErr != nil {
		log.Error().Err(reflectionsErr).Str("user_id", claims.UserID).Msg("dashboard reflection fetch failed")
		reflections = nil
		summary.ReflectionsPartial = true
	}

	now := h.now()
	loc := h.stats.Location

	completions := stats.Completions(sessions, h.stats.CountWorkOnly)
	summary.CurrentStreak = stats.CurrentStreak(completions, now, loc)
	summary.TotalSessions = len(sessions)
	summary.TotalFocusMinutes = stats.TotalFocusMinutes(sessions)
	summary.WeeklyActivity = stats.WeeklyActivity(sessions, now, loc)
	summary.PeriodBuckets = stats.AggregatePeriods(sessions, h.stats.DefaultLookbackDays, models.GranularityDay, now, loc)
	summary.CalendarDays = stats.CalendarMap(sessions, loc)
	summary.AverageSessionsPerDay = stats.AverageSessionsPerDay(len(sessions), len(summary.CalendarDays))

	if len(reflections) > maxRecentReflections {
		reflections = reflections[:maxRecentReflections]
	}
	if reflections == nil {
		reflections = []models.Reflection{}
	}
	summary.RecentReflections = reflections

	// Only complete dashboards are worth caching; a partial one would
	// pin the degraded view until the TTL runs out.
	if h.cache != nil && !summary.SessionsPartial && !summary.ReflectionsPartial {
		h.cache.Set(cacheKey, summary)
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   summary,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(started).Milliseconds(),
			Partial:     summary.SessionsPartial || summary.ReflectionsPartial,
		},
	})
}
