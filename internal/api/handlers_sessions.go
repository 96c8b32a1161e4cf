// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/focusgraph/internal/auth"
	"github.com/tomtom215/focusgraph/internal/logging"
	"github.com/tomtom215/focusgraph/internal/metrics"
	"github.com/tomtom215/focusgraph/internal/models"
)

// SessionRequest is the payload for creating or updating a session.
type SessionRequest struct {
	SessionType string   `json:"session_type" validate:"required,sessiontype"`
	Duration    int      `json:"duration" validate:"required,min=1,max=180"`
	CompletedAt string   `json:"completed_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Notes       string   `json:"notes" validate:"omitempty,max=500"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=40"`
	Efficiency  int      `json:"efficiency" validate:"omitempty,min=1,max=5"`
}

// toSession builds a models.Session from the request, defaulting
// CompletedAt to now when absent.
func (req *SessionRequest) toSession(id, userID string, now time.Time) models.Session {
	completedAt := now
	if req.CompletedAt != "" {
		// Validation guarantees the format parses.
		if t, err := time.Parse(time.RFC3339, req.CompletedAt); err == nil {
			completedAt = t
		}
	}

	return models.Session{
		ID:          id,
		UserID:      userID,
		SessionType: models.SessionType(req.SessionType),
		Duration:    req.Duration,
		CompletedAt: completedAt,
		Notes:       req.Notes,
		Tags:        req.Tags,
		Efficiency:  req.Efficiency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ListSessions returns the authenticated user's sessions, newest first.
// Optional query filters: ?type=work|break|longBreak and ?days=N to keep
// only sessions completed within the last N days.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	sessionType := models.SessionType(r.URL.Query().Get("type"))
	if sessionType != "" && !sessionType.Valid() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Unknown session type filter", nil)
		return
	}
	days := getIntParam(r, "days", 0)

	sessions, err := h.store.ListSessionsByUser(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	metrics.RecordStoreOperation("list_sessions", time.Since(started), nil)

	filtered := make([]models.Session, 0, len(sessions))
	var cutoff time.Time
	if days > 0 {
		cutoff = h.now().AddDate(0, 0, -days)
	}
	for _, session := range sessions {
		if sessionType != "" && session.SessionType != sessionType {
			continue
		}
		if days > 0 && session.CompletedAt.Before(cutoff) {
			continue
		}
		filtered = append(filtered, session)
	}

	respondData(w, http.StatusOK, filtered, started)
}

// GetSession returns one session owned by the authenticated user.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	session, err := h.store.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if session.UserID != claims.UserID {
		// Answer 404 rather than 403: do not confirm the session exists.
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
		return
	}

	respondData(w, http.StatusOK, session, started)
}

// CreateSession records a completed Pomodoro interval, publishes it to the
// activity feed, and invalidates the user's cached views.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req SessionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	session := req.toSession(uuid.New().String(), claims.UserID, h.now().UTC())

	opStart := time.Now()
	err := h.store.CreateSession(r.Context(), &session)
	metrics.RecordStoreOperation("create_session", time.Since(opStart), err)
	if err != nil {
		// Write validations (duration caps, unknown type) surface as 400.
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	h.invalidateUserViews(claims.UserID)
	h.publishFeedEvent(r, claims, models.FeedSessionCompleted, &session)

	respondData(w, http.StatusCreated, session, started)
}

// UpdateSession edits a session the authenticated user owns.
func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req SessionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	session := req.toSession(chi.URLParam(r, "id"), claims.UserID, h.now().UTC())

	opStart := time.Now()
	err := h.store.UpdateSession(r.Context(), &session)
	metrics.RecordStoreOperation("update_session", time.Since(opStart), err)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateUserViews(claims.UserID)
	respondData(w, http.StatusOK, session, started)
}

// DeleteSession removes a session and its attached reflection.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	opStart := time.Now()
	err := h.store.DeleteSession(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	metrics.RecordStoreOperation("delete_session", time.Since(opStart), err)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateUserViews(claims.UserID)
	respondData(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(r, "id")}, started)
}

// invalidateUserViews drops the cached derived views that a write makes
// stale. The leaderboard is global, so it goes regardless of user.
func (h *Handler) invalidateUserViews(userID string) {
	if h.cache == nil {
		return
	}
	h.cache.DeletePrefix("dashboard:" + userID)
	h.cache.DeletePrefix("stats:" + userID)
	h.cache.DeletePrefix("leaderboard:")
}

// publishFeedEvent appends to the durable feed and broadcasts to live
// WebSocket subscribers. Feed failures are logged, never surfaced: the
// session write already succeeded.
func (h *Handler) publishFeedEvent(r *http.Request, claims *auth.Claims, kind models.FeedEventKind, session *models.Session) {
	event := &models.FeedEvent{
		ID:        uuid.New().String(),
		UserID:    claims.UserID,
		Username:  claims.Username,
		Kind:      kind,
		CreatedAt: h.now().UTC(),
	}
	if session != nil {
		event.SessionType = session.SessionType
		event.Duration = session.Duration
	}

	if err := h.store.AppendFeedEvent(r.Context(), event); err != nil {
		log := logging.FromContext(r.Context())
		log.Error().Err(err).Str("kind", string(kind)).Msg("failed to append feed event")
		return
	}
	if h.hub != nil {
		h.hub.BroadcastFeedEvent(event)
	}
}
