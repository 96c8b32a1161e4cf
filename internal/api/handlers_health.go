// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/focusgraph/internal/models"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status    string `json:"status"`
	Store     string `json:"store,omitempty"`
	Clients   int    `json:"websocket_clients,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Health reports overall service health including dependency state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := &HealthStatus{
		Status:    "healthy",
		Store:     "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.hub != nil {
		status.Clients = h.hub.GetClientCount()
	}

	code := http.StatusOK
	if err := h.storePing(r); err != nil {
		status.Status = "degraded"
		status.Store = "unavailable"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, &models.APIResponse{
		Status:   "success",
		Data:     status,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive is the liveness probe: the process is up and serving.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     &HealthStatus{Status: "alive", Timestamp: time.Now().UTC().Format(time.RFC3339)},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady is the readiness probe: the store must answer before traffic
// is routed here.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.storePing(r); err != nil {
		respondError(w, http.StatusServiceUnavailable, "STORE_ERROR", "Store not ready", err)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     &HealthStatus{Status: "ready", Timestamp: time.Now().UTC().Format(time.RFC3339)},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// storePing issues a cheap read to verify the store answers.
func (h *Handler) storePing(r *http.Request) error {
	_, err := h.store.ListFeedEvents(r.Context(), 1)
	return err
}
