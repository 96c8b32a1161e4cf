// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package api

import (
	"net/http"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"github.com/tomtom215/focusgraph/internal/logging"
	"github.com/tomtom215/focusgraph/internal/metrics"
	"github.com/tomtom215/focusgraph/internal/models"
	"github.com/tomtom215/focusgraph/internal/websocket"
)

// defaultFeedLimit is how many feed events the REST endpoint returns when
// the request omits a limit.
const defaultFeedLimit = 50

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens via the bearer token before the upgrade, so origin
	// enforcement is left to the CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedResponse is the body of the feed endpoint.
type FeedResponse struct {
	Events []models.FeedEvent `json:"events"`
}

// Feed returns the most recent activity events, newest first. The feed is
// the durable record; WebSocket delivery is best effort on top of it.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	if _, ok := mustClaims(w, r); !ok {
		return
	}

	limit := getIntParam(r, "limit", defaultFeedLimit)
	if limit <= 0 || limit > models.MaxFeedEvents {
		limit = defaultFeedLimit
	}

	opStart := time.Now()
	events, err := h.store.ListFeedEvents(r.Context(), limit)
	metrics.RecordStoreOperation("list_feed", time.Since(opStart), err)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if events == nil {
		events = []models.FeedEvent{}
	}

	respondData(w, http.StatusOK, &FeedResponse{Events: events}, started)
}

// FeedWebSocket upgrades the connection and subscribes it to live feed
// broadcasts.
func (h *Handler) FeedWebSocket(w http.ResponseWriter, r *http.Request) {
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}
	if h.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Live feed is unavailable", nil)
		return
	}

	log := logging.FromContext(r.Context())
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("websocket upgrade failed")
		return
	}

	log.Debug().
		Str("user_id", claims.UserID).
		Str("remote", sanitizeLogValue(r.RemoteAddr)).
		Msg("websocket subscriber connected")

	websocket.NewClient(h.hub, conn).Start()
}
