// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

// Package websocket delivers live feed events to connected clients. The
// hub fans out one message stream to every client; clients that cannot
// keep up are dropped rather than allowed to block the rest.
package websocket

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/time/rate"

	"github.com/tomtom215/focusgraph/internal/logging"
	"github.com/tomtom215/focusgraph/internal/metrics"
	"github.com/tomtom215/focusgraph/internal/models"
)

// Message types for WebSocket communication.
const (
	MessageTypeFeedEvent = "feed_event"
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
)

// Message is the frame sent to and received from clients.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active clients and broadcasts feed events to
// them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	// limiter smooths broadcast bursts. Feed events beyond the rate are
	// dropped from the live stream; clients recover them from the feed
	// endpoint, which is the durable record.
	limiter *rate.Limiter
}

// NewHub creates a hub with a broadcast rate of eventsPerSecond and a
// burst of twice that. A non-positive rate disables limiting.
func NewHub(eventsPerSecond int) *Hub {
	var limiter *rate.Limiter
	if eventsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(eventsPerSecond), eventsPerSecond*2)
	}
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		limiter:    limiter,
	}
}

// RunWithContext runs the hub until the context is canceled, then closes
// every client and returns ctx.Err(). Designed for suture supervision:
// a supervisor restart gets a clean hub with no orphaned connections.
//
// Selection is priority ordered so behavior is predictable when several
// channels are ready: shutdown first, then client lifecycle, then
// broadcasts.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WebSocketConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WebSocketConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
}

// broadcastToClients fans a message out to every client in ascending
// client-ID order. Clients with a full send buffer are dropped.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- message:
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
	}
	if len(toRemove) > 0 {
		metrics.WebSocketConnections.Set(float64(len(h.clients)))
		logging.Warn().Int("dropped", len(toRemove)).Msg("dropped slow websocket clients")
	}
}

func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()

	metrics.WebSocketConnections.Set(0)

	reason := "context_canceled"
	if ctx.Err() == context.DeadlineExceeded {
		reason = "context_deadline"
	}
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", reason).
		Int("clients_closed", len(clients)).
		Msg("websocket hub stopped")
}

// BroadcastFeedEvent queues a feed event for delivery to all clients.
// Never blocks: events are dropped when the rate limit is exceeded or the
// broadcast buffer is full, since the feed endpoint remains the durable
// record.
func (h *Hub) BroadcastFeedEvent(event *models.FeedEvent) {
	if h.limiter != nil && !h.limiter.Allow() {
		logging.Warn().Str("kind", string(event.Kind)).Msg("broadcast rate exceeded, dropping feed event")
		return
	}

	message := Message{Type: MessageTypeFeedEvent, Data: event}
	select {
	case h.broadcast <- message:
		metrics.FeedEventsBroadcast.WithLabelValues(string(event.Kind)).Inc()
	default:
		logging.Warn().Str("kind", string(event.Kind)).Msg("broadcast channel full, dropping feed event")
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
