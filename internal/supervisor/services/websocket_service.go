// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package services

import "context"

// ContextHub matches the feed hub's run loop without importing the
// websocket package.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// FeedHubService supervises the live feed hub. The hub's run loop already
// follows the Serve(ctx) contract, so the wrapper only adds a name.
type FeedHubService struct {
	hub ContextHub
}

// NewFeedHubService wraps hub for supervision.
func NewFeedHubService(hub ContextHub) *FeedHubService {
	return &FeedHubService{hub: hub}
}

// Serve implements suture.Service.
func (s *FeedHubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

// String identifies the service in suture event logs.
func (s *FeedHubService) String() string {
	return "feed-hub"
}
