// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package services

import "context"

// GCRunner matches the store's garbage collection loop.
type GCRunner interface {
	RunGCLoop(ctx context.Context) error
}

// StoreGCService supervises the store's periodic value log garbage
// collection.
type StoreGCService struct {
	store GCRunner
}

// NewStoreGCService wraps store for supervision.
func NewStoreGCService(store GCRunner) *StoreGCService {
	return &StoreGCService{store: store}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	return s.store.RunGCLoop(ctx)
}

// String identifies the service in suture event logs.
func (s *StoreGCService) String() string {
	return "store-gc"
}
