// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeHub struct {
	err error
}

func (f *fakeHub) RunWithContext(ctx context.Context) error {
	<-ctx.Done()
	if f.err != nil {
		return f.err
	}
	return ctx.Err()
}

func TestFeedHubServiceDelegates(t *testing.T) {
	hub := &fakeHub{}
	svc := NewFeedHubService(hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestFeedHubServicePropagatesError(t *testing.T) {
	hub := &fakeHub{err: errors.New("hub crashed")}
	svc := NewFeedHubService(hub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Serve(ctx); !errors.Is(err, hub.err) {
		t.Errorf("Serve() = %v, want hub error", err)
	}
}

func TestFeedHubServiceName(t *testing.T) {
	if got := NewFeedHubService(&fakeHub{}).String(); got != "feed-hub" {
		t.Errorf("String() = %q", got)
	}
}
