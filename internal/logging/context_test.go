// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFromContextAnnotatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(prev)

	ctx := ContextWithRequestID(context.Background(), "req-123")
	log := FromContext(ctx)
	log.Info().Msg("hello")

	if !strings.Contains(buf.String(), "req-123") {
		t.Errorf("log output %q missing request id", buf.String())
	}
}

func TestFromContextWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(prev)

	log := FromContext(context.Background())
	log.Info().Msg("plain")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("log output %q unexpectedly carries a request id", buf.String())
	}
}

func TestRequestIDFromContextEmpty(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
}
