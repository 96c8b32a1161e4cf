// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/focusgraph/internal/logging"
)

// gcInterval is how often the value log garbage collector runs.
const gcInterval = 5 * time.Minute

// gcDiscardRatio rewrites a value log file when at least half of it is stale.
const gcDiscardRatio = 0.5

// RunGC reclaims value log space, repeating until a pass rewrites nothing.
// In-memory stores have no value log and return nil immediately.
func (s *Store) RunGC() error {
	if s.inMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("value log gc: %w", err)
		}
	}
}

// RunGCLoop runs RunGC on a ticker until ctx is canceled. GC failures are
// logged and retried next tick; only cancellation ends the loop.
func (s *Store) RunGCLoop(ctx context.Context) error {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("badger gc pass failed")
			}
		}
	}
}
