// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package database

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/focusgraph/internal/models"
)

// feedKey builds a lexicographically chronological key: zero-padded
// nanosecond timestamp plus the event ID for uniqueness within a tick.
func feedKey(event *models.FeedEvent) string {
	return fmt.Sprintf("%s%020d:%s", feedKeyPrefix, event.CreatedAt.UnixNano(), event.ID)
}

// AppendFeedEvent stores a feed event and evicts the oldest entries beyond
// models.MaxFeedEvents, ring-buffer style.
func (s *Store) AppendFeedEvent(ctx context.Context, event *models.FeedEvent) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := setJSON(txn, feedKey(event), event); err != nil {
			return err
		}

		// Count keys oldest-first; collect everything past the cap.
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(feedKeyPrefix)
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for i := 0; i < len(keys)-models.MaxFeedEvents; i++ {
			if err := txn.Delete(keys[i]); err != nil {
				return fmt.Errorf("evict feed event: %w", err)
			}
		}
		return nil
	})
}

// ListFeedEvents returns up to limit events, newest first. A non-positive
// limit returns the full retained window.
func (s *Store) ListFeedEvents(ctx context.Context, limit int) ([]models.FeedEvent, error) {
	if limit <= 0 || limit > models.MaxFeedEvents {
		limit = models.MaxFeedEvents
	}

	var events []models.FeedEvent
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(feedKeyPrefix)
		// Reverse iteration seeks to the byte just past the prefix range.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(events) < limit; it.Next() {
			var event models.FeedEvent
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &event)
			})
			if err != nil {
				return err
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list feed events: %w", err)
	}
	return events, nil
}
