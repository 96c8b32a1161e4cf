// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package database

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/focusgraph/internal/logging"
	"github.com/tomtom215/focusgraph/internal/models"
)

// CreateSession validates and stores a new session. Future completion
// timestamps are clamped to the write-time clock rather than rejected.
func (s *Store) CreateSession(ctx context.Context, session *models.Session) error {
	if !session.SessionType.Valid() {
		return fmt.Errorf("unknown session type %q", session.SessionType)
	}
	if err := session.ValidateDuration(); err != nil {
		return err
	}
	if session.ClampCompletedAt(s.now()) {
		logging.Warn().
			Str("session_id", session.ID).
			Str("user_id", session.UserID).
			Msg("Clamped future completed_at to now")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := setJSON(txn, sessionKeyPrefix+session.ID, session); err != nil {
			return err
		}
		userKey := sessionUserKeyPrefix + session.UserID + ":" + session.ID
		return txn.Set([]byte(userKey), []byte(session.ID))
	})
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.db.View(func(txn *badger.Txn) error {
		return get(txn, sessionKeyPrefix+id, &session)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateSession replaces an existing session after re-running the write
// validations. The stored record must exist and belong to session.UserID.
func (s *Store) UpdateSession(ctx context.Context, session *models.Session) error {
	if !session.SessionType.Valid() {
		return fmt.Errorf("unknown session type %q", session.SessionType)
	}
	if err := session.ValidateDuration(); err != nil {
		return err
	}
	session.ClampCompletedAt(s.now())

	return s.db.Update(func(txn *badger.Txn) error {
		var existing models.Session
		if err := get(txn, sessionKeyPrefix+session.ID, &existing); err != nil {
			return err
		}
		if existing.UserID != session.UserID {
			return ErrNotOwner
		}
		session.CreatedAt = existing.CreatedAt
		return setJSON(txn, sessionKeyPrefix+session.ID, session)
	})
}

// DeleteSession removes a session and, cascade-style, any reflection
// attached to it. Only the owning user may delete.
func (s *Store) DeleteSession(ctx context.Context, userID, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var session models.Session
		if err := get(txn, sessionKeyPrefix+id, &session); err != nil {
			return err
		}
		if session.UserID != userID {
			return ErrNotOwner
		}

		if err := txn.Delete([]byte(sessionKeyPrefix + id)); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		userKey := sessionUserKeyPrefix + session.UserID + ":" + id
		if err := txn.Delete([]byte(userKey)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete user index: %w", err)
		}

		return s.deleteReflectionForSession(txn, id)
	})
}

// ListSessionsByUser returns all sessions for a user, most recent
// completion first.
func (s *Store) ListSessionsByUser(ctx context.Context, userID string) ([]models.Session, error) {
	var sessions []models.Session

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionUserKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var sessionID string
			err := it.Item().Value(func(val []byte) error {
				sessionID = string(val)
				return nil
			})
			if err != nil {
				return err
			}

			var session models.Session
			if err := get(txn, sessionKeyPrefix+sessionID, &session); err != nil {
				if errors.Is(err, ErrNotFound) {
					continue // index ahead of a concurrent delete
				}
				return err
			}
			sessions = append(sessions, session)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions for %s: %w", userID, err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CompletedAt.After(sessions[j].CompletedAt)
	})
	return sessions, nil
}

// ListAllSessions returns every session in the store. Feeds the
// leaderboard scan; order is unspecified.
func (s *Store) ListAllSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var session models.Session
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &session)
			})
			if err != nil {
				return err
			}
			sessions = append(sessions, session)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list all sessions: %w", err)
	}
	return sessions, nil
}
