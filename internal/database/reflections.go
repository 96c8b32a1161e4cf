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
	"unicode/utf8"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/focusgraph/internal/models"
)

// CreateReflection stores a reflection for a session the user owns.
// At most one reflection may exist per session; a second attempt returns
// ErrReflectionExists. The learnings length cap is enforced here, the sole
// write path.
func (s *Store) CreateReflection(ctx context.Context, reflection *models.Reflection) error {
	if utf8.RuneCountInString(reflection.Learnings) > models.MaxLearningsLength {
		return fmt.Errorf("learnings exceeds %d characters", models.MaxLearningsLength)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var session models.Session
		if err := get(txn, sessionKeyPrefix+reflection.SessionID, &session); err != nil {
			return err
		}
		if session.UserID != reflection.UserID {
			return ErrNotOwner
		}

		sessKey := reflectionSessKeyPrefix + reflection.SessionID
		_, err := txn.Get([]byte(sessKey))
		if err == nil {
			return ErrReflectionExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check reflection index: %w", err)
		}

		if err := setJSON(txn, reflectionKeyPrefix+reflection.ID, reflection); err != nil {
			return err
		}
		userKey := reflectionUserKeyPrefix + reflection.UserID + ":" + reflection.ID
		if err := txn.Set([]byte(userKey), []byte(reflection.ID)); err != nil {
			return fmt.Errorf("set user index: %w", err)
		}
		return txn.Set([]byte(sessKey), []byte(reflection.ID))
	})
}

// GetReflection retrieves a reflection by ID.
func (s *Store) GetReflection(ctx context.Context, id string) (*models.Reflection, error) {
	var reflection models.Reflection
	err := s.db.View(func(txn *badger.Txn) error {
		return get(txn, reflectionKeyPrefix+id, &reflection)
	})
	if err != nil {
		return nil, err
	}
	return &reflection, nil
}

// UpdateReflection replaces an existing reflection's editable fields.
func (s *Store) UpdateReflection(ctx context.Context, reflection *models.Reflection) error {
	if utf8.RuneCountInString(reflection.Learnings) > models.MaxLearningsLength {
		return fmt.Errorf("learnings exceeds %d characters", models.MaxLearningsLength)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var existing models.Reflection
		if err := get(txn, reflectionKeyPrefix+reflection.ID, &existing); err != nil {
			return err
		}
		if existing.UserID != reflection.UserID {
			return ErrNotOwner
		}
		reflection.SessionID = existing.SessionID
		reflection.CreatedAt = existing.CreatedAt
		return setJSON(txn, reflectionKeyPrefix+reflection.ID, reflection)
	})
}

// DeleteReflection removes a reflection. Only the owning user may delete.
func (s *Store) DeleteReflection(ctx context.Context, userID, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var reflection models.Reflection
		if err := get(txn, reflectionKeyPrefix+id, &reflection); err != nil {
			return err
		}
		if reflection.UserID != userID {
			return ErrNotOwner
		}
		return deleteReflectionKeys(txn, &reflection)
	})
}

// ListReflectionsByUser returns all reflections for a user, newest first.
func (s *Store) ListReflectionsByUser(ctx context.Context, userID string) ([]models.Reflection, error) {
	var reflections []models.Reflection

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(reflectionUserKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var reflectionID string
			err := it.Item().Value(func(val []byte) error {
				reflectionID = string(val)
				return nil
			})
			if err != nil {
				return err
			}

			var reflection models.Reflection
			if err := get(txn, reflectionKeyPrefix+reflectionID, &reflection); err != nil {
				if errors.Is(err, ErrNotFound) {
					continue
				}
				return err
			}
			reflections = append(reflections, reflection)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list reflections for %s: %w", userID, err)
	}

	sort.Slice(reflections, func(i, j int) bool {
		return reflections[i].CreatedAt.After(reflections[j].CreatedAt)
	})
	return reflections, nil
}

// deleteReflectionForSession removes the reflection attached to sessionID,
// if any. Called inside the session-delete transaction for the cascade.
func (s *Store) deleteReflectionForSession(txn *badger.Txn, sessionID string) error {
	item, err := txn.Get([]byte(reflectionSessKeyPrefix + sessionID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get reflection index: %w", err)
	}

	var reflectionID string
	if err := item.Value(func(val []byte) error {
		reflectionID = string(val)
		return nil
	}); err != nil {
		return err
	}

	var reflection models.Reflection
	if err := get(txn, reflectionKeyPrefix+reflectionID, &reflection); err != nil {
		if errors.Is(err, ErrNotFound) {
			return txn.Delete([]byte(reflectionSessKeyPrefix + sessionID))
		}
		return err
	}
	return deleteReflectionKeys(txn, &reflection)
}

func deleteReflectionKeys(txn *badger.Txn, reflection *models.Reflection) error {
	keys := []string{
		reflectionKeyPrefix + reflection.ID,
		reflectionUserKeyPrefix + reflection.UserID + ":" + reflection.ID,
		reflectionSessKeyPrefix + reflection.SessionID,
	}
	for _, key := range keys {
		if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}
