// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/focusgraph/internal/models"
)

// CreateUser stores a new user, enforcing case-insensitive username
// uniqueness through an index key. Returns ErrUsernameTaken on collision.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	nameKey := usernameKeyPrefix + strings.ToLower(user.Username)

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(nameKey))
		if err == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check username: %w", err)
		}

		if err := setJSON(txn, userKeyPrefix+user.ID, user); err != nil {
			return err
		}
		return txn.Set([]byte(nameKey), []byte(user.ID))
	})
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.View(func(txn *badger.Txn) error {
		return get(txn, userKeyPrefix+id, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username, case-insensitively.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(usernameKeyPrefix + strings.ToLower(username)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get username index: %w", err)
		}

		var userID string
		if err := item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		}); err != nil {
			return err
		}
		return get(txn, userKeyPrefix+userID, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListPublicUsers returns the identity projection of every registered user,
// keyed by ID. Used to join usernames into leaderboard entries.
func (s *Store) ListPublicUsers(ctx context.Context) (map[string]models.PublicUser, error) {
	users := make(map[string]models.PublicUser)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(userKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var user models.User
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &user)
			})
			if err != nil {
				return err
			}
			users[user.ID] = user.Public()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
