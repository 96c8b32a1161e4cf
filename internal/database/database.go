// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

// Package database provides the BadgerDB-backed persistence layer.
//
// All records are stored as JSON values under typed key prefixes, with
// secondary-index keys for the lookups the API needs (username uniqueness,
// per-user session listing, one-reflection-per-session). Every method is
// safe for concurrent use; Badger transactions provide the isolation.
package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/focusgraph/internal/logging"
)

// Key prefixes for BadgerDB storage.
const (
	userKeyPrefix           = "user:"
	usernameKeyPrefix       = "username:"
	sessionKeyPrefix        = "session:"
	sessionUserKeyPrefix    = "session_user:"
	reflectionKeyPrefix     = "reflection:"
	reflectionUserKeyPrefix = "reflection_user:"
	reflectionSessKeyPrefix = "reflection_session:"
	feedKeyPrefix           = "feed:"
)

// Sentinel errors returned by the store. Handlers map these to HTTP status
// codes; everything else is a 500.
var (
	ErrNotFound         = errors.New("record not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrReflectionExists = errors.New("session already has a reflection")
	ErrNotOwner         = errors.New("record belongs to another user")
)

// Config controls how the Badger database is opened.
type Config struct {
	// Path is the on-disk directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory runs the store without any files. Used by tests and
	// ephemeral deployments; all data is lost on close.
	InMemory bool `koanf:"in_memory"`
}

// Store is the persistence handle shared by all handlers.
type Store struct {
	db *badger.DB

	// now is the write-path clock, swappable in tests so that
	// completed-at clamping is deterministic.
	now func() time.Time

	inMemory bool
}

// Open opens (or creates) the database at cfg.Path.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	// Badger's own logger is too chatty for our log stream; failures
	// surface through returned errors anyway.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", cfg.Path, err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Database opened")

	return &Store{db: db, now: time.Now, inMemory: cfg.InMemory}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetClock overrides the write-path clock. Test use only.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// get unmarshals the JSON value at key into out, translating
// key-not-found into the store's sentinel.
func get(txn *badger.Txn, key string, out interface{}) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

// setJSON marshals v and stores it at key.
func setJSON(txn *badger.Txn, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := txn.Set([]byte(key), data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
