// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

// Package models provides data structures for the Focusgraph application.
package models

import (
	"fmt"
	"time"
)

// SessionType identifies the kind of Pomodoro interval a session records.
type SessionType string

// Session types. A "work" session is a focus interval; breaks are either
// short ("break") or long ("longBreak").
const (
	SessionTypeWork      SessionType = "work"
	SessionTypeBreak     SessionType = "break"
	SessionTypeLongBreak SessionType = "longBreak"
)

// Duration caps in minutes, enforced at write time.
const (
	MaxWorkDurationMinutes  = 180
	MaxBreakDurationMinutes = 60
)

// Valid reports whether t is a known session type.
func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeWork, SessionTypeBreak, SessionTypeLongBreak:
		return true
	}
	return false
}

// IsWork reports whether t is a focus interval.
func (t SessionType) IsWork() bool {
	return t == SessionTypeWork
}

// MaxDuration returns the duration cap in minutes for this session type.
func (t SessionType) MaxDuration() int {
	if t.IsWork() {
		return MaxWorkDurationMinutes
	}
	return MaxBreakDurationMinutes
}

// Session represents one completed Pomodoro timer interval.
// Sessions are immutable once created except for explicit edits.
type Session struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	SessionType SessionType `json:"session_type"`

	// Duration is the interval length in whole minutes.
	Duration int `json:"duration"`

	// CompletedAt must not be in the future; the store clamps violations
	// to the write-time clock rather than rejecting them.
	CompletedAt time.Time `json:"completed_at"`

	Notes      string   `json:"notes,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Efficiency int      `json:"efficiency,omitempty"` // 1-5, 0 = unrated

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidateDuration checks the duration against the per-type cap.
// A non-work session must not exceed 60 minutes; work sessions 180.
func (s *Session) ValidateDuration() error {
	if s.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %d", s.Duration)
	}
	if maxDur := s.SessionType.MaxDuration(); s.Duration > maxDur {
		return fmt.Errorf("duration %d exceeds %d minute cap for %s sessions",
			s.Duration, maxDur, s.SessionType)
	}
	return nil
}

// ClampCompletedAt clamps a future completion timestamp to now.
// Returns true if clamping occurred.
func (s *Session) ClampCompletedAt(now time.Time) bool {
	if s.CompletedAt.After(now) {
		s.CompletedAt = now
		return true
	}
	return false
}

// Reflection is a free-text note a user attaches to a completed session.
// Exactly one reflection may exist per session.
type Reflection struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`

	// Learnings is bounded to MaxLearningsLength characters, enforced in
	// the write-path validator only.
	Learnings string   `json:"learnings"`
	Rating    int      `json:"rating,omitempty"` // 1-5, 0 = unrated
	Tags      []string `json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaxLearningsLength is the canonical reflection text limit in characters.
const MaxLearningsLength = 2000
