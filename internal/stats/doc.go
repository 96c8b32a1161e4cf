// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

// Package stats implements the aggregation pipeline that turns a raw log of
// timestamped Pomodoro sessions into derived metrics: current streak, period
// buckets, weekly activity, calendar map, leaderboard ranking, and
// productivity score.
//
// Every function in this package is a pure, stateless computation over an
// already-fetched, bounded collection. The ambient clock and timezone are
// always injected as parameters (now, loc) rather than read globally, so the
// calculators are deterministic and testable without mocking time. None of
// them can fail: empty input degrades to zeros and empty collections.
//
// DETERMINISM: given identical input, every calculator produces identical
// output; callers may invoke them repeatedly and cache results freely.
package stats
