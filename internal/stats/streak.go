// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package stats

import (
	"time"

	"github.com/tomtom215/focusgraph/internal/models"
)

// dayKeyFormat is the calendar-day key used by the streak and calendar
// calculators. Two timestamps share a key iff they fall on the same local
// calendar date.
const dayKeyFormat = "2006-01-02"

// CurrentStreak returns the number of consecutive calendar days, ending
// today, with at least one completion timestamp.
//
// The cursor starts at the end of today (23:59:59.999 in loc) and walks
// backward one calendar day at a time while the day remains active. Today
// must itself be active for the streak to be non-zero: a user whose last
// session was yesterday has a streak of 0. This anchoring is deliberate and
// must be preserved; there is no grace period, and a single missed day
// breaks the streak entirely.
//
// Empty input returns 0. The function never fails.
func CurrentStreak(completions []time.Time, now time.Time, loc *time.Location) int {
	if len(completions) == 0 {
		return 0
	}

	active := make(map[string]struct{}, len(completions))
	for _, t := range completions {
		active[t.In(loc).Format(dayKeyFormat)] = struct{}{}
	}

	year, month, day := now.In(loc).Date()
	cursor := time.Date(year, month, day, 23, 59, 59, 999_000_000, loc)

	streak := 0
	for {
		if _, ok := active[cursor.Format(dayKeyFormat)]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return streak
}

// Completions extracts completion timestamps from sessions, optionally
// restricted to work sessions only.
//
// The three upstream implementations disagreed on whether breaks count
// toward a streak; rather than silently picking one, the choice is the
// caller's via workOnly (the stats.count_work_only config flag; the
// leaderboard always passes true).
func Completions(sessions []models.Session, workOnly bool) []time.Time {
	out := make([]time.Time, 0, len(sessions))
	for _, s := range sessions {
		if workOnly && !s.SessionType.IsWork() {
			continue
		}
		out = append(out, s.CompletedAt)
	}
	return out
}
