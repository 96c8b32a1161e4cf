// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package stats

import (
	"sort"
	"time"

	"github.com/tomtom215/focusgraph/internal/models"
)

// userTotals accumulates per-user aggregates during a leaderboard pass.
type userTotals struct {
	focusMinutes    int
	pomodoros       int
	allTypeSessions int
	workCompletions []time.Time
}

// Rank builds the focus-time leaderboard from the entire session store
// joined to the user directory.
//
// Only work sessions contribute minutes and pomodoro counts; all session
// types contribute to the productivity denominator. Entries sort descending
// by total focus minutes (user ID ascending as a deterministic tiebreak),
// truncate at models.MaxLeaderboardEntries, and carry a 1-based rank. Users
// missing from the directory are skipped rather than ranked anonymously.
//
// Pure and read-only: safe to recompute on every request or cache.
func Rank(sessions []models.Session, users map[string]models.PublicUser, now time.Time, loc *time.Location) []models.LeaderboardEntry {
	totals := make(map[string]*userTotals)

	for _, s := range sessions {
		t, ok := totals[s.UserID]
		if !ok {
			t = &userTotals{}
			totals[s.UserID] = t
		}
		t.allTypeSessions++
		if s.SessionType.IsWork() {
			t.focusMinutes += s.Duration
			t.pomodoros++
			t.workCompletions = append(t.workCompletions, s.CompletedAt)
		}
	}

	entries := make([]models.LeaderboardEntry, 0, len(totals))
	for userID, t := range totals {
		user, ok := users[userID]
		if !ok {
			continue
		}
		if t.pomodoros == 0 {
			// Break-only users have no focus time to rank.
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			UserID:             userID,
			Username:           user.Username,
			Email:              user.Email,
			TotalFocusMinutes:  t.focusMinutes,
			CompletedPomodoros: t.pomodoros,
			CurrentStreak:      CurrentStreak(t.workCompletions, now, loc),
			ProductivityScore:  ProductivityScore(t.pomodoros, t.allTypeSessions),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalFocusMinutes != entries[j].TotalFocusMinutes {
			return entries[i].TotalFocusMinutes > entries[j].TotalFocusMinutes
		}
		return entries[i].UserID < entries[j].UserID
	})

	if len(entries) > models.MaxLeaderboardEntries {
		entries = entries[:models.MaxLeaderboardEntries]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}

// ProductivityScore returns round(100 * workSessions / max(1, totalSessions)),
// capped at 100. Always within [0, 100] for any input.
func ProductivityScore(workSessions, totalSessions int) int {
	if workSessions <= 0 {
		return 0
	}
	if totalSessions < 1 {
		totalSessions = 1
	}
	score := (workSessions*100 + totalSessions/2) / totalSessions
	if score > 100 {
		score = 100
	}
	return score
}

// FallbackEntry builds the degraded single-entry leaderboard used when the
// store-wide scan is unavailable: the requesting user alone, rank forced to
// 1, computed from whatever locally readable sessions were supplied (nil is
// fine). It cannot fail.
func FallbackEntry(user models.PublicUser, sessions []models.Session, now time.Time, loc *time.Location) models.LeaderboardEntry {
	focus := 0
	pomodoros := 0
	var workCompletions []time.Time
	for _, s := range sessions {
		if s.SessionType.IsWork() {
			focus += s.Duration
			pomodoros++
			workCompletions = append(workCompletions, s.CompletedAt)
		}
	}

	return models.LeaderboardEntry{
		Rank:               1,
		UserID:             user.ID,
		Username:           user.Username,
		Email:              user.Email,
		TotalFocusMinutes:  focus,
		CompletedPomodoros: pomodoros,
		CurrentStreak:      CurrentStreak(workCompletions, now, loc),
		ProductivityScore:  ProductivityScore(pomodoros, len(sessions)),
	}
}
