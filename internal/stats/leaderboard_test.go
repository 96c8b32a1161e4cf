// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/tomtom215/focusgraph/internal/models"
)

func testUser(id string) models.PublicUser {
	return models.PublicUser{
		ID:       id,
		Username: "user-" + id,
		Email:    "user-" + id + "@example.com",
	}
}

func TestRankOrderingAndTruncation(t *testing.T) {
	// 60 users with strictly increasing focus minutes; output must be the
	// top 50 in descending order.
	var sessions []models.Session
	users := make(map[string]models.PublicUser)
	for i := 0; i < 60; i++ {
		id := fmt.Sprintf("u%02d", i)
		users[id] = testUser(id)
		sessions = append(sessions, models.Session{
			UserID:      id,
			SessionType: models.SessionTypeWork,
			Duration:    10 + i,
			CompletedAt: daysAgo(0),
		})
	}

	entries := Rank(sessions, users, fixedNow, time.UTC)

	if len(entries) != models.MaxLeaderboardEntries {
		t.Fatalf("entry count = %d, want %d", len(entries), models.MaxLeaderboardEntries)
	}
	if entries[0].UserID != "u59" || entries[0].TotalFocusMinutes != 69 {
		t.Errorf("rank 1 = %s/%d, want u59/69", entries[0].UserID, entries[0].TotalFocusMinutes)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].TotalFocusMinutes < entries[i].TotalFocusMinutes {
			t.Errorf("ordering violated at %d: %d < %d",
				i, entries[i-1].TotalFocusMinutes, entries[i].TotalFocusMinutes)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("rank at %d = %d, want %d", i, entries[i].Rank, i+1)
		}
	}
}

func TestRankWorkOnlyAggregation(t *testing.T) {
	users := map[string]models.PublicUser{"a": testUser("a")}
	sessions := []models.Session{
		{UserID: "a", SessionType: models.SessionTypeWork, Duration: 25, CompletedAt: daysAgo(0)},
		{UserID: "a", SessionType: models.SessionTypeWork, Duration: 25, CompletedAt: daysAgo(1)},
		{UserID: "a", SessionType: models.SessionTypeBreak, Duration: 60, CompletedAt: daysAgo(0)},
		{UserID: "a", SessionType: models.SessionTypeLongBreak, Duration: 30, CompletedAt: daysAgo(0)},
	}

	entries := Rank(sessions, users, fixedNow, time.UTC)

	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.TotalFocusMinutes != 50 {
		t.Errorf("TotalFocusMinutes = %d, want 50 (breaks must not count)", e.TotalFocusMinutes)
	}
	if e.CompletedPomodoros != 2 {
		t.Errorf("CompletedPomodoros = %d, want 2", e.CompletedPomodoros)
	}
	if e.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (work sessions today and yesterday)", e.CurrentStreak)
	}
	// 2 work of 4 total sessions.
	if e.ProductivityScore != 50 {
		t.Errorf("ProductivityScore = %d, want 50", e.ProductivityScore)
	}
}

func TestRankSkipsUnknownAndBreakOnlyUsers(t *testing.T) {
	users := map[string]models.PublicUser{"known": testUser("known")}
	sessions := []models.Session{
		{UserID: "known", SessionType: models.SessionTypeWork, Duration: 25, CompletedAt: daysAgo(0)},
		{UserID: "ghost", SessionType: models.SessionTypeWork, Duration: 100, CompletedAt: daysAgo(0)},
		{UserID: "known2", SessionType: models.SessionTypeBreak, Duration: 10, CompletedAt: daysAgo(0)},
	}

	entries := Rank(sessions, users, fixedNow, time.UTC)

	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}
	if entries[0].UserID != "known" {
		t.Errorf("entry user = %s, want known", entries[0].UserID)
	}
}

func TestRankEmptyInput(t *testing.T) {
	entries := Rank(nil, nil, fixedNow, time.UTC)
	if len(entries) != 0 {
		t.Errorf("entry count = %d, want 0", len(entries))
	}
}

func TestProductivityScoreBounds(t *testing.T) {
	tests := []struct {
		work, total int
		want        int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{5, 10, 50},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{7, 0, 100}, // degenerate denominator clamps to 1, then caps
	}

	for _, tt := range tests {
		got := ProductivityScore(tt.work, tt.total)
		if got != tt.want {
			t.Errorf("ProductivityScore(%d, %d) = %d, want %d", tt.work, tt.total, got, tt.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("ProductivityScore(%d, %d) = %d outside [0, 100]", tt.work, tt.total, got)
		}
	}
}

func TestFallbackEntry(t *testing.T) {
	user := testUser("me")
	sessions := []models.Session{
		{UserID: "me", SessionType: models.SessionTypeWork, Duration: 25, CompletedAt: daysAgo(0)},
		{UserID: "me", SessionType: models.SessionTypeBreak, Duration: 5, CompletedAt: daysAgo(0)},
	}

	entry := FallbackEntry(user, sessions, fixedNow, time.UTC)

	if entry.Rank != 1 {
		t.Errorf("Rank = %d, want forced 1", entry.Rank)
	}
	if entry.TotalFocusMinutes != 25 || entry.CompletedPomodoros != 1 {
		t.Errorf("totals = %d/%d, want 25/1", entry.TotalFocusMinutes, entry.CompletedPomodoros)
	}
	if entry.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", entry.CurrentStreak)
	}

	// Nil sessions must still produce a usable zero entry, never panic.
	empty := FallbackEntry(user, nil, fixedNow, time.UTC)
	if empty.Rank != 1 || empty.TotalFocusMinutes != 0 {
		t.Errorf("empty fallback = rank %d / %d minutes, want 1 / 0", empty.Rank, empty.TotalFocusMinutes)
	}
}
