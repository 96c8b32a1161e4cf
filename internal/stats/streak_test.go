// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package stats

import (
	"testing"
	"time"

	"github.com/tomtom215/focusgraph/internal/models"
)

// fixedNow is a Wednesday afternoon, used across the stats tests so the
// calculators never read the real clock.
var fixedNow = time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return fixedNow.AddDate(0, 0, -n)
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name        string
		completions []time.Time
		want        int
	}{
		{
			name:        "empty input",
			completions: nil,
			want:        0,
		},
		{
			name:        "single session today",
			completions: []time.Time{daysAgo(0)},
			want:        1,
		},
		{
			name:        "three consecutive days ending today",
			completions: []time.Time{daysAgo(0), daysAgo(1), daysAgo(2)},
			want:        3,
		},
		{
			name:        "gap breaks the streak",
			completions: []time.Time{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(5), daysAgo(6)},
			want:        3,
		},
		{
			name:        "no session today yields zero regardless of history",
			completions: []time.Time{daysAgo(1), daysAgo(2)},
			want:        0,
		},
		{
			name:        "multiple sessions per day count once",
			completions: []time.Time{daysAgo(0), daysAgo(0).Add(-2 * time.Hour), daysAgo(1)},
			want:        2,
		},
		{
			name: "early morning and late night on same day share a key",
			completions: []time.Time{
				time.Date(2026, 3, 18, 0, 5, 0, 0, time.UTC),
				time.Date(2026, 3, 17, 23, 55, 0, 0, time.UTC),
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentStreak(tt.completions, fixedNow, time.UTC)
			if got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreakIdempotent(t *testing.T) {
	completions := []time.Time{daysAgo(0), daysAgo(1), daysAgo(2)}

	first := CurrentStreak(completions, fixedNow, time.UTC)
	second := CurrentStreak(completions, fixedNow, time.UTC)

	if first != second {
		t.Errorf("repeated calls disagree: %d then %d", first, second)
	}
}

func TestCurrentStreakTimezoneBoundary(t *testing.T) {
	// 23:30 UTC on March 17 is already March 18 in UTC+2, so with that
	// location injected the session counts as "today".
	loc := time.FixedZone("UTC+2", 2*60*60)
	completions := []time.Time{time.Date(2026, 3, 17, 23, 30, 0, 0, time.UTC)}

	if got := CurrentStreak(completions, fixedNow, loc); got != 1 {
		t.Errorf("CurrentStreak() in UTC+2 = %d, want 1", got)
	}
	if got := CurrentStreak(completions, fixedNow, time.UTC); got != 0 {
		t.Errorf("CurrentStreak() in UTC = %d, want 0", got)
	}
}

func TestCompletions(t *testing.T) {
	sessions := []models.Session{
		{SessionType: models.SessionTypeWork, CompletedAt: daysAgo(0)},
		{SessionType: models.SessionTypeBreak, CompletedAt: daysAgo(1)},
		{SessionType: models.SessionTypeLongBreak, CompletedAt: daysAgo(2)},
	}

	if got := len(Completions(sessions, true)); got != 1 {
		t.Errorf("work-only completions = %d, want 1", got)
	}
	if got := len(Completions(sessions, false)); got != 3 {
		t.Errorf("all-type completions = %d, want 3", got)
	}
}
