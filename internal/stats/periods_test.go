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

func workSession(completed time.Time, minutes int) models.Session {
	return models.Session{
		SessionType: models.SessionTypeWork,
		Duration:    minutes,
		CompletedAt: completed,
	}
}

func TestAggregatePeriodsDayBuckets(t *testing.T) {
	sessions := []models.Session{
		workSession(daysAgo(0), 25),
		workSession(daysAgo(0), 50),
		{SessionType: models.SessionTypeBreak, Duration: 5, CompletedAt: daysAgo(0)},
		workSession(daysAgo(2), 25),
		// Outside the 30-day window, must be ignored.
		workSession(daysAgo(45), 25),
	}

	buckets := AggregatePeriods(sessions, 30, models.GranularityDay, fixedNow, time.UTC)

	if len(buckets) != 2 {
		t.Fatalf("bucket count = %d, want 2", len(buckets))
	}

	// Ascending by key: the older day first.
	if buckets[0].Key != daysAgo(2).Format("2006-01-02") {
		t.Errorf("first bucket key = %q, want older day first", buckets[0].Key)
	}

	today := buckets[1]
	if today.TotalSessions != 3 {
		t.Errorf("today total = %d, want 3", today.TotalSessions)
	}
	if today.WorkSessions != 2 || today.BreakSessions != 1 || today.LongBreakSessions != 0 {
		t.Errorf("today by-type = %d/%d/%d, want 2/1/0",
			today.WorkSessions, today.BreakSessions, today.LongBreakSessions)
	}
	if today.TotalDurationMinutes != 80 {
		t.Errorf("today duration = %d, want 80", today.TotalDurationMinutes)
	}
}

func TestAggregatePeriodsEmptyInput(t *testing.T) {
	buckets := AggregatePeriods(nil, 30, models.GranularityDay, fixedNow, time.UTC)
	if len(buckets) != 0 {
		t.Errorf("bucket count = %d, want 0 for empty input", len(buckets))
	}
}

func TestAggregatePeriodsGranularityKeys(t *testing.T) {
	sessions := []models.Session{workSession(fixedNow, 25)}

	tests := []struct {
		granularity models.Granularity
		wantKey     string
	}{
		{models.GranularityDay, "2026-03-18"},
		{models.GranularityWeek, "2026-W12"},
		{models.GranularityMonth, "2026-03"},
		{"bogus", "2026-03-18"}, // invalid falls back to day
	}

	for _, tt := range tests {
		buckets := AggregatePeriods(sessions, 30, tt.granularity, fixedNow, time.UTC)
		if len(buckets) != 1 {
			t.Fatalf("granularity %q: bucket count = %d, want 1", tt.granularity, len(buckets))
		}
		if buckets[0].Key != tt.wantKey {
			t.Errorf("granularity %q: key = %q, want %q", tt.granularity, buckets[0].Key, tt.wantKey)
		}
	}
}

func TestWeeklyActivityRotation(t *testing.T) {
	// fixedNow is Wednesday 2026-03-18; the current week runs Sunday
	// 2026-03-15 through Saturday 2026-03-21.
	sunday := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	sessions := []models.Session{
		workSession(sunday, 25),
		workSession(monday, 25),
		workSession(monday.Add(time.Hour), 25),
		// Previous week, must not count.
		workSession(sunday.AddDate(0, 0, -7), 25),
	}

	week := WeeklyActivity(sessions, fixedNow, time.UTC)

	// Monday leads the rotated array; Sunday lands at the last position.
	if week[0] != 2 {
		t.Errorf("Monday count = %d, want 2", week[0])
	}
	if week[6] != 1 {
		t.Errorf("Sunday count = %d, want 1 at index 6", week[6])
	}
	for i := 1; i < 6; i++ {
		if week[i] != 0 {
			t.Errorf("index %d count = %d, want 0", i, week[i])
		}
	}
}

func TestWeeklyActivityEmptyInput(t *testing.T) {
	week := WeeklyActivity(nil, fixedNow, time.UTC)
	for i, n := range week {
		if n != 0 {
			t.Errorf("index %d count = %d, want 0", i, n)
		}
	}
}

func TestCalendarMap(t *testing.T) {
	sessions := []models.Session{
		workSession(daysAgo(0), 25),
		workSession(daysAgo(0), 25),
		workSession(daysAgo(3), 25),
	}

	days := CalendarMap(sessions, time.UTC)

	if len(days) != 2 {
		t.Fatalf("distinct days = %d, want 2", len(days))
	}
	if days[daysAgo(0).Format("2006-01-02")] != 2 {
		t.Errorf("today count = %d, want 2", days[daysAgo(0).Format("2006-01-02")])
	}
	if days[daysAgo(3).Format("2006-01-02")] != 1 {
		t.Errorf("older day count = %d, want 1", days[daysAgo(3).Format("2006-01-02")])
	}
}

func TestAverageSessionsPerDay(t *testing.T) {
	tests := []struct {
		total, days int
		want        float64
	}{
		{0, 0, 0},
		{10, 0, 0},
		{10, 4, 2.5},
		{7, 3, 2.3},
		{1, 1, 1.0},
	}

	for _, tt := range tests {
		if got := AverageSessionsPerDay(tt.total, tt.days); got != tt.want {
			t.Errorf("AverageSessionsPerDay(%d, %d) = %v, want %v", tt.total, tt.days, got, tt.want)
		}
	}
}

func TestTotalFocusMinutes(t *testing.T) {
	sessions := []models.Session{
		workSession(daysAgo(0), 25),
		workSession(daysAgo(1), 50),
		{SessionType: models.SessionTypeBreak, Duration: 15, CompletedAt: daysAgo(0)},
	}

	if got := TotalFocusMinutes(sessions); got != 75 {
		t.Errorf("TotalFocusMinutes() = %d, want 75", got)
	}
}
