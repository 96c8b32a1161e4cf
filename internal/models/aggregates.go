// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

// Derived, non-persisted aggregates computed by the stats pipeline on every
// dashboard or leaderboard request. Nothing in this file is ever stored.
package models

import "time"

// PeriodBucket is one aggregation group (day, week, or month) of a user's
// sessions, used for activity charts.
type PeriodBucket struct {
	// Key is the bucket label: "2006-01-02" for days, "2006-W05" for ISO
	// weeks, "2006-01" for months. Buckets sort ascending by key.
	Key string `json:"key"`

	TotalSessions        int `json:"total_sessions"`
	WorkSessions         int `json:"work_sessions"`
	BreakSessions        int `json:"break_sessions"`
	LongBreakSessions    int `json:"long_break_sessions"`
	TotalDurationMinutes int `json:"total_duration_minutes"`
}

// Granularity selects the bucket size for period aggregation.
type Granularity string

// Supported bucket granularities.
const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// LeaderboardEntry is one ranked row of the focus-time leaderboard.
type LeaderboardEntry struct {
	Rank               int    `json:"rank"`
	UserID             string `json:"user_id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	TotalFocusMinutes  int    `json:"total_focus_minutes"`
	CompletedPomodoros int    `json:"completed_pomodoros"`
	CurrentStreak      int    `json:"current_streak"`

	// ProductivityScore is the percentage of the user's sessions (all
	// types) that were work sessions, capped at 100.
	ProductivityScore int `json:"productivity_score"`
}

// MaxLeaderboardEntries caps the leaderboard response length.
const MaxLeaderboardEntries = 50

// DashboardSummary is the composed view model for the dashboard endpoint.
// It tolerates partial upstream failure: a failed fetch leaves the
// corresponding collection empty and sets the matching Partial flag.
type DashboardSummary struct {
	CurrentStreak         int            `json:"current_streak"`
	TotalSessions         int            `json:"total_sessions"`
	TotalFocusMinutes     int            `json:"total_focus_minutes"`
	AverageSessionsPerDay float64        `json:"average_sessions_per_day"`
	WeeklyActivity        [7]int         `json:"weekly_activity"` // Mon..Sun
	PeriodBuckets         []PeriodBucket `json:"period_buckets"`
	CalendarDays          map[string]int `json:"calendar_days"`
	RecentReflections     []Reflection   `json:"recent_reflections"`

	SessionsPartial    bool `json:"sessions_partial,omitempty"`
	ReflectionsPartial bool `json:"reflections_partial,omitempty"`
}

// FeedEventKind identifies what a feed event records.
type FeedEventKind string

// Feed event kinds.
const (
	FeedSessionCompleted FeedEventKind = "session_completed"
	FeedReflectionAdded  FeedEventKind = "reflection_added"
)

// FeedEvent is one entry of the social activity feed. Events are retained
// ring-buffer style (most recent MaxFeedEvents) and broadcast to WebSocket
// subscribers as they happen.
type FeedEvent struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Username    string        `json:"username"`
	Kind        FeedEventKind `json:"kind"`
	SessionType SessionType   `json:"session_type,omitempty"`
	Duration    int           `json:"duration,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// MaxFeedEvents bounds feed retention.
const MaxFeedEvents = 200
