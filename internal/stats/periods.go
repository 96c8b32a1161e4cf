// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tomtom215/focusgraph/internal/models"
)

// DefaultLookbackDays is the period aggregation window when the caller does
// not specify one.
const DefaultLookbackDays = 30

// AggregatePeriods groups sessions inside a look-back window into ordered
// buckets at the requested granularity, counting sessions by type and
// summing durations per bucket. Buckets are returned ascending by key.
//
// lookbackDays <= 0 falls back to DefaultLookbackDays; an invalid
// granularity falls back to day buckets. Sessions completed before
// now-lookback are ignored. Durations sum as whole minutes with no
// rounding beyond what each session stores.
func AggregatePeriods(sessions []models.Session, lookbackDays int, granularity models.Granularity, now time.Time, loc *time.Location) []models.PeriodBucket {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	if !granularity.Valid() {
		granularity = models.GranularityDay
	}

	cutoff := now.AddDate(0, 0, -lookbackDays)
	byKey := make(map[string]*models.PeriodBucket)

	for _, s := range sessions {
		if s.CompletedAt.Before(cutoff) {
			continue
		}

		key := bucketKey(s.CompletedAt.In(loc), granularity)
		bucket, ok := byKey[key]
		if !ok {
			bucket = &models.PeriodBucket{Key: key}
			byKey[key] = bucket
		}

		bucket.TotalSessions++
		bucket.TotalDurationMinutes += s.Duration
		switch s.SessionType {
		case models.SessionTypeWork:
			bucket.WorkSessions++
		case models.SessionTypeBreak:
			bucket.BreakSessions++
		case models.SessionTypeLongBreak:
			bucket.LongBreakSessions++
		}
	}

	buckets := make([]models.PeriodBucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})

	return buckets
}

// bucketKey formats a local timestamp as its bucket label. Keys at the same
// granularity sort chronologically as strings.
func bucketKey(t time.Time, granularity models.Granularity) string {
	switch granularity {
	case models.GranularityWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case models.GranularityMonth:
		return t.Format("2006-01")
	default:
		return t.Format(dayKeyFormat)
	}
}

// WeeklyActivity counts sessions per day of the current calendar week and
// returns the seven counts ordered Monday through Sunday.
//
// The raw grouping indexes by time.Weekday (Sunday-first); the array is then
// rotated left one position (indices 1-6 followed by index 0) so Sunday's
// count lands at the final position for display.
func WeeklyActivity(sessions []models.Session, now time.Time, loc *time.Location) [7]int {
	local := now.In(loc)
	year, month, day := local.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, loc)

	// Week runs Sunday 00:00 through the following Sunday, matching the
	// raw time.Weekday numbering.
	weekStart := midnight.AddDate(0, 0, -int(local.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)

	var raw [7]int
	for _, s := range sessions {
		completed := s.CompletedAt.In(loc)
		if completed.Before(weekStart) || !completed.Before(weekEnd) {
			continue
		}
		raw[completed.Weekday()]++
	}

	var rotated [7]int
	for i := 0; i < 7; i++ {
		rotated[i] = raw[(i+1)%7]
	}
	return rotated
}

// CalendarMap returns one entry per distinct calendar day with at least one
// session, keyed "2006-01-02", holding that day's session count. Used to
// highlight active days in a calendar widget.
func CalendarMap(sessions []models.Session, loc *time.Location) map[string]int {
	days := make(map[string]int)
	for _, s := range sessions {
		days[s.CompletedAt.In(loc).Format(dayKeyFormat)]++
	}
	return days
}

// AverageSessionsPerDay returns total sessions divided by distinct active
// days, rounded to one decimal place. Zero active days yields 0.
func AverageSessionsPerDay(totalSessions, activeDays int) float64 {
	if activeDays <= 0 {
		return 0
	}
	return math.Round(float64(totalSessions)/float64(activeDays)*10) / 10
}

// TotalFocusMinutes sums the duration of work sessions.
func TotalFocusMinutes(sessions []models.Session) int {
	total := 0
	for _, s := range sessions {
		if s.SessionType.IsWork() {
			total += s.Duration
		}
	}
	return total
}
