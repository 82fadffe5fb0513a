// Package analytics computes practice-consistency statistics for a single
// trick over the session history: consecutive-day streaks and per-day
// heat-map buckets. Everything is derived from the inputs on every call;
// there is no hidden state and no caching.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/skatelog/tricksense/pkg/catalog"
	"github.com/skatelog/tricksense/pkg/session"
)

// maxGapDays is the largest calendar-day gap that still extends a streak.
const maxGapDays = 1

// StreakResult summarizes practice consistency for one trick.
type StreakResult struct {
	Current       int
	Longest       int
	LastPracticed time.Time
	TotalSessions int
}

// HasPracticed reports whether the trick appears in the history at all.
func (r StreakResult) HasPracticed() bool {
	return r.TotalSessions > 0
}

// HeatBucket is one calendar day of a practice heat-map.
type HeatBucket struct {
	Day   time.Time
	Count int
}

// Streak computes the current and longest consecutive-practice streaks for
// the trick. The current streak walks newest to oldest and breaks on the
// first gap of more than one calendar day; the longest streak walks oldest
// to newest tracking the maximum contiguous run.
func Streak(trick catalog.Trick, sessions []session.Session) StreakResult {
	practiced := filterByTrick(trick, sessions)
	result := StreakResult{TotalSessions: len(practiced)}
	if len(practiced) == 0 {
		return result
	}

	sort.SliceStable(practiced, func(i, j int) bool {
		return practiced[i].Date.After(practiced[j].Date)
	})
	result.LastPracticed = practiced[0].Date

	current := 1
	prev := practiced[0].Date
	for _, s := range practiced[1:] {
		if daysBetween(prev, s.Date) > maxGapDays {
			break
		}
		current++
		prev = s.Date
	}
	result.Current = current

	longest := 0
	run := 0
	for i := len(practiced) - 1; i >= 0; i-- {
		s := practiced[i]
		if run == 0 || daysBetween(s.Date, prev) <= maxGapDays {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
		prev = s.Date
	}
	if run > longest {
		longest = run
	}
	result.Longest = longest

	return result
}

// Heatmap buckets practice counts per calendar day across the trailing
// windowDays ending at until, zero-filling days with no session. Buckets
// come back in ascending date order with raw, uncapped counts.
func Heatmap(trick catalog.Trick, sessions []session.Session, windowDays int, until time.Time) []HeatBucket {
	if windowDays <= 0 {
		return nil
	}
	practiced := filterByTrick(trick, sessions)

	end := startOfDay(until)
	buckets := make([]HeatBucket, windowDays)
	for i := range buckets {
		day := end.AddDate(0, 0, -(windowDays - 1 - i))
		count := 0
		for _, s := range practiced {
			if startOfDay(s.Date).Equal(day) {
				count++
			}
		}
		buckets[i] = HeatBucket{Day: day, Count: count}
	}
	return buckets
}

// IntensityBand maps a raw bucket count to a display band 0..4. Counts of
// four and above share the top band.
func IntensityBand(count int) int {
	if count < 0 {
		return 0
	}
	if count >= 4 {
		return 4
	}
	return count
}

func filterByTrick(trick catalog.Trick, sessions []session.Session) []session.Session {
	var out []session.Session
	for _, s := range sessions {
		if s.Contains(trick.Name) {
			out = append(out, s)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the calendar-day distance between two instants,
// rounded so DST shifts cannot skew a 24h day into 23 or 25 hours.
func daysBetween(a, b time.Time) int {
	diff := startOfDay(a).Sub(startOfDay(b)).Hours() / 24
	return int(math.Abs(math.Round(diff)))
}
