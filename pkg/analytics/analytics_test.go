package analytics

import (
	"testing"
	"time"

	"github.com/skatelog/tricksense/pkg/catalog"
	"github.com/skatelog/tricksense/pkg/session"
)

var (
	kickflip = catalog.Trick{Name: "Kickflip", Type: catalog.TypeFlip, Difficulty: 3}
	ollie    = catalog.Trick{Name: "Ollie", Type: catalog.TypeBasic, Difficulty: 1}
)

// day builds a session date in March 2026 at an arbitrary evening hour, so
// the calendar-day logic is what gets exercised, not midnight timestamps.
func day(d int) time.Time {
	return time.Date(2026, time.March, d, 18, 30, 0, 0, time.UTC)
}

func sess(d int, tricks ...catalog.Trick) session.Session {
	return session.Session{Date: day(d), Note: "session", Tricks: tricks}
}

func TestStreakConsecutiveDays(t *testing.T) {
	sessions := []session.Session{
		sess(10, kickflip),
		sess(9, kickflip, ollie),
		sess(8, kickflip),
		sess(5, ollie),
	}

	result := Streak(kickflip, sessions)
	if result.Current != 3 {
		t.Errorf("Current = %d, expected 3", result.Current)
	}
	if result.Longest != 3 {
		t.Errorf("Longest = %d, expected 3", result.Longest)
	}
	if result.TotalSessions != 3 {
		t.Errorf("TotalSessions = %d, expected 3", result.TotalSessions)
	}
	if !result.LastPracticed.Equal(day(10)) {
		t.Errorf("LastPracticed = %v, expected %v", result.LastPracticed, day(10))
	}
	if !result.HasPracticed() {
		t.Error("HasPracticed() = false, expected true")
	}
}

func TestStreakBreaksOnGap(t *testing.T) {
	sessions := []session.Session{
		sess(10, kickflip),
		sess(9, kickflip),
		sess(8, kickflip),
		sess(6, kickflip),
	}

	result := Streak(kickflip, sessions)
	if result.Current != 3 {
		t.Errorf("Current = %d, expected 3", result.Current)
	}
	if result.Longest != 3 {
		t.Errorf("Longest = %d, expected 3", result.Longest)
	}
	if result.TotalSessions != 4 {
		t.Errorf("TotalSessions = %d, expected 4", result.TotalSessions)
	}
}

// The longest streak can live in the past while the current one is short.
func TestStreakLongestInPast(t *testing.T) {
	sessions := []session.Session{
		sess(10, kickflip),
		sess(4, kickflip),
		sess(3, kickflip),
		sess(2, kickflip),
		sess(1, kickflip),
	}

	result := Streak(kickflip, sessions)
	if result.Current != 1 {
		t.Errorf("Current = %d, expected 1", result.Current)
	}
	if result.Longest != 4 {
		t.Errorf("Longest = %d, expected 4", result.Longest)
	}
}

func TestStreakUnsortedInput(t *testing.T) {
	sessions := []session.Session{
		sess(8, kickflip),
		sess(10, kickflip),
		sess(9, kickflip),
	}

	result := Streak(kickflip, sessions)
	if result.Current != 3 || result.Longest != 3 {
		t.Errorf("Current/Longest = %d/%d, expected 3/3", result.Current, result.Longest)
	}
	if !result.LastPracticed.Equal(day(10)) {
		t.Errorf("LastPracticed = %v, expected %v", result.LastPracticed, day(10))
	}
}

func TestStreakNeverPracticed(t *testing.T) {
	sessions := []session.Session{sess(10, ollie)}

	result := Streak(kickflip, sessions)
	if result.HasPracticed() {
		t.Error("HasPracticed() = true, expected false")
	}
	if result.Current != 0 || result.Longest != 0 || result.TotalSessions != 0 {
		t.Errorf("expected zero result, got %+v", result)
	}
}

func TestHeatmap(t *testing.T) {
	sessions := []session.Session{
		sess(10, kickflip),
		sess(8, kickflip),
		sess(8, kickflip, ollie),
		sess(5, kickflip),
		sess(9, ollie),
	}

	buckets := Heatmap(kickflip, sessions, 7, day(10))
	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}

	expected := []struct {
		date  string
		count int
	}{
		{"2026-03-04", 0},
		{"2026-03-05", 1},
		{"2026-03-06", 0},
		{"2026-03-07", 0},
		{"2026-03-08", 2},
		{"2026-03-09", 0},
		{"2026-03-10", 1},
	}
	for i, e := range expected {
		if got := buckets[i].Day.Format("2006-01-02"); got != e.date {
			t.Errorf("bucket %d day = %s, expected %s", i, got, e.date)
		}
		if buckets[i].Count != e.count {
			t.Errorf("bucket %d count = %d, expected %d", i, buckets[i].Count, e.count)
		}
	}
}

func TestHeatmapEmptyWindow(t *testing.T) {
	if got := Heatmap(kickflip, nil, 0, day(10)); got != nil {
		t.Errorf("expected nil for zero window, got %v", got)
	}
	if got := Heatmap(kickflip, nil, -3, day(10)); got != nil {
		t.Errorf("expected nil for negative window, got %v", got)
	}
}

func TestIntensityBand(t *testing.T) {
	testCases := []struct {
		count, expected int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 4},
		{9, 4},
	}
	for _, tc := range testCases {
		if got := IntensityBand(tc.count); got != tc.expected {
			t.Errorf("IntensityBand(%d) = %d, expected %d", tc.count, got, tc.expected)
		}
	}
}
