package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/castell-digital/marquee/internal/model"
)

// FailedCheck identifies a single scheduling constraint a playlist did not
// satisfy at the evaluated instant.
type FailedCheck string

const (
	CheckNotActive FailedCheck = "not_active"
	CheckStartDate FailedCheck = "start_date"
	CheckEndDate   FailedCheck = "end_date"
	CheckStartTime FailedCheck = "start_time"
	CheckEndTime   FailedCheck = "end_time"
	CheckWeekday   FailedCheck = "weekday"
)

// Evaluate reports whether a playlist's scheduling constraints hold at now,
// and if not, which individual checks failed. All comparisons are inclusive:
// a playlist starting exactly today (or exactly now) is already eligible, and
// one ending today (or now) stays eligible through that instant.
//
// Time-of-day checks are literal "now >= start AND now <= end". A window with
// start_time after end_time therefore never matches; that asymmetry is
// long-standing production behavior and is kept as is.
func Evaluate(p model.Playlist, now time.Time) (bool, []FailedCheck) {
	var failed []FailedCheck

	if !p.Active {
		failed = append(failed, CheckNotActive)
	}

	today := civilDate(now)
	if p.StartDate != nil && today < civilDate(*p.StartDate) {
		failed = append(failed, CheckStartDate)
	}
	if p.EndDate != nil && today > civilDate(*p.EndDate) {
		failed = append(failed, CheckEndDate)
	}

	clock := secondsIntoDay(now)
	if p.StartTime != nil {
		if start, ok := parseClock(*p.StartTime); ok && clock < start {
			failed = append(failed, CheckStartTime)
		}
	}
	if p.EndTime != nil {
		if end, ok := parseClock(*p.EndTime); ok && clock > end {
			failed = append(failed, CheckEndTime)
		}
	}

	if days := ParseWeekdays(p.Weekdays); len(days) > 0 {
		if !days[WeekdayMondayZero(now)] {
			failed = append(failed, CheckWeekday)
		}
	}

	return len(failed) == 0, failed
}

// WeekdayMondayZero maps time.Weekday (Sunday=0) onto the Monday=0..Sunday=6
// convention used by playlist weekday sets.
func WeekdayMondayZero(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseWeekdays parses a comma-separated weekday list ("0,2,4") into a set.
// An empty or blank list yields an empty set, meaning all days are permitted.
// Out-of-range or malformed entries are skipped.
func ParseWeekdays(s string) map[int]bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	days := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || d < 0 || d > 6 {
			continue
		}
		days[d] = true
	}
	return days
}

// ValidWeekdays reports whether every entry of a comma-separated weekday
// list is an integer in 0..6. Blank lists are valid (all days).
func ValidWeekdays(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || d < 0 || d > 6 {
			return false
		}
	}
	return true
}

// civilDate collapses a timestamp to a comparable calendar day in its own
// location, so date-bound checks ignore the time component entirely.
func civilDate(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func secondsIntoDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// parseClock accepts "15:04" or "15:04:05" and returns seconds since
// midnight. Unparseable values report ok=false and the check is skipped,
// matching the permissive handling of legacy rows.
func parseClock(s string) (int, bool) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return secondsIntoDay(t), true
		}
	}
	return 0, false
}
