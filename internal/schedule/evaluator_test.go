package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/castell-digital/marquee/internal/model"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string { return &s }

func activePlaylist(id int) model.Playlist {
	return model.Playlist{ID: id, Name: "p", Active: true}
}

func TestEvaluateUnconstrainedAlwaysMatches(t *testing.T) {
	p := activePlaylist(1)
	for _, now := range []time.Time{
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 12, 30, 0, 0, time.UTC),
		time.Date(2030, 12, 31, 23, 59, 59, 0, time.UTC),
	} {
		ok, failed := Evaluate(p, now)
		assert.True(t, ok)
		assert.Empty(t, failed)
	}
}

func TestEvaluateInactive(t *testing.T) {
	p := activePlaylist(1)
	p.Active = false
	ok, failed := Evaluate(p, time.Now())
	assert.False(t, ok)
	assert.Contains(t, failed, CheckNotActive)
}

func TestEvaluateStartDate(t *testing.T) {
	p := activePlaylist(1)
	p.StartDate = datePtr(2025, 6, 10)

	ok, failed := Evaluate(p, time.Date(2025, 6, 9, 23, 59, 0, 0, time.UTC))
	assert.False(t, ok)
	assert.Contains(t, failed, CheckStartDate)

	// starting exactly today is already eligible
	ok, _ = Evaluate(p, time.Date(2025, 6, 10, 0, 0, 1, 0, time.UTC))
	assert.True(t, ok)
}

func TestEvaluateEndDateInclusive(t *testing.T) {
	p := activePlaylist(1)
	p.EndDate = datePtr(2025, 6, 10)

	// the whole end day remains eligible
	ok, _ := Evaluate(p, time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC))
	assert.True(t, ok)

	ok, failed := Evaluate(p, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
	assert.Contains(t, failed, CheckEndDate)
}

func TestEvaluateTimeWindow(t *testing.T) {
	p := activePlaylist(1)
	p.StartTime = strPtr("09:00")
	p.EndTime = strPtr("17:00")

	ok, failed := Evaluate(p, time.Date(2025, 6, 3, 8, 59, 59, 0, time.UTC))
	assert.False(t, ok)
	assert.Equal(t, []FailedCheck{CheckStartTime}, failed)

	ok, _ = Evaluate(p, time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC))
	assert.True(t, ok)

	ok, _ = Evaluate(p, time.Date(2025, 6, 3, 17, 0, 0, 0, time.UTC))
	assert.True(t, ok)

	ok, failed = Evaluate(p, time.Date(2025, 6, 3, 17, 0, 1, 0, time.UTC))
	assert.False(t, ok)
	assert.Equal(t, []FailedCheck{CheckEndTime}, failed)
}

// A window whose start lies after its end ("22:00"–"06:00") is evaluated
// literally and can never be satisfied. Pinned on purpose: screens in the
// field rely on the fallback path during such windows.
func TestEvaluateTimeWindowNeverMatchesWhenInverted(t *testing.T) {
	p := activePlaylist(1)
	p.StartTime = strPtr("22:00")
	p.EndTime = strPtr("06:00")

	for _, hour := range []int{0, 3, 5, 12, 21, 23} {
		ok, _ := Evaluate(p, time.Date(2025, 6, 3, hour, 30, 0, 0, time.UTC))
		assert.False(t, ok, "hour %d should not match", hour)
	}
}

func TestEvaluateWeekdays(t *testing.T) {
	p := activePlaylist(1)
	p.Weekdays = "0,2,4" // Mon, Wed, Fri

	// 2025-06-02 is a Monday
	matches := map[int]bool{2: true, 3: false, 4: true, 5: false, 6: true, 7: false, 8: false}
	for day, want := range matches {
		ok, failed := Evaluate(p, time.Date(2025, 6, day, 12, 0, 0, 0, time.UTC))
		assert.Equal(t, want, ok, "2025-06-%02d", day)
		if !want {
			assert.Contains(t, failed, CheckWeekday)
		}
	}
}

func TestEvaluateReportsEveryFailedCheck(t *testing.T) {
	p := activePlaylist(1)
	p.Active = false
	p.StartDate = datePtr(2030, 1, 1)
	p.StartTime = strPtr("23:00")
	p.Weekdays = "5,6"

	now := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC) // Tuesday
	ok, failed := Evaluate(p, now)
	assert.False(t, ok)
	assert.ElementsMatch(t,
		[]FailedCheck{CheckNotActive, CheckStartDate, CheckStartTime, CheckWeekday},
		failed)
}

func TestWeekdayMondayZero(t *testing.T) {
	assert.Equal(t, 0, WeekdayMondayZero(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))) // Monday
	assert.Equal(t, 5, WeekdayMondayZero(time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC))) // Saturday
	assert.Equal(t, 6, WeekdayMondayZero(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC))) // Sunday
}

func TestParseWeekdays(t *testing.T) {
	assert.Nil(t, ParseWeekdays(""))
	assert.Nil(t, ParseWeekdays("  "))
	assert.Equal(t, map[int]bool{0: true, 6: true}, ParseWeekdays("0,6"))
	// junk and out-of-range entries are dropped
	assert.Equal(t, map[int]bool{1: true}, ParseWeekdays("1,7,-1,x"))
}
