package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/castell-digital/marquee/internal/model"
)

func TestResolveNoActivePlaylists(t *testing.T) {
	inactive := activePlaylist(1)
	inactive.Active = false

	d := Resolve(nil, time.Now())
	assert.Nil(t, d.Playlist)
	assert.False(t, d.FallbackUsed)

	d = Resolve([]model.Playlist{inactive}, time.Now())
	assert.Nil(t, d.Playlist)
	assert.False(t, d.FallbackUsed)
}

func TestResolvePrefersMatchingOverHigherPriorityNonMatch(t *testing.T) {
	matching := activePlaylist(1)
	matching.Priority = 5

	blocked := activePlaylist(2)
	blocked.Priority = 10
	blocked.Weekdays = "5" // Saturday only

	now := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC) // Tuesday
	d := Resolve([]model.Playlist{blocked, matching}, now)

	assert.NotNil(t, d.Playlist)
	assert.Equal(t, 1, d.Playlist.ID)
	assert.False(t, d.FallbackUsed)
	// the losing candidate's failed checks are still reported
	assert.Len(t, d.Diagnostics, 1)
	assert.Equal(t, 2, d.Diagnostics[0].PlaylistID)
	assert.Contains(t, d.Diagnostics[0].Failed, CheckWeekday)
}

func TestResolveHighestPriorityAmongMatches(t *testing.T) {
	low := activePlaylist(1)
	low.Priority = 1
	high := activePlaylist(2)
	high.Priority = 9

	d := Resolve([]model.Playlist{low, high}, time.Now())
	assert.Equal(t, 2, d.Playlist.ID)
	assert.False(t, d.FallbackUsed)
}

func TestResolveTieBreaksOnLowestID(t *testing.T) {
	a := activePlaylist(7)
	a.Priority = 3
	b := activePlaylist(4)
	b.Priority = 3

	d := Resolve([]model.Playlist{a, b}, time.Now())
	assert.Equal(t, 4, d.Playlist.ID)
}

func TestResolveFallbackWhenNothingMatches(t *testing.T) {
	only := activePlaylist(1)
	only.Priority = 2
	only.StartDate = datePtr(2030, 1, 1)

	now := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	d := Resolve([]model.Playlist{only}, now)

	assert.NotNil(t, d.Playlist)
	assert.Equal(t, 1, d.Playlist.ID)
	assert.True(t, d.FallbackUsed)
	assert.Len(t, d.Diagnostics, 1)
	assert.Contains(t, d.Diagnostics[0].Failed, CheckStartDate)
}

func TestResolveFallbackPicksHighestPriority(t *testing.T) {
	a := activePlaylist(1)
	a.Priority = 1
	a.EndDate = datePtr(2020, 1, 1)
	b := activePlaylist(2)
	b.Priority = 8
	b.EndDate = datePtr(2020, 1, 1)

	d := Resolve([]model.Playlist{a, b}, time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, d.Playlist.ID)
	assert.True(t, d.FallbackUsed)
}

// Business-hours playlist beats the always-on default during the week; on
// Saturday the default is a true schedule match, not a fallback.
func TestResolveBusinessHoursScenario(t *testing.T) {
	businessHours := activePlaylist(1)
	businessHours.Priority = 10
	businessHours.Weekdays = "0,1,2,3,4"
	businessHours.StartTime = strPtr("09:00")
	businessHours.EndTime = strPtr("17:00")

	alwaysOn := activePlaylist(2)
	alwaysOn.Priority = 1

	assigned := []model.Playlist{businessHours, alwaysOn}

	tuesday := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	d := Resolve(assigned, tuesday)
	assert.Equal(t, 1, d.Playlist.ID)
	assert.False(t, d.FallbackUsed)

	saturday := time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC)
	d = Resolve(assigned, saturday)
	assert.Equal(t, 2, d.Playlist.ID)
	assert.False(t, d.FallbackUsed)
	assert.Len(t, d.Diagnostics, 1)
	assert.Equal(t, 1, d.Diagnostics[0].PlaylistID)
}
