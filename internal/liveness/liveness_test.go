package liveness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/castell-digital/marquee/internal/model"
)

func TestIsOnlineNeverContacted(t *testing.T) {
	assert.False(t, IsOnline(model.Screen{}, time.Now()))
}

func TestIsOnlineWithinThreshold(t *testing.T) {
	now := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)

	beat := now.Add(-1 * time.Second)
	assert.True(t, IsOnline(model.Screen{LastHeartbeat: &beat}, now))

	beat = now.Add(-OnlineThreshold + time.Second)
	assert.True(t, IsOnline(model.Screen{LastHeartbeat: &beat}, now))
}

func TestIsOnlineExpires(t *testing.T) {
	now := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)

	// exactly at the threshold counts as offline
	beat := now.Add(-OnlineThreshold)
	assert.False(t, IsOnline(model.Screen{LastHeartbeat: &beat}, now))

	beat = now.Add(-time.Hour)
	assert.False(t, IsOnline(model.Screen{LastHeartbeat: &beat}, now))
}
