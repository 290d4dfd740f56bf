// Package liveness derives a screen's online/offline badge from heartbeat
// recency and records incoming heartbeats.
package liveness

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/db"
	"github.com/castell-digital/marquee/internal/model"
)

// OnlineThreshold is how recently a screen must have checked in to count as
// online. The badge is always computed, never persisted.
const OnlineThreshold = 5 * time.Minute

// Tracker records heartbeats. The redis client is an optional fast-path
// badge cache; the database timestamp stays authoritative and the tracker
// works identically with rdb == nil.
type Tracker struct {
	store db.Store
	rdb   *redis.Client
}

func NewTracker(store db.Store, rdb *redis.Client) *Tracker {
	return &Tracker{store: store, rdb: rdb}
}

// RecordHeartbeat overwrites the screen's liveness timestamp with now and
// flips its status to active. Optional app_version / device_info reported by
// the device are folded into the screen record.
func (t *Tracker) RecordHeartbeat(ctx context.Context, screenID int, appVersion *string, deviceInfo model.JSONMap) error {
	now := time.Now()
	if err := t.store.TouchScreenHeartbeat(screenID, now, appVersion, deviceInfo); err != nil {
		return err
	}
	if t.rdb != nil {
		key := fmt.Sprintf("screen:online:%d", screenID)
		if err := t.rdb.Set(ctx, key, now.Unix(), OnlineThreshold).Err(); err != nil {
			log.Warn().Err(err).Int("screen_id", screenID).Msg("failed to cache online badge")
		}
	}
	return nil
}

// IsOnline reports whether the screen heartbeated within OnlineThreshold of
// now. A screen that never contacted the server is offline.
func IsOnline(screen model.Screen, now time.Time) bool {
	if screen.LastHeartbeat == nil {
		return false
	}
	return now.Sub(*screen.LastHeartbeat) < OnlineThreshold
}
