package model

import "time"

// Screen statuses. Status is advisory; the online badge shown to admins
// is always derived from LastHeartbeat, never persisted.
const (
	ScreenStatusActive   = "active"
	ScreenStatusInactive = "inactive"
	ScreenStatusOffline  = "offline"
)

// Screen represents a remote display device in the fleet.
type Screen struct {
	ID            int        `db:"id"             json:"id"`
	Name          string     `db:"name"           json:"name"`
	Location      *string    `db:"location"       json:"location"`
	APIToken      string     `db:"api_token"      json:"-"`
	Status        string     `db:"status"         json:"status"`
	LastHeartbeat *time.Time `db:"last_heartbeat" json:"last_heartbeat"`
	AppVersion    *string    `db:"app_version"    json:"app_version,omitempty"`
	DeviceInfo    JSONMap    `db:"device_info"    json:"device_info,omitempty"`
	Tags          *string    `db:"tags"           json:"tags,omitempty"`
	CreatedAt     time.Time  `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"     json:"updated_at"`
}
