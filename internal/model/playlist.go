package model

import "time"

type Playlist struct {
	ID          int     `db:"id"          json:"id"`
	Name        string  `db:"name"        json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
	Active      bool    `db:"is_active"   json:"is_active"`

	// Scheduling constraints. All optional; an unconstrained playlist is
	// eligible at any instant.
	StartDate *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate   *time.Time `db:"end_date"   json:"end_date,omitempty"`
	StartTime *string    `db:"start_time" json:"start_time,omitempty"`
	EndTime   *string    `db:"end_time"   json:"end_time,omitempty"`

	// Weekdays is a comma-separated list of permitted days, Monday=0 through
	// Sunday=6. Empty means all days.
	Weekdays string `db:"weekdays" json:"weekdays"`

	// Higher priority wins when several playlists match at once.
	Priority int `db:"priority" json:"priority"`

	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
	Items     []PlaylistItem `json:"items,omitempty"`
}

type PlaylistItem struct {
	ID         int       `db:"id"          json:"id"`
	PlaylistID int       `db:"playlist_id" json:"playlist_id"`
	ContentID  int       `db:"content_id"  json:"content_id"`
	Position   int       `db:"position"    json:"position"`
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	Content    *Content  `db:"-"           json:"content,omitempty"`
}

type ScreenPlaylist struct {
	ID         int       `db:"id"          json:"id"`
	ScreenID   int       `db:"screen_id"   json:"screen_id"`
	PlaylistID int       `db:"playlist_id" json:"playlist_id"`
	AssignedAt time.Time `db:"assigned_at" json:"assigned_at"`
}
