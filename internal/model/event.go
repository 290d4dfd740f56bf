package model

import "time"

// ScreenEvent is one append-only log entry reported by a screen. ContentID is
// a soft reference: it stays valid (as null) even after the content is deleted.
type ScreenEvent struct {
	ID        int       `db:"id"         json:"id"`
	ScreenID  int       `db:"screen_id"  json:"screen_id"`
	ContentID *int      `db:"content_id" json:"content_id,omitempty"`
	Action    string    `db:"action"     json:"action"`
	Details   JSONMap   `db:"details"    json:"details"`
	Timestamp time.Time `db:"created_at" json:"timestamp"`
}
