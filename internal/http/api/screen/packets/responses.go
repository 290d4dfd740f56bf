package packets

import "github.com/castell-digital/marquee/internal/schedule"

type RegisterResponse struct {
	ScreenID int     `json:"screen_id"`
	APIToken string  `json:"api_token"`
	Name     string  `json:"name"`
	Location *string `json:"location"`
}

type HeartbeatResponse struct {
	Status   string `json:"status"`
	ScreenID int    `json:"screen_id"`
	Name     string `json:"name"`
}

// PlaylistItemResponse is one entry of the ordered display list. Source is
// the URL for web content and the stored file location otherwise.
type PlaylistItemResponse struct {
	ContentID int    `json:"content_id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Source    string `json:"source"`
	Duration  int    `json:"duration"`
}

type CurrentPlaylistResponse struct {
	PlaylistID int                    `json:"playlist_id"`
	Name       string                 `json:"name"`
	Priority   int                    `json:"priority"`
	Items      []PlaylistItemResponse `json:"items"`

	FallbackUsed bool                  `json:"fallback_used"`
	Diagnostics  []schedule.Diagnostic `json:"diagnostics,omitempty"`
}

// NothingToShowResponse is the explicit empty decision: no active playlist
// is assigned to the screen right now.
type NothingToShowResponse struct {
	Message     string                `json:"message"`
	Diagnostics []schedule.Diagnostic `json:"diagnostics,omitempty"`
}

type LogEventResponse struct {
	Status  string `json:"status"`
	EventID int    `json:"event_id"`
}
