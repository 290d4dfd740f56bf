package packets

import (
	"time"

	"github.com/castell-digital/marquee/internal/model"
)

type TokenResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	ID    int     `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

// ScreenResponse mirrors model.Screen with the computed online badge and
// without the bearer token (admins fetch that once at creation).
type ScreenResponse struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Location      *string       `json:"location"`
	Status        string        `json:"status"`
	Online        bool          `json:"online"`
	LastHeartbeat *time.Time    `json:"last_heartbeat"`
	AppVersion    *string       `json:"app_version,omitempty"`
	DeviceInfo    model.JSONMap `json:"device_info,omitempty"`
	Tags          *string       `json:"tags,omitempty"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
}

// CreatedScreenResponse is the one place the API token is exposed.
type CreatedScreenResponse struct {
	ScreenResponse
	APIToken string `json:"api_token"`
}

type ScreenStatusResponse struct {
	Screen       ScreenResponse      `json:"screen"`
	Playlists    []PlaylistResponse  `json:"playlists"`
	RecentEvents []ScreenEventResponse `json:"recent_events"`
}

type ContentResponse struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	FilePath  *string `json:"file_path,omitempty"`
	URL       *string `json:"url,omitempty"`
	Duration  int     `json:"duration"`
	FileSize  int64   `json:"file_size"`
	Checksum  *string `json:"checksum,omitempty"`
	Active    bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type PlaylistResponse struct {
	ID          int                    `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Active      bool                   `json:"is_active"`
	StartDate   *string                `json:"start_date"`
	EndDate     *string                `json:"end_date"`
	StartTime   *string                `json:"start_time"`
	EndTime     *string                `json:"end_time"`
	Weekdays    string                 `json:"weekdays"`
	Priority    int                    `json:"priority"`
	Items       []PlaylistItemResponse `json:"items"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type PlaylistItemResponse struct {
	ID        int              `json:"id"`
	ContentID int              `json:"content_id"`
	Position  int              `json:"position"`
	Content   *ContentResponse `json:"content,omitempty"`
}

type ScreenEventResponse struct {
	ID        int           `json:"id"`
	Action    string        `json:"action"`
	ContentID *int          `json:"content_id,omitempty"`
	Details   model.JSONMap `json:"details"`
	Timestamp time.Time     `json:"timestamp"`
}
