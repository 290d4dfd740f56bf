package packets

// auth

type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}

// screens

type CreateScreenRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type UpdateScreenRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive offline"`
	Tags     *string `json:"tags"`
}

type AssignPlaylistRequest struct {
	PlaylistID int `json:"playlist_id" binding:"required"`
}

// content

type UpdateContentRequest struct {
	Title    *string `json:"title"`
	URL      *string `json:"url"`
	Duration *int    `json:"duration"`
	Active   *bool   `json:"is_active"`
}

// playlists

type CreatePlaylistRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"is_active"`
}

// UpdateScheduleRequest carries the scheduling constraints. Dates are
// "2006-01-02", times "15:04" or "15:04:05", weekdays a comma-separated
// Monday=0 list. Date/time fields replace the stored value outright so a
// null clears the bound.
type UpdateScheduleRequest struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Weekdays  *string `json:"weekdays"`
	Priority  *int    `json:"priority"`
}

type AddPlaylistItemRequest struct {
	ContentID int `json:"content_id" binding:"required"`
	Position  int `json:"position"`
}

type UpdatePlaylistItemRequest struct {
	Position *int `json:"position"`
}

type ReorderPlaylistItemsRequest struct {
	ItemIDs []int `json:"item_ids" binding:"required"`
}
