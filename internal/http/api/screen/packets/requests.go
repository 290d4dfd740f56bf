package packets

import "github.com/castell-digital/marquee/internal/model"

// RegisterRequest is sent by a fresh device on first boot.
type RegisterRequest struct {
	AppVersion *string       `json:"app_version"`
	DeviceInfo model.JSONMap `json:"device_info"`
}

type HeartbeatRequest struct {
	AppVersion *string       `json:"app_version"`
	DeviceInfo model.JSONMap `json:"device_info"`
}

type LogEventRequest struct {
	Action    string        `json:"action" binding:"required"`
	ContentID *int          `json:"content_id"`
	Details   model.JSONMap `json:"details"`
}
