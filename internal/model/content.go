package model

import "time"

// Content types. For image/video/pdf the uploaded file is authoritative,
// for web the URL is.
const (
	ContentTypeImage = "image"
	ContentTypeVideo = "video"
	ContentTypePDF   = "pdf"
	ContentTypeWeb   = "web"
)

type Content struct {
	ID        int       `db:"id"         json:"id"`
	Title     string    `db:"title"      json:"title"`
	Type      string    `db:"type"       json:"type"`
	FilePath  *string   `db:"file_path"  json:"file_path,omitempty"`
	URL       *string   `db:"url"        json:"url,omitempty"`
	Duration  int       `db:"duration"   json:"duration"`
	FileSize  int64     `db:"file_size"  json:"file_size"`
	Checksum  *string   `db:"checksum"   json:"checksum,omitempty"`
	Active    bool      `db:"is_active"  json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Source returns the payload reference a screen should load: the URL for
// web content, the stored file location otherwise.
func (c Content) Source() string {
	if c.Type == ContentTypeWeb {
		if c.URL != nil {
			return *c.URL
		}
		return ""
	}
	if c.FilePath != nil {
		return *c.FilePath
	}
	return ""
}
