package model

import "time"

// Image mirrors the `images` table: metadata for one uploaded file
// associated with a toolbox and optionally with a single access log.
type Image struct {
	ID          string    `json:"id"`
	ToolboxID   string    `json:"toolbox_id"`
	AccessLogID *string   `json:"access_log_id,omitempty"`
	ImageURL    string    `json:"image_url"`
	ImageType   *string   `json:"image_type,omitempty"`
	FileSize    *int      `json:"file_size,omitempty"`
	ContentType *string   `json:"content_type,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
