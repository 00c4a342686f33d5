package model

import "time"

// Toolbox statuses as stored in toolboxes.status.
const (
	ToolboxOperational = "operational"
	ToolboxMaintenance = "maintenance"
	ToolboxOffline     = "offline"
)

// Toolbox mirrors the `toolboxes` table.  Each physical container in the
// field maps to one row; RaspberryPiSerial ties the box to the edge device
// mounted on it and is unique when present.
type Toolbox struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Zone                *string   `json:"zone,omitempty"`
	LocationDescription *string   `json:"location_description,omitempty"`
	RaspberryPiSerial   *string   `json:"raspberry_pi_serial,omitempty"`
	Status              string    `json:"status"`
	TotalItems          int       `json:"total_items"`
	ImageURL            *string   `json:"image_url,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
