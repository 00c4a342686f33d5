package model

import "time"

// Action types accepted for an access log entry.
const (
	ActionOpen         = "open"
	ActionClose        = "close"
	ActionAccessDenied = "access_denied"
)

// ValidAction reports whether s is one of the three accepted action types.
func ValidAction(s string) bool {
	return s == ActionOpen || s == ActionClose || s == ActionAccessDenied
}

// AccessLog mirrors the `access_logs` table.  Rows are append-only: the
// Timestamp is assigned by the server at insert time and is authoritative
// for ordering, and no field is updated after creation.  ItemsMissing is
// always derived server-side from ItemsBefore/ItemsAfter.
type AccessLog struct {
	ID                string    `json:"id"`
	ToolboxID         string    `json:"toolbox_id"`
	TechnicianID      string    `json:"technician_id"`
	ActionType        string    `json:"action_type"`
	Timestamp         time.Time `json:"timestamp"`
	ItemsBefore       *int      `json:"items_before,omitempty"`
	ItemsAfter        *int      `json:"items_after,omitempty"`
	ItemsMissing      int       `json:"items_missing"`
	MissingItemsList  *string   `json:"missing_items_list,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	ConditionImageURL *string   `json:"condition_image_url,omitempty"`
	IPAddress         *string   `json:"ip_address,omitempty"`
}
