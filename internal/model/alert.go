package model

import "time"

// Alert types and severities.
const (
	AlertMissingItems       = "missing_items"
	AlertUnauthorizedAccess = "unauthorized_access"
	AlertSystemError        = "system_error"

	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Alert mirrors the `alerts` table.  Alerts are produced by the queue
// consumer from access events and resolved manually from the dashboard.
type Alert struct {
	ID         string     `json:"id"`
	ToolboxID  *string    `json:"toolbox_id,omitempty"`
	AlertType  string     `json:"alert_type"`
	Severity   string     `json:"severity"`
	Message    string     `json:"message"`
	IsResolved bool       `json:"is_resolved"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy *string    `json:"resolved_by,omitempty"`
}
