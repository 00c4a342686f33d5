// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into alert rows.
package queue

// AlertQueueName is the durable queue carrying alert events.
const AlertQueueName = "toolbox.alerts"

// AlertEvent is published when an access event warrants operator
// attention: items went missing on close, or a card was denied.  It
// carries enough context for the consumer to write an alert row without
// re-reading the access log.
type AlertEvent struct {
	AccessLogID  string `json:"access_log_id"`
	ToolboxID    string `json:"toolbox_id"`
	ToolboxName  string `json:"toolbox_name"`
	TechnicianID string `json:"technician_id"`
	AlertType    string `json:"alert_type"` // missing_items | unauthorized_access
	Severity     string `json:"severity"`
	Message      string `json:"message"`
	OccurredAt   string `json:"occurred_at"` // RFC 3339
}
