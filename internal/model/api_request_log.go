package model

import "time"

// APIRequestLog mirrors the `api_request_logs` table.  One row per inbound
// request, written asynchronously by the request-log middleware.
type APIRequestLog struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Method         string    `json:"method"`
	Endpoint       string    `json:"endpoint"`
	StatusCode     int       `json:"status_code"`
	ResponseTimeMS int       `json:"response_time_ms"`
	IPAddress      *string   `json:"ip_address,omitempty"`
	UserAgent      *string   `json:"user_agent,omitempty"`
	ErrorMessage   *string   `json:"error_message,omitempty"`
}

// DashboardStats is the payload of GET /api/v1/dashboard/stats.
type DashboardStats struct {
	TotalCheckoutsToday int `json:"total_checkouts_today"`
	MissingItems        int `json:"missing_items"`
	ActiveTechnicians   int `json:"active_technicians"`
}
