package model

import "time"

// Technician statuses as stored in technicians.status.
const (
	TechnicianActive    = "active"
	TechnicianInactive  = "inactive"
	TechnicianSuspended = "suspended"
)

// Technician mirrors the `technicians` table.  A technician is identified
// in the field by the NFC card they carry; NFCCardUID and EmployeeID are
// both unique.  Rows are never physically deleted while access logs still
// reference them.
type Technician struct {
	ID         string    `json:"id"`
	NFCCardUID string    `json:"nfc_card_uid"`
	EmployeeID string    `json:"employee_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Department *string   `json:"department,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
