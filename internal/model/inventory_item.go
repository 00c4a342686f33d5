package model

import "time"

// Inventory item statuses.
const (
	ItemPresent = "present"
	ItemMissing = "missing"
	ItemDamaged = "damaged"
)

// InventoryItem mirrors the `inventory_items` table: one named tool (or a
// quantity of identical tools) belonging to a toolbox.
type InventoryItem struct {
	ID              string     `json:"id"`
	ToolboxID       string     `json:"toolbox_id"`
	ItemName        string     `json:"item_name"`
	ItemDescription *string    `json:"item_description,omitempty"`
	Quantity        int        `json:"quantity"`
	Status          string     `json:"status"`
	LastVerified    *time.Time `json:"last_verified,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
