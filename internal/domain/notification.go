package domain

import "time"

// Notification is an in-app message for a tenant (overdue contract, invoice
// past due, and similar events raised by the sweeps).
type Notification struct {
	ID         int32             `json:"id"`
	TenantID   int32             `json:"tenant_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes,omitempty"`
	CreatedOn  time.Time         `json:"created_on"`
}
