package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceStatus string

const (
	MaintenanceStatusScheduled  MaintenanceStatus = "scheduled"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusOverdue    MaintenanceStatus = "overdue"
)

// MaintenanceRecord is a scheduled or completed service entry for one
// vehicle. Either DueOn or DueAtKm (or both) sets when it comes due.
type MaintenanceRecord struct {
	ID          int32             `json:"id"`
	TenantID    int32             `json:"tenant_id"`
	VehicleID   int32             `json:"vehicle_id"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	DueOn       *time.Time        `json:"due_on,omitempty"`
	DueAtKm     *int32            `json:"due_at_km,omitempty"`
	CompletedOn *time.Time        `json:"completed_on,omitempty"`
	Cost        decimal.Decimal   `json:"cost"`
	Status      MaintenanceStatus `json:"status"`
	CreatedOn   time.Time         `json:"created_on"`
	UpdatedOn   time.Time         `json:"updated_on"`
}
