package domain

import "time"

type ImageStatus string

const (
	ImageStatusPending   ImageStatus = "pending"
	ImageStatusConfirmed ImageStatus = "confirmed"
)

// VehicleImage tracks an upload through the presigned-URL flow: a row is
// created pending when the upload URL is issued and confirmed once the
// client reports the upload done. Stale pending rows are swept nightly.
type VehicleImage struct {
	ID          int32       `json:"id"`
	TenantID    int32       `json:"tenant_id"`
	VehicleID   *int32      `json:"vehicle_id,omitempty"`
	StorageKey  string      `json:"storage_key"`
	ContentType string      `json:"content_type"`
	FileSize    int64       `json:"file_size"`
	IsPrimary   bool        `json:"is_primary"`
	Status      ImageStatus `json:"status"`
	CreatedOn   time.Time   `json:"created_on"`
}
