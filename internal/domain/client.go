package domain

import "time"

// Client is a renter. Clients belong to one tenant and are referenced by
// rental contracts; deleting a client with contracts on file is rejected at
// the database level by the foreign key.
type Client struct {
	ID            int32     `json:"id"`
	TenantID      int32     `json:"tenant_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	DriverLicense string    `json:"driver_license"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}
