package domain

import "time"

// User is a tenant account. Every fleet, client, contract and invoice row
// is scoped to a user id; there is no cross-tenant visibility.
type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
