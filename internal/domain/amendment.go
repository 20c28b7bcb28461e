package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AmendmentType string

const (
	AmendmentTypeDates   AmendmentType = "dates"
	AmendmentTypeVehicle AmendmentType = "vehicle"
	AmendmentTypeRate    AmendmentType = "rate"
)

// ContractAmendment is an append-only audit row recording a change to a
// contract's dates, vehicle or rate. PreviousState and NewState hold JSON
// snapshots of the affected fields before and after the change.
type ContractAmendment struct {
	ID            int32           `json:"id"`
	ContractID    int32           `json:"contract_id"`
	TenantID      int32           `json:"tenant_id"`
	Type          AmendmentType   `json:"type"`
	PreviousState string          `json:"previous_state"` // JSON
	NewState      string          `json:"new_state"`      // JSON
	AmountDelta   decimal.Decimal `json:"amount_delta"`
	CreatedOn     time.Time       `json:"created_on"`
}
