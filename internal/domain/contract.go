package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusOverdue   ContractStatus = "overdue"
)

type DepositStatus string

const (
	DepositStatusHeld      DepositStatus = "held"
	DepositStatusReturned  DepositStatus = "returned"
	DepositStatusForfeited DepositStatus = "forfeited"
)

type FuelPolicy string

const (
	FuelPolicyFullToFull FuelPolicy = "full_to_full"
	FuelPolicyPrepaid    FuelPolicy = "prepaid"
)

// RentalContract binds one vehicle to one client for a date range.
// Rate fields are snapshots captured from the vehicle at creation time;
// all billing uses these snapshots, not live vehicle prices.
type RentalContract struct {
	ID       int32 `json:"id"`
	TenantID int32 `json:"tenant_id"`

	VehicleID int32 `json:"vehicle_id"`
	ClientID  int32 `json:"client_id"`

	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`

	DailyRate   decimal.Decimal     `json:"daily_rate"`
	WeeklyRate  decimal.NullDecimal `json:"weekly_rate"`
	MonthlyRate decimal.NullDecimal `json:"monthly_rate"`
	Discount    decimal.Decimal     `json:"discount"`

	InsurancePackage   string          `json:"insurance_package"`
	DailyInsuranceRate decimal.Decimal `json:"daily_insurance_rate"`

	KmLimit         int32           `json:"km_limit"` // 0 = unlimited
	OverLimitKmRate decimal.Decimal `json:"over_limit_km_rate"`

	LateFeePercentage decimal.Decimal `json:"late_fee_percentage"`
	FuelChargeRate    decimal.Decimal `json:"fuel_charge_rate"` // per eighth of a tank
	FuelPolicy        FuelPolicy      `json:"fuel_policy"`

	DepositAmount decimal.Decimal `json:"deposit_amount"`
	DepositStatus DepositStatus   `json:"deposit_status"`

	PickupOdometerKm int32  `json:"pickup_odometer_km"`
	ReturnOdometerKm *int32 `json:"return_odometer_km,omitempty"`
	PickupFuelLevel  int32  `json:"pickup_fuel_level"`
	ReturnFuelLevel  *int32 `json:"return_fuel_level,omitempty"`

	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      ContractStatus  `json:"status"`
	Notes       string          `json:"notes"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// DamageMark is a recorded damage position on a contract's vehicle diagram.
// Marks are owned by the contract and removed with it.
type DamageMark struct {
	ID          int32     `json:"id"`
	ContractID  int32     `json:"contract_id"`
	PositionX   float64   `json:"position_x"`
	PositionY   float64   `json:"position_y"`
	Description string    `json:"description"`
	PhotoKey    string    `json:"photo_key"`
	CreatedOn   time.Time `json:"created_on"`
}
