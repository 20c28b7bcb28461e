package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusRented      VehicleStatus = "rented"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusRetired     VehicleStatus = "retired"
)

// Vehicle is a fleet unit owned by one tenant. The weekly and monthly rates
// are optional; a vehicle priced only by the day leaves them nil.
type Vehicle struct {
	ID           int32               `json:"id"`
	TenantID     int32               `json:"tenant_id"`
	Make         string              `json:"make"`
	Model        string              `json:"model"`
	Year         int32               `json:"year"`
	LicensePlate string              `json:"license_plate"`
	VIN          string              `json:"vin"`
	OdometerKm   int32               `json:"odometer_km"`
	FuelLevel    int32               `json:"fuel_level"` // eighths of a tank, 0-8
	Status       VehicleStatus       `json:"status"`
	DailyRate    decimal.Decimal     `json:"daily_rate"`
	WeeklyRate   decimal.NullDecimal `json:"weekly_rate"`
	MonthlyRate  decimal.NullDecimal `json:"monthly_rate"`
	ImageKey     string              `json:"image_key"`
	CreatedOn    time.Time           `json:"created_on"`
	UpdatedOn    time.Time           `json:"updated_on"`
}
