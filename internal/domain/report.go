package domain

import "github.com/shopspring/decimal"

// ProfitLossRow is one calendar month of invoiced revenue against
// maintenance expense.
type ProfitLossRow struct {
	Month    string          `json:"month"` // "2024-03"
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// VehicleProfitLossRow is the same breakdown per fleet unit.
type VehicleProfitLossRow struct {
	VehicleID    int32           `json:"vehicle_id"`
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	LicensePlate string          `json:"license_plate"`
	Revenue      decimal.Decimal `json:"revenue"`
	Expenses     decimal.Decimal `json:"expenses"`
	Profit       decimal.Decimal `json:"profit"`
}
