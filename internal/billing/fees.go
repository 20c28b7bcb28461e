package billing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DaysLate returns how many days past the scheduled end a return happened,
// counting any started day as a full one. Returns on or before the
// scheduled end yield zero.
func DaysLate(scheduledEnd, returnedAt time.Time) int32 {
	if !returnedAt.After(scheduledEnd) {
		return 0
	}
	return int32(math.Ceil(returnedAt.Sub(scheduledEnd).Hours() / 24))
}

// LateFee computes daysLate x dailyRate x lateFeePct/100, clamped at zero.
func LateFee(daysLate int32, dailyRate, lateFeePct decimal.Decimal) decimal.Decimal {
	if daysLate <= 0 {
		return decimal.Zero
	}
	fee := decimal.NewFromInt32(daysLate).Mul(dailyRate).Mul(lateFeePct.Div(hundred))
	if fee.IsNegative() {
		return decimal.Zero
	}
	return fee
}

// OverLimitFee charges each kilometre driven beyond the contract allowance
// at the per-km rate. A zero km limit means unlimited kilometres.
func OverLimitFee(kmDriven, kmLimit int32, perKmRate decimal.Decimal) decimal.Decimal {
	if kmLimit <= 0 || kmDriven <= kmLimit {
		return decimal.Zero
	}
	fee := decimal.NewFromInt32(kmDriven - kmLimit).Mul(perKmRate)
	if fee.IsNegative() {
		return decimal.Zero
	}
	return fee
}

// InsuranceCost is the daily insurance rate over the rental duration.
func InsuranceCost(days int32, dailyInsuranceRate decimal.Decimal) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return dailyInsuranceRate.Mul(decimal.NewFromInt32(days))
}

// FuelCharge bills the fuel-level shortfall at return (in eighths of a
// tank) at a flat per-eighth rate. Prepaid-fuel contracts and vehicles
// returned at or above the pickup level charge nothing.
func FuelCharge(pickupLevel, returnLevel int32, ratePerEighth decimal.Decimal, prepaid bool) decimal.Decimal {
	if prepaid {
		return decimal.Zero
	}
	delta := pickupLevel - returnLevel
	if delta <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt32(delta).Mul(ratePerEighth)
}

// Totals applies the flat tax percentage to a subtotal.
func Totals(subtotal, taxPct decimal.Decimal) (tax, total decimal.Decimal) {
	tax = subtotal.Mul(taxPct.Div(hundred)).Round(2)
	return tax, subtotal.Add(tax)
}
