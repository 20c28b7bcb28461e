// Package billing holds the pure rate and fee arithmetic behind contract
// totals and invoice generation. Nothing in here touches the database; the
// service layer feeds it snapshot values from the contract row.
package billing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// RateTier identifies which of the three vehicle rates applies to a rental
// duration.
type RateTier string

const (
	TierDaily   RateTier = "daily"
	TierWeekly  RateTier = "weekly"
	TierMonthly RateTier = "monthly"
)

var (
	daysPerWeek  = decimal.NewFromInt(7)
	daysPerMonth = decimal.NewFromInt(30)
	hundred      = decimal.NewFromInt(100)
)

// RentalDays returns the billable duration of a rental in whole days:
// end minus start with any partial day counting as a full one, minimum 1,
// so a same-day rental still bills one day. Same ceil rule as DaysLate.
func RentalDays(start, end time.Time) int32 {
	days := int32(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// SelectRate picks the one scalar rate that applies to a rental of the
// given duration: 30 days or more takes the monthly rate when the vehicle
// has one, 7 or more the weekly rate, anything else the daily rate. A
// vehicle with no daily rate prices at zero.
func SelectRate(days int32, daily decimal.Decimal, weekly, monthly decimal.NullDecimal) (decimal.Decimal, RateTier) {
	if days >= 30 && monthly.Valid && monthly.Decimal.IsPositive() {
		return monthly.Decimal, TierMonthly
	}
	if days >= 7 && weekly.Valid && weekly.Decimal.IsPositive() {
		return weekly.Decimal, TierWeekly
	}
	return daily, TierDaily
}

// RentalCharge prices a duration at its selected tier, pro-rated exactly:
// the weekly rate bills days/7 weeks and the monthly rate days/30 months,
// with no rounding of partial periods.
func RentalCharge(days int32, daily decimal.Decimal, weekly, monthly decimal.NullDecimal) decimal.Decimal {
	rate, tier := SelectRate(days, daily, weekly, monthly)
	d := decimal.NewFromInt32(days)
	switch tier {
	case TierMonthly:
		return rate.Mul(d).Div(daysPerMonth)
	case TierWeekly:
		return rate.Mul(d).Div(daysPerWeek)
	default:
		return rate.Mul(d)
	}
}
