package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDaysLate(t *testing.T) {
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("On time return", func(t *testing.T) {
		assert.Equal(t, int32(0), DaysLate(end, end))
		assert.Equal(t, int32(0), DaysLate(end, end.Add(-6*time.Hour)))
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		assert.Equal(t, int32(1), DaysLate(end, end.Add(5*time.Hour)))
	})

	t.Run("Two full days", func(t *testing.T) {
		assert.Equal(t, int32(2), DaysLate(end, end.Add(48*time.Hour)))
	})
}

func TestLateFee(t *testing.T) {
	t.Run("Two days at 150 percent", func(t *testing.T) {
		// 2 x 45 x 1.5 = 135
		fee := LateFee(2, d("45"), d("150"))
		assert.True(t, d("135").Equal(fee), "fee = %s", fee)
	})

	t.Run("Zero days late", func(t *testing.T) {
		assert.True(t, LateFee(0, d("45"), d("150")).IsZero())
	})
}

func TestOverLimitFee(t *testing.T) {
	rate := d("0.25")

	tests := []struct {
		name    string
		driven  int32
		limit   int32
		want    decimal.Decimal
	}{
		{"Under limit", 400, 500, decimal.Zero},
		{"At limit exactly", 500, 500, decimal.Zero},
		{"Linear in excess", 700, 500, d("50")},
		{"Unlimited contract", 9000, 0, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := OverLimitFee(tt.driven, tt.limit, rate)
			assert.True(t, tt.want.Equal(fee), "fee = %s, want %s", fee, tt.want)
		})
	}
}

func TestInsuranceCost(t *testing.T) {
	cost := InsuranceCost(5, d("12.50"))
	assert.True(t, d("62.50").Equal(cost), "cost = %s", cost)
	assert.True(t, InsuranceCost(0, d("12.50")).IsZero())
}

func TestFuelCharge(t *testing.T) {
	rate := d("15")

	t.Run("Returned two eighths short", func(t *testing.T) {
		charge := FuelCharge(8, 6, rate, false)
		assert.True(t, d("30").Equal(charge), "charge = %s", charge)
	})

	t.Run("Returned full", func(t *testing.T) {
		assert.True(t, FuelCharge(8, 8, rate, false).IsZero())
	})

	t.Run("Returned above pickup level", func(t *testing.T) {
		assert.True(t, FuelCharge(4, 8, rate, false).IsZero())
	})

	t.Run("Prepaid policy never charges", func(t *testing.T) {
		assert.True(t, FuelCharge(8, 0, rate, true).IsZero())
	})
}

func TestTotals(t *testing.T) {
	t.Run("Eleven percent on 500", func(t *testing.T) {
		tax, total := Totals(d("500"), d("11"))
		assert.True(t, d("55").Equal(tax), "tax = %s", tax)
		assert.True(t, d("555").Equal(total), "total = %s", total)
	})

	t.Run("Tax rounds to cents", func(t *testing.T) {
		tax, total := Totals(d("333.33"), d("11"))
		assert.True(t, d("36.67").Equal(tax), "tax = %s", tax)
		assert.True(t, d("370.00").Equal(total), "total = %s", total)
	})
}
