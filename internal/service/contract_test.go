package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent-backend/internal/domain"
)

func newTestContract(f *fixture) *domain.RentalContract {
	return &domain.RentalContract{
		TenantID:  testTenant,
		VehicleID: f.vehicle.ID,
		ClientID:  f.client.ID,
		StartDate: date(2024, time.March, 1),
		EndDate:   date(2024, time.March, 6),
	}
}

func TestContractService_CreateContract(t *testing.T) {
	ctx := context.Background()

	t.Run("Snapshots rates and rents the vehicle", func(t *testing.T) {
		f := newFixture()
		c, err := f.contractSvc.CreateContract(ctx, newTestContract(f), nil)
		require.NoError(t, err)

		assert.True(t, c.DailyRate.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, int32(40000), c.PickupOdometerKm)
		assert.Equal(t, int32(8), c.PickupFuelLevel)
		assert.Equal(t, domain.ContractStatusActive, c.Status)
		// 5 days at the daily rate
		assert.True(t, c.TotalAmount.Equal(decimal.NewFromInt(500)), "got %s", c.TotalAmount)
		assert.True(t, c.LateFeePercentage.Equal(decimal.NewFromInt(150)))

		v, _ := f.vehicles.GetByID(ctx, testTenant, f.vehicle.ID)
		assert.Equal(t, domain.VehicleStatusRented, v.Status)
	})

	t.Run("Same-day rental bills one day", func(t *testing.T) {
		f := newFixture()
		in := newTestContract(f)
		in.EndDate = in.StartDate
		c, err := f.contractSvc.CreateContract(ctx, in, nil)
		require.NoError(t, err)
		assert.True(t, c.TotalAmount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("Rejects an unavailable vehicle", func(t *testing.T) {
		f := newFixture()
		f.vehicle.Status = domain.VehicleStatusMaintenance
		f.vehicles.Update(ctx, f.vehicle)

		_, err := f.contractSvc.CreateContract(ctx, newTestContract(f), nil)
		assert.ErrorIs(t, err, ErrVehicleNotAvailable)
	})

	t.Run("Rejects an inverted date range", func(t *testing.T) {
		f := newFixture()
		in := newTestContract(f)
		in.EndDate = in.StartDate.AddDate(0, 0, -1)
		_, err := f.contractSvc.CreateContract(ctx, in, nil)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("Stores damage marks with the contract", func(t *testing.T) {
		f := newFixture()
		marks := []domain.DamageMark{{PositionX: 0.2, PositionY: 0.7, Description: "scratch on left door"}}
		c, err := f.contractSvc.CreateContract(ctx, newTestContract(f), marks)
		require.NoError(t, err)

		stored, _ := f.contracts.ListDamageMarks(ctx, c.ID)
		require.Len(t, stored, 1)
		assert.Equal(t, c.ID, stored[0].ContractID)
	})
}

func TestContractService_MarkAsReturned(t *testing.T) {
	ctx := context.Background()

	t.Run("Completes the contract and invoices it", func(t *testing.T) {
		f := newFixture()
		c, err := f.contractSvc.CreateContract(ctx, newTestContract(f), nil)
		require.NoError(t, err)

		ret := ReturnDetails{
			ReturnedAt: date(2024, time.March, 6),
			OdometerKm: 40350,
			FuelLevel:  8,
		}
		returned, invoice, err := f.contractSvc.MarkAsReturned(ctx, testTenant, c.ID, ret)
		require.NoError(t, err)

		assert.Equal(t, domain.ContractStatusCompleted, returned.Status)
		require.NotNil(t, returned.ReturnedAt)
		assert.Equal(t, int32(40350), *returned.ReturnOdometerKm)

		// vehicle released with meters rolled forward
		v, _ := f.vehicles.GetByID(ctx, testTenant, f.vehicle.ID)
		assert.Equal(t, domain.VehicleStatusAvailable, v.Status)
		assert.Equal(t, int32(40350), v.OdometerKm)

		// 500 rental + 11% tax
		assert.Equal(t, "INV-0001", invoice.InvoiceNumber)
		assert.True(t, invoice.Subtotal.Equal(decimal.NewFromInt(500)), "got %s", invoice.Subtotal)
		assert.True(t, invoice.Total.Equal(decimal.NewFromInt(555)), "got %s", invoice.Total)
	})

	t.Run("Rejects odometer regression", func(t *testing.T) {
		f := newFixture()
		c, _ := f.contractSvc.CreateContract(ctx, newTestContract(f), nil)

		_, _, err := f.contractSvc.MarkAsReturned(ctx, testTenant, c.ID, ReturnDetails{OdometerKm: 100})
		assert.ErrorIs(t, err, ErrOdometerRegression)
	})

	t.Run("Rejects a completed contract", func(t *testing.T) {
		f := newFixture()
		c, _ := f.contractSvc.CreateContract(ctx, newTestContract(f), nil)
		ret := ReturnDetails{ReturnedAt: date(2024, time.March, 6), OdometerKm: 40100, FuelLevel: 8}
		_, _, err := f.contractSvc.MarkAsReturned(ctx, testTenant, c.ID, ret)
		require.NoError(t, err)

		_, _, err = f.contractSvc.MarkAsReturned(ctx, testTenant, c.ID, ret)
		assert.ErrorIs(t, err, ErrContractNotActive)
	})
}

func TestContractService_Amendments(t *testing.T) {
	ctx := context.Background()

	t.Run("AmendDates reprices and records the delta", func(t *testing.T) {
		f := newFixture()
		c, _ := f.contractSvc.CreateContract(ctx, newTestContract(f), nil)

		updated, err := f.contractSvc.AmendDates(ctx, testTenant, c.ID,
			date(2024, time.March, 1), date(2024, time.March, 11))
		require.NoError(t, err)

		// 10 days now
		assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(1000)))

		amendments, _ := f.contracts.ListAmendments(ctx, testTenant, c.ID)
		require.Len(t, amendments, 1)
		assert.Equal(t, domain.AmendmentTypeDates, amendments[0].Type)
		assert.True(t, amendments[0].AmountDelta.Equal(decimal.NewFromInt(500)))
		assert.Contains(t, amendments[0].PreviousState, "2024-03-06")
		assert.Contains(t, amendments[0].NewState, "2024-03-11")
	})

	t.Run("AmendVehicle swaps fleet statuses", func(t *testing.T) {
		f := newFixture()
		c, _ := f.contractSvc.CreateContract(ctx, newTestContract(f), nil)

		spare := &domain.Vehicle{
			TenantID: testTenant, Make: "Daihatsu", Model: "Xenia",
			Status: domain.VehicleStatusAvailable, DailyRate: decimal.NewFromInt(90),
		}
		f.vehicles.Create(ctx, spare)

		updated, err := f.contractSvc.AmendVehicle(ctx, testTenant, c.ID, spare.ID)
		require.NoError(t, err)

		assert.Equal(t, spare.ID, updated.VehicleID)
		// contracted rate survives the swap
		assert.True(t, updated.DailyRate.Equal(decimal.NewFromInt(100)))

		old, _ := f.vehicles.GetByID(ctx, testTenant, f.vehicle.ID)
		assert.Equal(t, domain.VehicleStatusAvailable, old.Status)
		replacement, _ := f.vehicles.GetByID(ctx, testTenant, spare.ID)
		assert.Equal(t, domain.VehicleStatusRented, replacement.Status)
	})

	t.Run("AmendVehicle rejects a rented replacement", func(t *testing.T) {
		f := newFixture()
		c, _ := f.contractSvc.CreateContract(ctx, newTestContract(f), nil)

		busy := &domain.Vehicle{TenantID: testTenant, Status: domain.VehicleStatusRented, DailyRate: decimal.NewFromInt(90)}
		f.vehicles.Create(ctx, busy)

		_, err := f.contractSvc.AmendVehicle(ctx, testTenant, c.ID, busy.ID)
		assert.ErrorIs(t, err, ErrVehicleNotAvailable)
	})

	t.Run("AmendRate reprices from the new snapshot", func(t *testing.T) {
		f := newFixture()
		c, _ := f.contractSvc.CreateContract(ctx, newTestContract(f), nil)

		updated, err := f.contractSvc.AmendRate(ctx, testTenant, c.ID,
			decimal.NewFromInt(80), decimal.NewFromInt(50))
		require.NoError(t, err)

		// 5 days x 80 - 50 discount
		assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(350)), "got %s", updated.TotalAmount)

		amendments, _ := f.contracts.ListAmendments(ctx, testTenant, c.ID)
		require.Len(t, amendments, 1)
		assert.True(t, amendments[0].AmountDelta.Equal(decimal.NewFromInt(-150)))
	})

	t.Run("Amendments rejected on completed contracts", func(t *testing.T) {
		f := newFixture()
		c, _ := f.contractSvc.CreateContract(ctx, newTestContract(f), nil)
		_, _, err := f.contractSvc.MarkAsReturned(ctx, testTenant, c.ID,
			ReturnDetails{ReturnedAt: date(2024, time.March, 6), OdometerKm: 40100, FuelLevel: 8})
		require.NoError(t, err)

		_, err = f.contractSvc.AmendDates(ctx, testTenant, c.ID, date(2024, time.March, 1), date(2024, time.March, 20))
		assert.ErrorIs(t, err, ErrContractNotActive)
	})
}

func TestContractService_DeleteContract(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c, _ := f.contractSvc.CreateContract(ctx, newTestContract(f), nil)

	require.NoError(t, f.contractSvc.DeleteContract(ctx, testTenant, c.ID))

	v, _ := f.vehicles.GetByID(ctx, testTenant, f.vehicle.ID)
	assert.Equal(t, domain.VehicleStatusAvailable, v.Status)

	_, _, _, err := f.contractSvc.GetContract(ctx, testTenant, c.ID)
	assert.ErrorIs(t, err, ErrContractNotFound)
}
