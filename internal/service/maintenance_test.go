package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent-backend/internal/domain"
)

type fakeMaintRepo struct {
	nextID  int32
	records map[int32]*domain.MaintenanceRecord
}

func newFakeMaintRepo() *fakeMaintRepo {
	return &fakeMaintRepo{records: map[int32]*domain.MaintenanceRecord{}}
}

func (r *fakeMaintRepo) Create(ctx context.Context, m *domain.MaintenanceRecord) error {
	r.nextID++
	m.ID = r.nextID
	cp := *m
	r.records[m.ID] = &cp
	return nil
}

func (r *fakeMaintRepo) GetByID(ctx context.Context, tenantID, id int32) (*domain.MaintenanceRecord, error) {
	m, ok := r.records[id]
	if !ok || m.TenantID != tenantID {
		return nil, sql.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMaintRepo) Update(ctx context.Context, m *domain.MaintenanceRecord) error {
	cp := *m
	r.records[m.ID] = &cp
	return nil
}

func (r *fakeMaintRepo) Delete(ctx context.Context, tenantID, id int32) error {
	delete(r.records, id)
	return nil
}

func (r *fakeMaintRepo) ListByVehicle(ctx context.Context, tenantID, vehicleID int32) ([]domain.MaintenanceRecord, error) {
	var out []domain.MaintenanceRecord
	for _, m := range r.records {
		if m.TenantID == tenantID && m.VehicleID == vehicleID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMaintRepo) ListDue(ctx context.Context, tenantID int32, before time.Time) ([]domain.MaintenanceRecord, error) {
	var out []domain.MaintenanceRecord
	for _, m := range r.records {
		if m.TenantID == tenantID && m.Status == domain.MaintenanceStatusScheduled && m.DueOn != nil && m.DueOn.Before(before) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func newMaintenanceFixture() (*fakeMaintRepo, MaintenanceService, *domain.Vehicle) {
	vehicles := newFakeVehicleRepo()
	v := &domain.Vehicle{
		TenantID:   testTenant,
		Make:       "Toyota",
		Model:      "Avanza",
		Year:       2022,
		OdometerKm: 40000,
		Status:     domain.VehicleStatusAvailable,
	}
	vehicles.Create(context.Background(), v)

	repo := newFakeMaintRepo()
	return repo, NewMaintenanceService(repo, vehicles, nil), v
}

func TestScheduleTask(t *testing.T) {
	ctx := context.Background()
	_, svc, v := newMaintenanceFixture()

	m := &domain.MaintenanceRecord{
		TenantID:    testTenant,
		VehicleID:   v.ID,
		Type:        "oil_change",
		Description: "10W-40 and filter",
	}
	require.NoError(t, svc.ScheduleTask(ctx, m))
	assert.Equal(t, domain.MaintenanceStatusScheduled, m.Status)

	got, err := svc.GetTask(ctx, testTenant, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "oil_change", got.Type)
}

func TestScheduleTaskUnknownVehicle(t *testing.T) {
	ctx := context.Background()
	_, svc, _ := newMaintenanceFixture()

	err := svc.ScheduleTask(ctx, &domain.MaintenanceRecord{TenantID: testTenant, VehicleID: 999, Type: "brakes"})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestGetTaskNotFound(t *testing.T) {
	ctx := context.Background()
	_, svc, _ := newMaintenanceFixture()

	_, err := svc.GetTask(ctx, testTenant, 42)
	assert.ErrorIs(t, err, ErrMaintenanceNotFound)
}

func TestGetTaskOtherTenant(t *testing.T) {
	ctx := context.Background()
	_, svc, v := newMaintenanceFixture()

	m := &domain.MaintenanceRecord{TenantID: testTenant, VehicleID: v.ID, Type: "tires"}
	require.NoError(t, svc.ScheduleTask(ctx, m))

	_, err := svc.GetTask(ctx, testTenant+1, m.ID)
	assert.ErrorIs(t, err, ErrMaintenanceNotFound)
}

func TestCompleteTask(t *testing.T) {
	ctx := context.Background()
	_, svc, v := newMaintenanceFixture()

	m := &domain.MaintenanceRecord{TenantID: testTenant, VehicleID: v.ID, Type: "oil_change"}
	require.NoError(t, svc.ScheduleTask(ctx, m))

	done, err := svc.CompleteTask(ctx, testTenant, m.ID, decimal.NewFromInt(120), date(2024, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, domain.MaintenanceStatusCompleted, done.Status)
	assert.True(t, done.Cost.Equal(decimal.NewFromInt(120)))
	require.NotNil(t, done.CompletedOn)
	assert.Equal(t, date(2024, 3, 10), *done.CompletedOn)
}

func TestCompleteTaskNotFound(t *testing.T) {
	ctx := context.Background()
	_, svc, _ := newMaintenanceFixture()

	_, err := svc.CompleteTask(ctx, testTenant, 42, decimal.NewFromInt(50), date(2024, 3, 10))
	assert.ErrorIs(t, err, ErrMaintenanceNotFound)
}

func TestDeleteTaskNotFound(t *testing.T) {
	ctx := context.Background()
	_, svc, _ := newMaintenanceFixture()

	err := svc.DeleteTask(ctx, testTenant, 42)
	assert.ErrorIs(t, err, ErrMaintenanceNotFound)
}

func TestSuggestScheduleWithoutPlanner(t *testing.T) {
	ctx := context.Background()
	_, svc, v := newMaintenanceFixture()

	_, err := svc.SuggestSchedule(ctx, testTenant, v.ID)
	assert.ErrorIs(t, err, ErrPlannerUnavailable)
}
