package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/ai"
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type maintenanceService struct {
	maintRepo   repository.MaintenanceRepository
	vehicleRepo repository.VehicleRepository
	planner     *ai.MaintenancePlanner // nil when no API key is configured
}

func NewMaintenanceService(
	maintRepo repository.MaintenanceRepository,
	vehicleRepo repository.VehicleRepository,
	planner *ai.MaintenancePlanner,
) MaintenanceService {
	return &maintenanceService{maintRepo: maintRepo, vehicleRepo: vehicleRepo, planner: planner}
}

var ErrPlannerUnavailable = errors.New("maintenance planner is not configured")

func (s *maintenanceService) ScheduleTask(ctx context.Context, m *domain.MaintenanceRecord) error {
	if _, err := s.vehicleRepo.GetByID(ctx, m.TenantID, m.VehicleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVehicleNotFound
		}
		return err
	}
	if m.Status == "" {
		m.Status = domain.MaintenanceStatusScheduled
	}
	return s.maintRepo.Create(ctx, m)
}

func (s *maintenanceService) GetTask(ctx context.Context, tenantID, id int32) (*domain.MaintenanceRecord, error) {
	m, err := s.maintRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMaintenanceNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *maintenanceService) UpdateTask(ctx context.Context, m *domain.MaintenanceRecord) error {
	if _, err := s.GetTask(ctx, m.TenantID, m.ID); err != nil {
		return err
	}
	return s.maintRepo.Update(ctx, m)
}

func (s *maintenanceService) CompleteTask(ctx context.Context, tenantID, id int32, cost decimal.Decimal, completedOn time.Time) (*domain.MaintenanceRecord, error) {
	m, err := s.GetTask(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if completedOn.IsZero() {
		completedOn = time.Now()
	}
	m.Status = domain.MaintenanceStatusCompleted
	m.Cost = cost
	m.CompletedOn = &completedOn
	if err := s.maintRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *maintenanceService) DeleteTask(ctx context.Context, tenantID, id int32) error {
	if _, err := s.GetTask(ctx, tenantID, id); err != nil {
		return err
	}
	return s.maintRepo.Delete(ctx, tenantID, id)
}

func (s *maintenanceService) ListByVehicle(ctx context.Context, tenantID, vehicleID int32) ([]domain.MaintenanceRecord, error) {
	return s.maintRepo.ListByVehicle(ctx, tenantID, vehicleID)
}

func (s *maintenanceService) SuggestSchedule(ctx context.Context, tenantID, vehicleID int32) ([]ai.SuggestedTask, error) {
	if s.planner == nil {
		return nil, ErrPlannerUnavailable
	}
	v, err := s.vehicleRepo.GetByID(ctx, tenantID, vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return s.planner.SuggestSchedule(ctx, v)
}
