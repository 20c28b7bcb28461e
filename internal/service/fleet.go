package service

import (
	"context"
	"database/sql"
	"errors"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

type fleetService struct {
	vehicleRepo repository.VehicleRepository
	imageRepo   repository.ImageRepository
}

func NewFleetService(vehicleRepo repository.VehicleRepository, imageRepo repository.ImageRepository) FleetService {
	return &fleetService{vehicleRepo: vehicleRepo, imageRepo: imageRepo}
}

func (s *fleetService) AddVehicle(ctx context.Context, v *domain.Vehicle) error {
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return err
	}
	logger.Info("vehicle added", "vehicle_id", v.ID, "tenant_id", v.TenantID)
	return nil
}

func (s *fleetService) GetVehicle(ctx context.Context, tenantID, id int32) (*domain.Vehicle, []domain.VehicleImage, error) {
	v, err := s.vehicleRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrVehicleNotFound
		}
		return nil, nil, err
	}
	images, err := s.imageRepo.ListByVehicle(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return v, images, nil
}

func (s *fleetService) UpdateVehicle(ctx context.Context, v *domain.Vehicle) error {
	current, err := s.vehicleRepo.GetByID(ctx, v.TenantID, v.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVehicleNotFound
		}
		return err
	}
	// The rented flag is driven by the contract lifecycle, not by edits.
	if current.Status == domain.VehicleStatusRented {
		v.Status = domain.VehicleStatusRented
	}
	return s.vehicleRepo.Update(ctx, v)
}

func (s *fleetService) RetireVehicle(ctx context.Context, tenantID, id int32) error {
	v, err := s.vehicleRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVehicleNotFound
		}
		return err
	}
	if v.Status == domain.VehicleStatusRented {
		return ErrVehicleNotAvailable
	}
	v.Status = domain.VehicleStatusRetired
	return s.vehicleRepo.Update(ctx, v)
}

func (s *fleetService) DeleteVehicle(ctx context.Context, tenantID, id int32) error {
	v, err := s.vehicleRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVehicleNotFound
		}
		return err
	}
	if v.Status == domain.VehicleStatusRented {
		return ErrVehicleNotAvailable
	}
	// Contracts keep a foreign key to the vehicle; postgres rejects the
	// delete when history exists and the caller should retire instead.
	if err := s.vehicleRepo.Delete(ctx, tenantID, id); err != nil {
		return ErrVehicleInUse
	}
	return nil
}

func (s *fleetService) ListVehicles(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.vehicleRepo.List(ctx, tenantID, status, page, pageSize)
}
