package service

import (
	"context"
	"io"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/reports"
	"fleetrent-backend/internal/repository"
)

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) MonthlyProfitLoss(ctx context.Context, tenantID int32, from, to time.Time) ([]domain.ProfitLossRow, error) {
	return s.reportRepo.MonthlyProfitLoss(ctx, tenantID, from, to)
}

func (s *reportService) VehicleProfitLoss(ctx context.Context, tenantID int32, from, to time.Time) ([]domain.VehicleProfitLossRow, error) {
	return s.reportRepo.VehicleProfitLoss(ctx, tenantID, from, to)
}

func (s *reportService) ExportMonthlyXLSX(ctx context.Context, w io.Writer, tenantID int32, from, to time.Time) error {
	rows, err := s.reportRepo.MonthlyProfitLoss(ctx, tenantID, from, to)
	if err != nil {
		return err
	}
	return reports.WriteMonthlyXLSX(w, rows)
}

func (s *reportService) ExportVehicleXLSX(ctx context.Context, w io.Writer, tenantID int32, from, to time.Time) error {
	rows, err := s.reportRepo.VehicleProfitLoss(ctx, tenantID, from, to)
	if err != nil {
		return err
	}
	return reports.WriteVehicleXLSX(w, rows)
}
