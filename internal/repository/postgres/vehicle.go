package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, tenant_id, make, model, year, license_plate, vin, odometer_km, fuel_level, status, daily_rate, weekly_rate, monthly_rate, image_key, created_on, updated_on`

func scanVehicle(row interface{ Scan(...interface{}) error }, v *domain.Vehicle) error {
	return row.Scan(&v.ID, &v.TenantID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.VIN,
		&v.OdometerKm, &v.FuelLevel, &v.Status, &v.DailyRate, &v.WeeklyRate, &v.MonthlyRate,
		&v.ImageKey, &v.CreatedOn, &v.UpdatedOn)
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (tenant_id, make, model, year, license_plate, vin, odometer_km, fuel_level, status, daily_rate, weekly_rate, monthly_rate, image_key, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, v.TenantID, v.Make, v.Model, v.Year, v.LicensePlate, v.VIN,
		v.OdometerKm, v.FuelLevel, v.Status, v.DailyRate, v.WeeklyRate, v.MonthlyRate, v.ImageKey, now, now).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, tenantID, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 AND tenant_id = $2`
	if err := scanVehicle(r.db.QueryRowContext(ctx, query, id, tenantID), v); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET make=$1, model=$2, year=$3, license_plate=$4, vin=$5, odometer_km=$6, fuel_level=$7, status=$8, daily_rate=$9, weekly_rate=$10, monthly_rate=$11, image_key=$12, updated_on=$13
	          WHERE id=$14 AND tenant_id=$15`
	_, err := r.db.ExecContext(ctx, query, v.Make, v.Model, v.Year, v.LicensePlate, v.VIN, v.OdometerKm,
		v.FuelLevel, v.Status, v.DailyRate, v.WeeklyRate, v.MonthlyRate, v.ImageKey, time.Now(), v.ID, v.TenantID)
	return err
}

func (r *vehicleRepository) Delete(ctx context.Context, tenantID, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id=$1 AND tenant_id=$2`, id, tenantID)
	return err
}

func (r *vehicleRepository) List(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE tenant_id = $1`

	args := []interface{}{tenantID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}
