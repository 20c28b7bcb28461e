package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

const maintenanceColumns = `id, tenant_id, vehicle_id, type, description, due_on, due_at_km, completed_on, cost, status, created_on, updated_on`

func scanMaintenance(row interface{ Scan(...interface{}) error }, m *domain.MaintenanceRecord) error {
	return row.Scan(&m.ID, &m.TenantID, &m.VehicleID, &m.Type, &m.Description, &m.DueOn, &m.DueAtKm,
		&m.CompletedOn, &m.Cost, &m.Status, &m.CreatedOn, &m.UpdatedOn)
}

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.MaintenanceRecord) error {
	query := `INSERT INTO maintenance_records (tenant_id, vehicle_id, type, description, due_on, due_at_km, completed_on, cost, status, created_on, updated_on)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, m.TenantID, m.VehicleID, m.Type, m.Description, m.DueOn,
		m.DueAtKm, m.CompletedOn, m.Cost, m.Status, now, now).Scan(&m.ID)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, tenantID, id int32) (*domain.MaintenanceRecord, error) {
	m := &domain.MaintenanceRecord{}
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE id = $1 AND tenant_id = $2`
	if err := scanMaintenance(r.db.QueryRowContext(ctx, query, id, tenantID), m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, m *domain.MaintenanceRecord) error {
	query := `UPDATE maintenance_records SET type=$1, description=$2, due_on=$3, due_at_km=$4, completed_on=$5, cost=$6, status=$7, updated_on=$8
	          WHERE id=$9 AND tenant_id=$10`
	_, err := r.db.ExecContext(ctx, query, m.Type, m.Description, m.DueOn, m.DueAtKm, m.CompletedOn,
		m.Cost, m.Status, time.Now(), m.ID, m.TenantID)
	return err
}

func (r *maintenanceRepository) Delete(ctx context.Context, tenantID, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM maintenance_records WHERE id=$1 AND tenant_id=$2`, id, tenantID)
	return err
}

func (r *maintenanceRepository) ListByVehicle(ctx context.Context, tenantID, vehicleID int32) ([]domain.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE tenant_id = $1 AND vehicle_id = $2 ORDER BY created_on DESC`
	return r.queryRecords(ctx, query, tenantID, vehicleID)
}

func (r *maintenanceRepository) ListDue(ctx context.Context, tenantID int32, before time.Time) ([]domain.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records
	          WHERE tenant_id = $1 AND status IN ('scheduled', 'overdue') AND due_on IS NOT NULL AND due_on <= $2
	          ORDER BY due_on ASC`
	return r.queryRecords(ctx, query, tenantID, before)
}

func (r *maintenanceRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]domain.MaintenanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MaintenanceRecord
	for rows.Next() {
		var m domain.MaintenanceRecord
		if err := scanMaintenance(rows, &m); err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}
