package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

// Revenue counts invoice totals by issue month; cancelled invoices are
// excluded. Expense counts completed maintenance by completion month.
func (r *reportRepository) MonthlyProfitLoss(ctx context.Context, tenantID int32, from, to time.Time) ([]domain.ProfitLossRow, error) {
	query := `
		WITH revenue AS (
			SELECT to_char(date_trunc('month', issued_on), 'YYYY-MM') AS month,
			       COALESCE(SUM(total), 0) AS amount
			FROM invoices
			WHERE tenant_id = $1 AND status != 'cancelled'
			  AND issued_on >= $2 AND issued_on < $3
			GROUP BY 1
		), expense AS (
			SELECT to_char(date_trunc('month', completed_on), 'YYYY-MM') AS month,
			       COALESCE(SUM(cost), 0) AS amount
			FROM maintenance_records
			WHERE tenant_id = $1 AND status = 'completed'
			  AND completed_on >= $2 AND completed_on < $3
			GROUP BY 1
		)
		SELECT COALESCE(r.month, e.month) AS month,
		       COALESCE(r.amount, 0) AS revenue,
		       COALESCE(e.amount, 0) AS expenses
		FROM revenue r
		FULL OUTER JOIN expense e ON r.month = e.month
		ORDER BY month ASC`

	rows, err := r.db.QueryContext(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []domain.ProfitLossRow
	for rows.Next() {
		var row domain.ProfitLossRow
		if err := rows.Scan(&row.Month, &row.Revenue, &row.Expenses); err != nil {
			return nil, err
		}
		row.Profit = row.Revenue.Sub(row.Expenses)
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *reportRepository) VehicleProfitLoss(ctx context.Context, tenantID int32, from, to time.Time) ([]domain.VehicleProfitLossRow, error) {
	query := `
		SELECT v.id, v.make, v.model, v.license_plate,
		       COALESCE((
		           SELECT SUM(i.total) FROM invoices i
		           JOIN rental_contracts c ON c.id = i.contract_id
		           WHERE c.vehicle_id = v.id AND i.tenant_id = $1
		             AND i.status != 'cancelled'
		             AND i.issued_on >= $2 AND i.issued_on < $3
		       ), 0) AS revenue,
		       COALESCE((
		           SELECT SUM(m.cost) FROM maintenance_records m
		           WHERE m.vehicle_id = v.id AND m.tenant_id = $1
		             AND m.status = 'completed'
		             AND m.completed_on >= $2 AND m.completed_on < $3
		       ), 0) AS expenses
		FROM vehicles v
		WHERE v.tenant_id = $1
		ORDER BY v.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []domain.VehicleProfitLossRow
	for rows.Next() {
		var row domain.VehicleProfitLossRow
		if err := rows.Scan(&row.VehicleID, &row.Make, &row.Model, &row.LicensePlate, &row.Revenue, &row.Expenses); err != nil {
			return nil, err
		}
		row.Profit = row.Revenue.Sub(row.Expenses)
		report = append(report, row)
	}
	return report, rows.Err()
}
