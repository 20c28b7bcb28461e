package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `id, tenant_id, vehicle_id, client_id, start_date, end_date, returned_at,
	daily_rate, weekly_rate, monthly_rate, discount, insurance_package, daily_insurance_rate,
	km_limit, over_limit_km_rate, late_fee_percentage, fuel_charge_rate, fuel_policy,
	deposit_amount, deposit_status, pickup_odometer_km, return_odometer_km, pickup_fuel_level,
	return_fuel_level, total_amount, status, notes, created_on, updated_on`

func scanContract(row interface{ Scan(...interface{}) error }, c *domain.RentalContract) error {
	return row.Scan(&c.ID, &c.TenantID, &c.VehicleID, &c.ClientID, &c.StartDate, &c.EndDate, &c.ReturnedAt,
		&c.DailyRate, &c.WeeklyRate, &c.MonthlyRate, &c.Discount, &c.InsurancePackage, &c.DailyInsuranceRate,
		&c.KmLimit, &c.OverLimitKmRate, &c.LateFeePercentage, &c.FuelChargeRate, &c.FuelPolicy,
		&c.DepositAmount, &c.DepositStatus, &c.PickupOdometerKm, &c.ReturnOdometerKm, &c.PickupFuelLevel,
		&c.ReturnFuelLevel, &c.TotalAmount, &c.Status, &c.Notes, &c.CreatedOn, &c.UpdatedOn)
}

func (r *contractRepository) Create(ctx context.Context, c *domain.RentalContract) error {
	query := `INSERT INTO rental_contracts (tenant_id, vehicle_id, client_id, start_date, end_date,
		daily_rate, weekly_rate, monthly_rate, discount, insurance_package, daily_insurance_rate,
		km_limit, over_limit_km_rate, late_fee_percentage, fuel_charge_rate, fuel_policy,
		deposit_amount, deposit_status, pickup_odometer_km, pickup_fuel_level, total_amount, status, notes, created_on, updated_on)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.TenantID, c.VehicleID, c.ClientID, c.StartDate, c.EndDate,
		c.DailyRate, c.WeeklyRate, c.MonthlyRate, c.Discount, c.InsurancePackage, c.DailyInsuranceRate,
		c.KmLimit, c.OverLimitKmRate, c.LateFeePercentage, c.FuelChargeRate, c.FuelPolicy,
		c.DepositAmount, c.DepositStatus, c.PickupOdometerKm, c.PickupFuelLevel, c.TotalAmount,
		c.Status, c.Notes, now, now).Scan(&c.ID)
}

func (r *contractRepository) GetByID(ctx context.Context, tenantID, id int32) (*domain.RentalContract, error) {
	c := &domain.RentalContract{}
	query := `SELECT ` + contractColumns + ` FROM rental_contracts WHERE id = $1 AND tenant_id = $2`
	if err := scanContract(r.db.QueryRowContext(ctx, query, id, tenantID), c); err != nil {
		return nil, err
	}
	return c, nil
}

const contractUpdateSQL = `UPDATE rental_contracts SET vehicle_id=$1, start_date=$2, end_date=$3, returned_at=$4,
	daily_rate=$5, discount=$6, deposit_status=$7, return_odometer_km=$8, return_fuel_level=$9,
	total_amount=$10, status=$11, notes=$12, updated_on=$13 WHERE id=$14 AND tenant_id=$15`

func contractUpdateArgs(c *domain.RentalContract) []interface{} {
	return []interface{}{c.VehicleID, c.StartDate, c.EndDate, c.ReturnedAt, c.DailyRate, c.Discount,
		c.DepositStatus, c.ReturnOdometerKm, c.ReturnFuelLevel, c.TotalAmount, c.Status, c.Notes,
		time.Now(), c.ID, c.TenantID}
}

func (r *contractRepository) Update(ctx context.Context, c *domain.RentalContract) error {
	_, err := r.db.ExecContext(ctx, contractUpdateSQL, contractUpdateArgs(c)...)
	return err
}

func (r *contractRepository) Delete(ctx context.Context, tenantID, id int32) error {
	// damage marks and amendments cascade
	_, err := r.db.ExecContext(ctx, `DELETE FROM rental_contracts WHERE id=$1 AND tenant_id=$2`, id, tenantID)
	return err
}

func (r *contractRepository) List(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.RentalContract, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + contractColumns + ` FROM rental_contracts WHERE tenant_id = $1`

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

	var contracts []domain.RentalContract
	for rows.Next() {
		var c domain.RentalContract
		if err := scanContract(rows, &c); err != nil {
			return nil, 0, err
		}
		contracts = append(contracts, c)
	}
	return contracts, count, rows.Err()
}

const amendmentInsertSQL = `INSERT INTO contract_amendments (contract_id, tenant_id, type, previous_state, new_state, amount_delta, created_on)
	VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

func (r *contractRepository) UpdateWithAmendment(ctx context.Context, c *domain.RentalContract, a *domain.ContractAmendment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, contractUpdateSQL, contractUpdateArgs(c)...); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx, amendmentInsertSQL,
		a.ContractID, a.TenantID, a.Type, a.PreviousState, a.NewState, a.AmountDelta, time.Now()).Scan(&a.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *contractRepository) SwapVehicle(ctx context.Context, c *domain.RentalContract, a *domain.ContractAmendment, oldVehicleID, newVehicleID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, contractUpdateSQL, contractUpdateArgs(c)...); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx, amendmentInsertSQL,
		a.ContractID, a.TenantID, a.Type, a.PreviousState, a.NewState, a.AmountDelta, time.Now()).Scan(&a.ID); err != nil {
		return err
	}

	statusUpdate := `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3 AND tenant_id=$4`
	if _, err := tx.ExecContext(ctx, statusUpdate, domain.VehicleStatusAvailable, time.Now(), oldVehicleID, c.TenantID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, statusUpdate, domain.VehicleStatusRented, time.Now(), newVehicleID, c.TenantID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *contractRepository) ListAmendments(ctx context.Context, tenantID, contractID int32) ([]domain.ContractAmendment, error) {
	query := `SELECT id, contract_id, tenant_id, type, previous_state, new_state, amount_delta, created_on
	          FROM contract_amendments WHERE contract_id = $1 AND tenant_id = $2 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, contractID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var amendments []domain.ContractAmendment
	for rows.Next() {
		var a domain.ContractAmendment
		if err := rows.Scan(&a.ID, &a.ContractID, &a.TenantID, &a.Type, &a.PreviousState, &a.NewState, &a.AmountDelta, &a.CreatedOn); err != nil {
			return nil, err
		}
		amendments = append(amendments, a)
	}
	return amendments, rows.Err()
}

func (r *contractRepository) CreateDamageMark(ctx context.Context, m *domain.DamageMark) error {
	query := `INSERT INTO damage_marks (contract_id, position_x, position_y, description, photo_key, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.ContractID, m.PositionX, m.PositionY, m.Description, m.PhotoKey, time.Now()).Scan(&m.ID)
}

func (r *contractRepository) ListDamageMarks(ctx context.Context, contractID int32) ([]domain.DamageMark, error) {
	query := `SELECT id, contract_id, position_x, position_y, description, photo_key, created_on
	          FROM damage_marks WHERE contract_id = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []domain.DamageMark
	for rows.Next() {
		var m domain.DamageMark
		if err := rows.Scan(&m.ID, &m.ContractID, &m.PositionX, &m.PositionY, &m.Description, &m.PhotoKey, &m.CreatedOn); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}
