package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, tenant_id, name, email, phone, driver_license, address, notes, created_on, updated_on`

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (tenant_id, name, email, phone, driver_license, address, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.TenantID, c.Name, c.Email, c.Phone, c.DriverLicense, c.Address, c.Notes, now, now).Scan(&c.ID)
}

func (r *clientRepository) GetByID(ctx context.Context, tenantID, id int32) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND tenant_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(&c.ID, &c.TenantID, &c.Name, &c.Email,
		&c.Phone, &c.DriverLicense, &c.Address, &c.Notes, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name=$1, email=$2, phone=$3, driver_license=$4, address=$5, notes=$6, updated_on=$7
	          WHERE id=$8 AND tenant_id=$9`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.DriverLicense, c.Address, c.Notes, time.Now(), c.ID, c.TenantID)
	return err
}

func (r *clientRepository) Delete(ctx context.Context, tenantID, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id=$1 AND tenant_id=$2`, id, tenantID)
	return err
}

func (r *clientRepository) List(ctx context.Context, tenantID int32, search string, page, pageSize int32) ([]domain.Client, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + clientColumns + ` FROM clients WHERE tenant_id = $1`

	args := []interface{}{tenantID}
	argIdx := 2
	if search != "" {
		query += " AND (name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2)"
		args = append(args, "%"+search+"%")
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.DriverLicense,
			&c.Address, &c.Notes, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, count, rows.Err()
}
