package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, tenant_id, contract_id, invoice_number, subtotal, tax_percentage, tax_amount, total, status, issued_on, due_on, paid_on, created_on, updated_on`

func scanInvoice(row interface{ Scan(...interface{}) error }, inv *domain.Invoice) error {
	return row.Scan(&inv.ID, &inv.TenantID, &inv.ContractID, &inv.InvoiceNumber, &inv.Subtotal,
		&inv.TaxPercentage, &inv.TaxAmount, &inv.Total, &inv.Status, &inv.IssuedOn, &inv.DueOn,
		&inv.PaidOn, &inv.CreatedOn, &inv.UpdatedOn)
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice, items []domain.InvoiceLineItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO invoices (tenant_id, contract_id, invoice_number, subtotal, tax_percentage, tax_amount, total, status, issued_on, due_on, created_on, updated_on)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, inv.TenantID, inv.ContractID, inv.InvoiceNumber,
		inv.Subtotal, inv.TaxPercentage, inv.TaxAmount, inv.Total, inv.Status, inv.IssuedOn, inv.DueOn, now, now).Scan(&inv.ID); err != nil {
		return err
	}

	itemQuery := `INSERT INTO invoice_line_items (invoice_id, category, description, amount) VALUES ($1,$2,$3,$4) RETURNING id`
	for i := range items {
		items[i].InvoiceID = inv.ID
		if err := tx.QueryRowContext(ctx, itemQuery, items[i].InvoiceID, items[i].Category, items[i].Description, items[i].Amount).Scan(&items[i].ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *invoiceRepository) GetByID(ctx context.Context, tenantID, id int32) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND tenant_id = $2`
	if err := scanInvoice(r.db.QueryRowContext(ctx, query, id, tenantID), inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) GetByContractID(ctx context.Context, tenantID, contractID int32) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE contract_id = $1 AND tenant_id = $2`
	if err := scanInvoice(r.db.QueryRowContext(ctx, query, contractID, tenantID), inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	query := `UPDATE invoices SET status=$1, paid_on=$2, updated_on=$3 WHERE id=$4 AND tenant_id=$5`
	_, err := r.db.ExecContext(ctx, query, inv.Status, inv.PaidOn, time.Now(), inv.ID, inv.TenantID)
	return err
}

func (r *invoiceRepository) List(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Invoice, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE tenant_id = $1`

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

	query += fmt.Sprintf(" ORDER BY issued_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, count, rows.Err()
}

func (r *invoiceRepository) ListItems(ctx context.Context, invoiceID int32) ([]domain.InvoiceLineItem, error) {
	query := `SELECT id, invoice_id, category, description, amount FROM invoice_line_items WHERE invoice_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InvoiceLineItem
	for rows.Next() {
		var it domain.InvoiceLineItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Category, &it.Description, &it.Amount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
