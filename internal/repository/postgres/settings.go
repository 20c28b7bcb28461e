package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Create(ctx context.Context, s *domain.CompanySettings) error {
	query := `INSERT INTO company_settings (tenant_id, company_name, logo_key, tax_percentage, currency_code,
		invoice_prefix, invoice_counter, default_late_fee_pct, invoice_due_days, whatsapp_sender_id, notification_email, created_on, updated_on)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, s.TenantID, s.CompanyName, s.LogoKey, s.TaxPercentage,
		s.CurrencyCode, s.InvoicePrefix, s.InvoiceCounter, s.DefaultLateFeePct, s.InvoiceDueDays,
		s.WhatsAppSenderID, s.NotificationEmail, now, now).Scan(&s.ID)
}

func (r *settingsRepository) GetByTenant(ctx context.Context, tenantID int32) (*domain.CompanySettings, error) {
	s := &domain.CompanySettings{}
	query := `SELECT id, tenant_id, company_name, logo_key, tax_percentage, currency_code, invoice_prefix,
		invoice_counter, default_late_fee_pct, invoice_due_days, whatsapp_sender_id, notification_email, created_on, updated_on
	          FROM company_settings WHERE tenant_id = $1`
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(&s.ID, &s.TenantID, &s.CompanyName, &s.LogoKey,
		&s.TaxPercentage, &s.CurrencyCode, &s.InvoicePrefix, &s.InvoiceCounter, &s.DefaultLateFeePct,
		&s.InvoiceDueDays, &s.WhatsAppSenderID, &s.NotificationEmail, &s.CreatedOn, &s.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *domain.CompanySettings) error {
	query := `UPDATE company_settings SET company_name=$1, logo_key=$2, tax_percentage=$3, currency_code=$4,
		invoice_prefix=$5, default_late_fee_pct=$6, invoice_due_days=$7, whatsapp_sender_id=$8, notification_email=$9, updated_on=$10
	          WHERE tenant_id=$11`
	_, err := r.db.ExecContext(ctx, query, s.CompanyName, s.LogoKey, s.TaxPercentage, s.CurrencyCode,
		s.InvoicePrefix, s.DefaultLateFeePct, s.InvoiceDueDays, s.WhatsAppSenderID, s.NotificationEmail,
		time.Now(), s.TenantID)
	return err
}

func (r *settingsRepository) NextInvoiceNumber(ctx context.Context, tenantID int32) (string, error) {
	var prefix string
	var counter int32
	query := `UPDATE company_settings SET invoice_counter = invoice_counter + 1, updated_on = $1
	          WHERE tenant_id = $2 RETURNING invoice_prefix, invoice_counter`
	if err := r.db.QueryRowContext(ctx, query, time.Now(), tenantID).Scan(&prefix, &counter); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, counter), nil
}
