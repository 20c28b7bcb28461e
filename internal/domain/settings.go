package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySettings holds per-tenant billing and branding defaults. One row
// per tenant, created on signup.
type CompanySettings struct {
	ID                   int32           `json:"id"`
	TenantID             int32           `json:"tenant_id"`
	CompanyName          string          `json:"company_name"`
	LogoKey              string          `json:"logo_key"`
	TaxPercentage        decimal.Decimal `json:"tax_percentage"`
	CurrencyCode         string          `json:"currency_code"`
	InvoicePrefix        string          `json:"invoice_prefix"`
	InvoiceCounter       int32           `json:"invoice_counter"`
	DefaultLateFeePct    decimal.Decimal `json:"default_late_fee_pct"`
	InvoiceDueDays       int32           `json:"invoice_due_days"`
	WhatsAppSenderID     string          `json:"whatsapp_sender_id"`
	NotificationEmail    string          `json:"notification_email"`
	CreatedOn            time.Time       `json:"created_on"`
	UpdatedOn            time.Time       `json:"updated_on"`
}
