package domain

import "time"

// Well-known template names used by the sweeps. Tenants may define more.
const (
	TemplateRentalOverdue   = "rental_overdue"
	TemplateRentalReminder  = "rental_reminder"
	TemplateInvoiceIssued   = "invoice_issued"
)

// WhatsAppTemplate is a tenant-defined outbound message with
// {{placeholder}} substitution variables (client_name, vehicle, due_date,
// amount and friends).
type WhatsAppTemplate struct {
	ID        int32     `json:"id"`
	TenantID  int32     `json:"tenant_id"`
	Name      string    `json:"name"`
	Body      string    `json:"body"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
