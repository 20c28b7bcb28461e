package jobs

import (
	"context"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
)

// MarkOverdueInvoices flips pending invoices past their due date to overdue
// and raises a notification per invoice.
func (jr *JobRunner) MarkOverdueInvoices() {
	jr.runWithRecovery("MarkOverdueInvoices", func() {
		ctx := context.Background()

		query := `
			UPDATE invoices i
			SET status = 'overdue',
			    updated_on = NOW()
			FROM rental_contracts c, clients cl
			WHERE i.contract_id = c.id
			  AND c.client_id = cl.id
			  AND i.status = 'pending'
			  AND i.due_on < $1
			RETURNING i.id, i.tenant_id, i.invoice_number, i.total, i.due_on, cl.name
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue invoices", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id         int32
				tenantID   int32
				number     string
				total      string
				dueOn      time.Time
				clientName string
			)
			if err := rows.Scan(&id, &tenantID, &number, &total, &dueOn, &clientName); err != nil {
				logger.Error("Failed to scan overdue invoice", "error", err)
				continue
			}

			note := &domain.Notification{
				TenantID: tenantID,
				Title:    "Invoice overdue",
				Message:  fmt.Sprintf("Invoice %s for %s (%s) was due %s and is unpaid", number, clientName, total, dueOn.Format("2006-01-02")),
				Attributes: map[string]string{
					"invoice_id": fmt.Sprint(id),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to create overdue invoice notification", "invoice_id", id, "error", err)
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue invoices", "error", err)
			return
		}

		logger.Info("Marked invoices as overdue", "count", count)
	})
}
