package jobs

import (
	"context"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
)

// overdueTemplateName is the WhatsApp template sent to clients whose rental
// ran past its end date. Tenants without a template by this name only get
// the in-app notification and email alert.
const overdueTemplateName = "rental_overdue"

// MarkOverdueContracts flips active contracts past their end date to
// overdue, raises an in-app notification per contract, messages the client
// over WhatsApp, and emails the tenant's notification address.
func (jr *JobRunner) MarkOverdueContracts() {
	jr.runWithRecovery("MarkOverdueContracts", func() {
		ctx := context.Background()

		query := `
			UPDATE rental_contracts c
			SET status = 'overdue',
			    updated_on = NOW()
			FROM vehicles v, clients cl
			WHERE c.vehicle_id = v.id
			  AND c.client_id = cl.id
			  AND c.status = 'active'
			  AND c.end_date < $1
			RETURNING c.id, c.tenant_id, c.client_id, c.end_date,
			          v.make, v.model, v.license_plate, cl.name
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue contracts", "error", err)
			return
		}
		defer rows.Close()

		type overdueContract struct {
			ID           int32
			TenantID     int32
			ClientID     int32
			EndDate      time.Time
			Make         string
			Model        string
			LicensePlate string
			ClientName   string
		}
		var overdue []overdueContract
		for rows.Next() {
			var c overdueContract
			if err := rows.Scan(&c.ID, &c.TenantID, &c.ClientID, &c.EndDate,
				&c.Make, &c.Model, &c.LicensePlate, &c.ClientName); err != nil {
				logger.Error("Failed to scan overdue contract", "error", err)
				continue
			}
			overdue = append(overdue, c)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue contracts", "error", err)
			return
		}

		logger.Info("Marked contracts as overdue", "count", len(overdue))

		for _, c := range overdue {
			vehicleName := fmt.Sprintf("%s %s (%s)", c.Make, c.Model, c.LicensePlate)
			daysLate := int32(time.Since(c.EndDate).Hours() / 24)
			if daysLate < 1 {
				daysLate = 1
			}

			note := &domain.Notification{
				TenantID: c.TenantID,
				Title:    "Rental overdue",
				Message:  fmt.Sprintf("Contract #%d: %s has not returned %s (due %s)", c.ID, c.ClientName, vehicleName, c.EndDate.Format("2006-01-02")),
				Attributes: map[string]string{
					"contract_id": fmt.Sprint(c.ID),
					"client_id":   fmt.Sprint(c.ClientID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to create overdue notification", "contract_id", c.ID, "error", err)
			}

			err := jr.services.Template.SendToClient(ctx, c.TenantID, c.ClientID, overdueTemplateName, map[string]string{
				"vehicle":  vehicleName,
				"due_date": c.EndDate.Format("2006-01-02"),
			})
			if err != nil {
				logger.Debug("Skipped WhatsApp overdue message", "contract_id", c.ID, "error", err)
			}

			settings, err := jr.store.SettingsRepository.GetByTenant(ctx, c.TenantID)
			if err != nil || settings.NotificationEmail == "" {
				continue
			}
			if err := jr.services.Email.SendOverdueAlert(ctx, settings.NotificationEmail, c.ClientName, vehicleName, daysLate); err != nil {
				logger.Error("Failed to send overdue alert email", "contract_id", c.ID, "error", err)
			}
		}
	})
}
