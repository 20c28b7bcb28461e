package jobs

import (
	"context"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
)

// maintenanceReminderDays is how far ahead of the due date the reminder
// fires.
const maintenanceReminderDays = 7

// SendMaintenanceReminders raises a notification for every scheduled task
// that is due within the reminder window or due by odometer reading.
func (jr *JobRunner) SendMaintenanceReminders() {
	jr.runWithRecovery("SendMaintenanceReminders", func() {
		ctx := context.Background()

		horizon := time.Now().AddDate(0, 0, maintenanceReminderDays)
		query := `
			SELECT m.id, m.tenant_id, m.type, m.description, m.due_on, m.due_at_km,
			       v.make, v.model, v.license_plate, v.odometer_km
			FROM maintenance_records m
			JOIN vehicles v ON m.vehicle_id = v.id
			WHERE m.status = 'scheduled'
			  AND ((m.due_on IS NOT NULL AND m.due_on <= $1)
			    OR (m.due_at_km IS NOT NULL AND v.odometer_km >= m.due_at_km))
		`

		rows, err := jr.db.QueryContext(ctx, query, horizon)
		if err != nil {
			logger.Error("Failed to query due maintenance tasks", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id           int32
				tenantID     int32
				taskType     string
				description  string
				dueOn        *time.Time
				dueAtKm      *int32
				make         string
				model        string
				licensePlate string
				odometerKm   int32
			)
			if err := rows.Scan(&id, &tenantID, &taskType, &description, &dueOn, &dueAtKm,
				&make, &model, &licensePlate, &odometerKm); err != nil {
				logger.Error("Failed to scan due maintenance task", "error", err)
				continue
			}

			vehicleName := fmt.Sprintf("%s %s (%s)", make, model, licensePlate)
			var due string
			switch {
			case dueOn != nil && dueAtKm != nil && odometerKm >= *dueAtKm:
				due = fmt.Sprintf("odometer at %d km (limit %d km)", odometerKm, *dueAtKm)
			case dueOn != nil:
				due = "due " + dueOn.Format("2006-01-02")
			default:
				due = fmt.Sprintf("odometer at %d km (limit %d km)", odometerKm, *dueAtKm)
			}

			note := &domain.Notification{
				TenantID: tenantID,
				Title:    "Maintenance due",
				Message:  fmt.Sprintf("%s for %s: %s", taskType, vehicleName, due),
				Attributes: map[string]string{
					"maintenance_id": fmt.Sprint(id),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to create maintenance reminder", "maintenance_id", id, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating due maintenance tasks", "error", err)
			return
		}

		logger.Info("Maintenance reminders sent", "count", count)
	})
}
