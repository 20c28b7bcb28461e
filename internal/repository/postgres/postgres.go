package postgres

import (
	"database/sql"

	"fleetrent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.ClientRepository
	repository.ContractRepository
	repository.InvoiceRepository
	repository.MaintenanceRepository
	repository.SettingsRepository
	repository.TemplateRepository
	repository.NotificationRepository
	repository.ImageRepository
	repository.ReportRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		ClientRepository:       NewClientRepository(db),
		ContractRepository:     NewContractRepository(db),
		InvoiceRepository:      NewInvoiceRepository(db),
		MaintenanceRepository:  NewMaintenanceRepository(db),
		SettingsRepository:     NewSettingsRepository(db),
		TemplateRepository:     NewTemplateRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		ImageRepository:        NewImageRepository(db),
		ReportRepository:       NewReportRepository(db),
	}
}
