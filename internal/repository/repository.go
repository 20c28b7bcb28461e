package repository

import (
	"context"
	"time"

	"fleetrent-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, tenantID, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, tenantID, id int32) error
	List(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, tenantID, id int32) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, tenantID, id int32) error
	List(ctx context.Context, tenantID int32, search string, page, pageSize int32) ([]domain.Client, int32, error)
}

type ContractRepository interface {
	Create(ctx context.Context, c *domain.RentalContract) error
	GetByID(ctx context.Context, tenantID, id int32) (*domain.RentalContract, error)
	Update(ctx context.Context, c *domain.RentalContract) error
	Delete(ctx context.Context, tenantID, id int32) error
	List(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.RentalContract, int32, error)

	// UpdateWithAmendment persists a contract change and its audit row in
	// one transaction.
	UpdateWithAmendment(ctx context.Context, c *domain.RentalContract, a *domain.ContractAmendment) error
	// SwapVehicle additionally flips the old vehicle back to available and
	// the new one to rented, all atomically with the contract update.
	SwapVehicle(ctx context.Context, c *domain.RentalContract, a *domain.ContractAmendment, oldVehicleID, newVehicleID int32) error
	ListAmendments(ctx context.Context, tenantID, contractID int32) ([]domain.ContractAmendment, error)

	CreateDamageMark(ctx context.Context, m *domain.DamageMark) error
	ListDamageMarks(ctx context.Context, contractID int32) ([]domain.DamageMark, error)
}

type InvoiceRepository interface {
	// Create inserts the invoice and its line items in one transaction.
	Create(ctx context.Context, inv *domain.Invoice, items []domain.InvoiceLineItem) error
	GetByID(ctx context.Context, tenantID, id int32) (*domain.Invoice, error)
	GetByContractID(ctx context.Context, tenantID, contractID int32) (*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	List(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Invoice, int32, error)
	ListItems(ctx context.Context, invoiceID int32) ([]domain.InvoiceLineItem, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.MaintenanceRecord) error
	GetByID(ctx context.Context, tenantID, id int32) (*domain.MaintenanceRecord, error)
	Update(ctx context.Context, m *domain.MaintenanceRecord) error
	Delete(ctx context.Context, tenantID, id int32) error
	ListByVehicle(ctx context.Context, tenantID, vehicleID int32) ([]domain.MaintenanceRecord, error)
	ListDue(ctx context.Context, tenantID int32, before time.Time) ([]domain.MaintenanceRecord, error)
}

type SettingsRepository interface {
	Create(ctx context.Context, s *domain.CompanySettings) error
	GetByTenant(ctx context.Context, tenantID int32) (*domain.CompanySettings, error)
	Update(ctx context.Context, s *domain.CompanySettings) error
	// NextInvoiceNumber advances the tenant's invoice counter and returns
	// the formatted number (prefix plus zero-padded counter).
	NextInvoiceNumber(ctx context.Context, tenantID int32) (string, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, t *domain.WhatsAppTemplate) error
	GetByID(ctx context.Context, tenantID, id int32) (*domain.WhatsAppTemplate, error)
	GetByName(ctx context.Context, tenantID int32, name string) (*domain.WhatsAppTemplate, error)
	Update(ctx context.Context, t *domain.WhatsAppTemplate) error
	Delete(ctx context.Context, tenantID, id int32) error
	List(ctx context.Context, tenantID int32) ([]domain.WhatsAppTemplate, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, tenantID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, tenantID int32) error
}

type ReportRepository interface {
	// MonthlyProfitLoss aggregates invoiced revenue and maintenance expense
	// per calendar month over [from, to).
	MonthlyProfitLoss(ctx context.Context, tenantID int32, from, to time.Time) ([]domain.ProfitLossRow, error)
	// VehicleProfitLoss aggregates per vehicle over [from, to).
	VehicleProfitLoss(ctx context.Context, tenantID int32, from, to time.Time) ([]domain.VehicleProfitLossRow, error)
}

type ImageRepository interface {
	Create(ctx context.Context, img *domain.VehicleImage) error
	GetByID(ctx context.Context, tenantID, id int32) (*domain.VehicleImage, error)
	Confirm(ctx context.Context, tenantID, id int32, fileSize int64) error
	Delete(ctx context.Context, tenantID, id int32) error
	ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.VehicleImage, error)
	// DeleteExpiredPending removes pending uploads older than the cutoff
	// and returns their storage keys so the blobs can be cleaned up too.
	DeleteExpiredPending(ctx context.Context, olderThan time.Time) ([]string, error)
}
