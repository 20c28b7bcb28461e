package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/ai"
	"fleetrent-backend/internal/domain"
)

var (
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrContractNotFound    = errors.New("contract not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrMaintenanceNotFound = errors.New("maintenance task not found")
	ErrVehicleNotAvailable = errors.New("vehicle is not available for rent")
	ErrVehicleInUse        = errors.New("vehicle has contracts on file")
	ErrClientHasContracts  = errors.New("client has contracts on file")
	ErrContractNotActive   = errors.New("contract is not active")
	ErrContractNotReturned = errors.New("contract has not been returned")
	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email is already registered")
	ErrOdometerRegression  = errors.New("return odometer is below pickup odometer")
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password, companyName string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
}

type FleetService interface {
	AddVehicle(ctx context.Context, v *domain.Vehicle) error
	GetVehicle(ctx context.Context, tenantID, id int32) (*domain.Vehicle, []domain.VehicleImage, error)
	UpdateVehicle(ctx context.Context, v *domain.Vehicle) error
	RetireVehicle(ctx context.Context, tenantID, id int32) error
	DeleteVehicle(ctx context.Context, tenantID, id int32) error
	ListVehicles(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type ClientService interface {
	AddClient(ctx context.Context, c *domain.Client) error
	GetClient(ctx context.Context, tenantID, id int32) (*domain.Client, error)
	UpdateClient(ctx context.Context, c *domain.Client) error
	DeleteClient(ctx context.Context, tenantID, id int32) error
	ListClients(ctx context.Context, tenantID int32, search string, page, pageSize int32) ([]domain.Client, int32, error)
}

// ReturnDetails captures the pickup checklist counterpart filled in when a
// vehicle comes back.
type ReturnDetails struct {
	ReturnedAt    time.Time
	OdometerKm    int32
	FuelLevel     int32 // eighths of a tank
	DepositStatus domain.DepositStatus
	Notes         string
}

type ContractService interface {
	CreateContract(ctx context.Context, c *domain.RentalContract, marks []domain.DamageMark) (*domain.RentalContract, error)
	GetContract(ctx context.Context, tenantID, id int32) (*domain.RentalContract, []domain.DamageMark, []domain.ContractAmendment, error)
	ListContracts(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.RentalContract, int32, error)
	// MarkAsReturned completes the contract, releases the vehicle and
	// generates the final invoice.
	MarkAsReturned(ctx context.Context, tenantID, id int32, ret ReturnDetails) (*domain.RentalContract, *domain.Invoice, error)
	AmendDates(ctx context.Context, tenantID, id int32, newStart, newEnd time.Time) (*domain.RentalContract, error)
	AmendVehicle(ctx context.Context, tenantID, id, newVehicleID int32) (*domain.RentalContract, error)
	AmendRate(ctx context.Context, tenantID, id int32, newDailyRate, newDiscount decimal.Decimal) (*domain.RentalContract, error)
	DeleteContract(ctx context.Context, tenantID, id int32) error
	AddDamageMark(ctx context.Context, tenantID int32, m *domain.DamageMark) error
}

type InvoiceService interface {
	// GenerateForContract assembles the invoice for a returned contract.
	// Idempotent: repeat calls return the existing invoice.
	GenerateForContract(ctx context.Context, tenantID, contractID int32) (*domain.Invoice, []domain.InvoiceLineItem, error)
	GetInvoice(ctx context.Context, tenantID, id int32) (*domain.Invoice, []domain.InvoiceLineItem, error)
	MarkAsPaid(ctx context.Context, tenantID, id int32) (*domain.Invoice, error)
	Cancel(ctx context.Context, tenantID, id int32) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Invoice, int32, error)
}

type MaintenanceService interface {
	ScheduleTask(ctx context.Context, m *domain.MaintenanceRecord) error
	GetTask(ctx context.Context, tenantID, id int32) (*domain.MaintenanceRecord, error)
	UpdateTask(ctx context.Context, m *domain.MaintenanceRecord) error
	CompleteTask(ctx context.Context, tenantID, id int32, cost decimal.Decimal, completedOn time.Time) (*domain.MaintenanceRecord, error)
	DeleteTask(ctx context.Context, tenantID, id int32) error
	ListByVehicle(ctx context.Context, tenantID, vehicleID int32) ([]domain.MaintenanceRecord, error)
	// SuggestSchedule asks the LLM planner for upcoming tasks. Returns
	// suggestions only; nothing is persisted until the tenant accepts them.
	SuggestSchedule(ctx context.Context, tenantID, vehicleID int32) ([]ai.SuggestedTask, error)
}

type ReportService interface {
	MonthlyProfitLoss(ctx context.Context, tenantID int32, from, to time.Time) ([]domain.ProfitLossRow, error)
	VehicleProfitLoss(ctx context.Context, tenantID int32, from, to time.Time) ([]domain.VehicleProfitLossRow, error)
	ExportMonthlyXLSX(ctx context.Context, w io.Writer, tenantID int32, from, to time.Time) error
	ExportVehicleXLSX(ctx context.Context, w io.Writer, tenantID int32, from, to time.Time) error
}

type TemplateService interface {
	AddTemplate(ctx context.Context, t *domain.WhatsAppTemplate) error
	GetTemplate(ctx context.Context, tenantID, id int32) (*domain.WhatsAppTemplate, error)
	UpdateTemplate(ctx context.Context, t *domain.WhatsAppTemplate) error
	DeleteTemplate(ctx context.Context, tenantID, id int32) error
	ListTemplates(ctx context.Context, tenantID int32) ([]domain.WhatsAppTemplate, error)
	// Preview renders a template body against sample values without sending.
	Preview(ctx context.Context, tenantID, id int32, values map[string]string) (string, error)
	// SendToClient renders the named template for a client and delivers it
	// over WhatsApp.
	SendToClient(ctx context.Context, tenantID, clientID int32, templateName string, values map[string]string) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, tenantID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, tenantID, notificationID int32) error
}

type SettingsService interface {
	GetSettings(ctx context.Context, tenantID int32) (*domain.CompanySettings, error)
	UpdateSettings(ctx context.Context, s *domain.CompanySettings) error
}

type ImageService interface {
	GetUploadURL(ctx context.Context, tenantID int32, vehicleID *int32, filename, contentType string) (*domain.VehicleImage, string, error) // image, uploadURL
	ConfirmUpload(ctx context.Context, tenantID, imageID int32, fileSize int64) (*domain.VehicleImage, error)
	GetDownloadURL(ctx context.Context, tenantID, imageID int32) (string, error)
	DeleteImage(ctx context.Context, tenantID, imageID int32) error
	ListVehicleImages(ctx context.Context, tenantID, vehicleID int32) ([]domain.VehicleImage, error)
}

type EmailService interface {
	SendInvoiceIssued(ctx context.Context, toEmail, clientName, invoiceNumber, total, dueOn string) error
	SendOverdueAlert(ctx context.Context, toEmail, clientName, vehicleName string, daysLate int32) error
	SendWelcome(ctx context.Context, toEmail, name string) error
}
