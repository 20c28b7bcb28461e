package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/billing"
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	contractRepo repository.ContractRepository
	clientRepo   repository.ClientRepository
	settingsRepo repository.SettingsRepository
	noteRepo     repository.NotificationRepository
	emailSvc     EmailService
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	contractRepo repository.ContractRepository,
	clientRepo repository.ClientRepository,
	settingsRepo repository.SettingsRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		contractRepo: contractRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
		noteRepo:     noteRepo,
		emailSvc:     emailSvc,
	}
}

// assembleLineItems recomputes every charge from the contract's snapshots
// and return data. Discounts land as a negative row so the item sum equals
// the subtotal.
func assembleLineItems(c *domain.RentalContract) []domain.InvoiceLineItem {
	days := billing.RentalDays(c.StartDate, c.EndDate)
	var items []domain.InvoiceLineItem

	rental := billing.RentalCharge(days, c.DailyRate, c.WeeklyRate, c.MonthlyRate)
	items = append(items, domain.InvoiceLineItem{
		Category:    domain.LineItemRental,
		Description: fmt.Sprintf("Rental (%d days)", days),
		Amount:      rental,
	})

	if c.Discount.IsPositive() {
		items = append(items, domain.InvoiceLineItem{
			Category:    domain.LineItemDiscount,
			Description: "Discount",
			Amount:      c.Discount.Neg(),
		})
	}

	if insurance := billing.InsuranceCost(days, c.DailyInsuranceRate); insurance.IsPositive() {
		items = append(items, domain.InvoiceLineItem{
			Category:    domain.LineItemInsurance,
			Description: fmt.Sprintf("Insurance %s (%d days)", c.InsurancePackage, days),
			Amount:      insurance,
		})
	}

	if c.ReturnedAt != nil {
		if daysLate := billing.DaysLate(c.EndDate, *c.ReturnedAt); daysLate > 0 {
			items = append(items, domain.InvoiceLineItem{
				Category:    domain.LineItemLateFee,
				Description: fmt.Sprintf("Late return (%d days)", daysLate),
				Amount:      billing.LateFee(daysLate, c.DailyRate, c.LateFeePercentage),
			})
		}
	}

	if c.ReturnOdometerKm != nil {
		driven := *c.ReturnOdometerKm - c.PickupOdometerKm
		if fee := billing.OverLimitFee(driven, c.KmLimit, c.OverLimitKmRate); fee.IsPositive() {
			items = append(items, domain.InvoiceLineItem{
				Category:    domain.LineItemOverLimitFee,
				Description: fmt.Sprintf("Over-limit kilometres (%d km over %d km allowance)", driven-c.KmLimit, c.KmLimit),
				Amount:      fee,
			})
		}
	}

	if c.ReturnFuelLevel != nil {
		prepaid := c.FuelPolicy == domain.FuelPolicyPrepaid
		if fee := billing.FuelCharge(c.PickupFuelLevel, *c.ReturnFuelLevel, c.FuelChargeRate, prepaid); fee.IsPositive() {
			items = append(items, domain.InvoiceLineItem{
				Category:    domain.LineItemFuelCharge,
				Description: fmt.Sprintf("Fuel refill (%d/8 tank)", c.PickupFuelLevel-*c.ReturnFuelLevel),
				Amount:      fee,
			})
		}
	}

	return items
}

func (s *invoiceService) GenerateForContract(ctx context.Context, tenantID, contractID int32) (*domain.Invoice, []domain.InvoiceLineItem, error) {
	// Idempotency: one invoice per contract, ever.
	if existing, err := s.invoiceRepo.GetByContractID(ctx, tenantID, contractID); err == nil {
		items, err := s.invoiceRepo.ListItems(ctx, existing.ID)
		if err != nil {
			return nil, nil, err
		}
		return existing, items, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, err
	}

	c, err := s.contractRepo.GetByID(ctx, tenantID, contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrContractNotFound
		}
		return nil, nil, err
	}
	if c.Status != domain.ContractStatusCompleted || c.ReturnedAt == nil {
		return nil, nil, ErrContractNotReturned
	}

	settings, err := s.settingsRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}

	items := assembleLineItems(c)
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount)
	}
	tax, total := billing.Totals(subtotal, settings.TaxPercentage)

	// The counter advances outside the insert transaction, so a lost race
	// or failed insert below leaves a gap in the tenant's numbering.
	// Numbers stay unique and monotonic, which is all the sequence promises.
	number, err := s.settingsRepo.NextInvoiceNumber(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	invoice := &domain.Invoice{
		TenantID:      tenantID,
		ContractID:    contractID,
		InvoiceNumber: number,
		Subtotal:      subtotal,
		TaxPercentage: settings.TaxPercentage,
		TaxAmount:     tax,
		Total:         total,
		Status:        domain.InvoiceStatusPending,
		IssuedOn:      now,
		DueOn:         now.AddDate(0, 0, int(settings.InvoiceDueDays)),
	}

	if err := s.invoiceRepo.Create(ctx, invoice, items); err != nil {
		// A concurrent call can win the race; the unique contract_id
		// constraint turns that into a fetch of the winner's invoice.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			existing, gerr := s.invoiceRepo.GetByContractID(ctx, tenantID, contractID)
			if gerr != nil {
				return nil, nil, gerr
			}
			existingItems, gerr := s.invoiceRepo.ListItems(ctx, existing.ID)
			if gerr != nil {
				return nil, nil, gerr
			}
			return existing, existingItems, nil
		}
		return nil, nil, err
	}

	s.notifyIssued(ctx, c, invoice)

	logger.Info("invoice generated", "invoice_id", invoice.ID, "contract_id", contractID, "total", total.String())
	return invoice, items, nil
}

func (s *invoiceService) notifyIssued(ctx context.Context, c *domain.RentalContract, inv *domain.Invoice) {
	note := &domain.Notification{
		TenantID: inv.TenantID,
		Title:    "Invoice issued",
		Message:  fmt.Sprintf("Invoice %s for contract #%d totals %s", inv.InvoiceNumber, c.ID, inv.Total.StringFixed(2)),
		Attributes: map[string]string{
			"type":       "INVOICE_ISSUED",
			"invoice_id": fmt.Sprintf("%d", inv.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("invoice notification failed", "invoice_id", inv.ID, "error", err)
	}

	client, err := s.clientRepo.GetByID(ctx, inv.TenantID, c.ClientID)
	if err != nil || client.Email == "" {
		return
	}
	if err := s.emailSvc.SendInvoiceIssued(ctx, client.Email, client.Name,
		inv.InvoiceNumber, inv.Total.StringFixed(2), inv.DueOn.Format("2006-01-02")); err != nil {
		logger.Warn("invoice email failed", "invoice_id", inv.ID, "error", err)
	}
}

func (s *invoiceService) GetInvoice(ctx context.Context, tenantID, id int32) (*domain.Invoice, []domain.InvoiceLineItem, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrInvoiceNotFound
		}
		return nil, nil, err
	}
	items, err := s.invoiceRepo.ListItems(ctx, inv.ID)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

func (s *invoiceService) MarkAsPaid(ctx context.Context, tenantID, id int32) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	if inv.Status == domain.InvoiceStatusPaid {
		return inv, nil
	}
	now := time.Now()
	inv.Status = domain.InvoiceStatusPaid
	inv.PaidOn = &now
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Cancel(ctx context.Context, tenantID, id int32) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	inv.Status = domain.InvoiceStatusCancelled
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Invoice, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.invoiceRepo.List(ctx, tenantID, status, page, pageSize)
}
