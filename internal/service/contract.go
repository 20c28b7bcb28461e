package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/billing"
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

type contractService struct {
	contractRepo repository.ContractRepository
	vehicleRepo  repository.VehicleRepository
	clientRepo   repository.ClientRepository
	settingsRepo repository.SettingsRepository
	invoiceSvc   InvoiceService
}

func NewContractService(
	contractRepo repository.ContractRepository,
	vehicleRepo repository.VehicleRepository,
	clientRepo repository.ClientRepository,
	settingsRepo repository.SettingsRepository,
	invoiceSvc InvoiceService,
) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		vehicleRepo:  vehicleRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
		invoiceSvc:   invoiceSvc,
	}
}

// estimateTotal prices the planned rental period from the contract's rate
// snapshots. The figure shown at signing; the invoice recomputes from
// actual return data.
func estimateTotal(c *domain.RentalContract) decimal.Decimal {
	days := billing.RentalDays(c.StartDate, c.EndDate)
	total := billing.RentalCharge(days, c.DailyRate, c.WeeklyRate, c.MonthlyRate)
	total = total.Add(billing.InsuranceCost(days, c.DailyInsuranceRate))
	total = total.Sub(c.Discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

func (s *contractService) CreateContract(ctx context.Context, c *domain.RentalContract, marks []domain.DamageMark) (*domain.RentalContract, error) {
	if c.EndDate.Before(c.StartDate) {
		return nil, ErrInvalidDateRange
	}

	if _, err := s.clientRepo.GetByID(ctx, c.TenantID, c.ClientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, c.TenantID, c.VehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, ErrVehicleNotAvailable
	}

	// Snapshot the vehicle's rates; later price edits on the vehicle must
	// not reprice a signed contract.
	c.DailyRate = vehicle.DailyRate
	c.WeeklyRate = vehicle.WeeklyRate
	c.MonthlyRate = vehicle.MonthlyRate
	c.PickupOdometerKm = vehicle.OdometerKm
	c.PickupFuelLevel = vehicle.FuelLevel

	settings, err := s.settingsRepo.GetByTenant(ctx, c.TenantID)
	if err != nil {
		return nil, err
	}
	if c.LateFeePercentage.IsZero() {
		c.LateFeePercentage = settings.DefaultLateFeePct
	}
	if c.FuelPolicy == "" {
		c.FuelPolicy = domain.FuelPolicyFullToFull
	}
	if c.DepositStatus == "" {
		c.DepositStatus = domain.DepositStatusHeld
	}

	c.Status = domain.ContractStatusActive
	c.TotalAmount = estimateTotal(c)

	if err := s.contractRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	vehicle.Status = domain.VehicleStatusRented
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	for i := range marks {
		marks[i].ContractID = c.ID
		if err := s.contractRepo.CreateDamageMark(ctx, &marks[i]); err != nil {
			return nil, err
		}
	}

	logger.Info("contract created", "contract_id", c.ID, "tenant_id", c.TenantID, "vehicle_id", c.VehicleID)
	return c, nil
}

func (s *contractService) GetContract(ctx context.Context, tenantID, id int32) (*domain.RentalContract, []domain.DamageMark, []domain.ContractAmendment, error) {
	c, err := s.contractRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil, ErrContractNotFound
		}
		return nil, nil, nil, err
	}
	marks, err := s.contractRepo.ListDamageMarks(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	amendments, err := s.contractRepo.ListAmendments(ctx, tenantID, id)
	if err != nil {
		return nil, nil, nil, err
	}
	return c, marks, amendments, nil
}

func (s *contractService) ListContracts(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.RentalContract, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.contractRepo.List(ctx, tenantID, status, page, pageSize)
}

func (s *contractService) MarkAsReturned(ctx context.Context, tenantID, id int32, ret ReturnDetails) (*domain.RentalContract, *domain.Invoice, error) {
	c, err := s.contractRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrContractNotFound
		}
		return nil, nil, err
	}
	if c.Status != domain.ContractStatusActive && c.Status != domain.ContractStatusOverdue {
		return nil, nil, ErrContractNotActive
	}
	if ret.OdometerKm < c.PickupOdometerKm {
		return nil, nil, ErrOdometerRegression
	}

	returnedAt := ret.ReturnedAt
	if returnedAt.IsZero() {
		returnedAt = time.Now()
	}

	c.ReturnedAt = &returnedAt
	c.ReturnOdometerKm = &ret.OdometerKm
	c.ReturnFuelLevel = &ret.FuelLevel
	c.Status = domain.ContractStatusCompleted
	if ret.DepositStatus != "" {
		c.DepositStatus = ret.DepositStatus
	}
	if ret.Notes != "" {
		c.Notes = ret.Notes
	}
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, nil, err
	}

	// Release the vehicle and roll its meters forward.
	vehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, c.VehicleID)
	if err != nil {
		return nil, nil, err
	}
	vehicle.Status = domain.VehicleStatusAvailable
	vehicle.OdometerKm = ret.OdometerKm
	vehicle.FuelLevel = ret.FuelLevel
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, nil, err
	}

	invoice, _, err := s.invoiceSvc.GenerateForContract(ctx, tenantID, c.ID)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("contract returned", "contract_id", c.ID, "invoice_id", invoice.ID)
	return c, invoice, nil
}

// snapshot marshals a subset of contract fields for the amendment audit
// trail. Marshal of a plain map cannot fail.
func snapshot(fields map[string]interface{}) string {
	b, _ := json.Marshal(fields)
	return string(b)
}

func (s *contractService) activeContract(ctx context.Context, tenantID, id int32) (*domain.RentalContract, error) {
	c, err := s.contractRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	if c.Status != domain.ContractStatusActive && c.Status != domain.ContractStatusOverdue {
		return nil, ErrContractNotActive
	}
	return c, nil
}

func (s *contractService) AmendDates(ctx context.Context, tenantID, id int32, newStart, newEnd time.Time) (*domain.RentalContract, error) {
	if newEnd.Before(newStart) {
		return nil, ErrInvalidDateRange
	}
	c, err := s.activeContract(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	prev := snapshot(map[string]interface{}{
		"start_date": c.StartDate.Format("2006-01-02"),
		"end_date":   c.EndDate.Format("2006-01-02"),
	})
	oldTotal := c.TotalAmount

	c.StartDate = newStart
	c.EndDate = newEnd
	c.TotalAmount = estimateTotal(c)

	// An extension past the scheduled end brings an overdue contract back
	// into good standing.
	if c.Status == domain.ContractStatusOverdue && newEnd.After(time.Now()) {
		c.Status = domain.ContractStatusActive
	}

	a := &domain.ContractAmendment{
		ContractID: c.ID,
		TenantID:   tenantID,
		Type:       domain.AmendmentTypeDates,
		PreviousState: prev,
		NewState: snapshot(map[string]interface{}{
			"start_date": newStart.Format("2006-01-02"),
			"end_date":   newEnd.Format("2006-01-02"),
		}),
		AmountDelta: c.TotalAmount.Sub(oldTotal),
	}
	if err := s.contractRepo.UpdateWithAmendment(ctx, c, a); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contractService) AmendVehicle(ctx context.Context, tenantID, id, newVehicleID int32) (*domain.RentalContract, error) {
	c, err := s.activeContract(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if newVehicleID == c.VehicleID {
		return c, nil
	}

	newVehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, newVehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if newVehicle.Status != domain.VehicleStatusAvailable {
		return nil, ErrVehicleNotAvailable
	}

	oldVehicleID := c.VehicleID
	prev := snapshot(map[string]interface{}{"vehicle_id": oldVehicleID})

	// Rates stay as contracted; a swap is a substitution, not a reprice.
	c.VehicleID = newVehicleID

	a := &domain.ContractAmendment{
		ContractID:    c.ID,
		TenantID:      tenantID,
		Type:          domain.AmendmentTypeVehicle,
		PreviousState: prev,
		NewState:      snapshot(map[string]interface{}{"vehicle_id": newVehicleID}),
		AmountDelta:   decimal.Zero,
	}
	if err := s.contractRepo.SwapVehicle(ctx, c, a, oldVehicleID, newVehicleID); err != nil {
		return nil, err
	}

	logger.Info("contract vehicle swapped", "contract_id", c.ID,
		"old_vehicle_id", oldVehicleID, "new_vehicle_id", newVehicleID)
	return c, nil
}

func (s *contractService) AmendRate(ctx context.Context, tenantID, id int32, newDailyRate, newDiscount decimal.Decimal) (*domain.RentalContract, error) {
	if newDailyRate.IsNegative() || newDiscount.IsNegative() {
		return nil, fmt.Errorf("rate and discount must not be negative")
	}
	c, err := s.activeContract(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	prev := snapshot(map[string]interface{}{
		"daily_rate": c.DailyRate.String(),
		"discount":   c.Discount.String(),
	})
	oldTotal := c.TotalAmount

	c.DailyRate = newDailyRate
	c.Discount = newDiscount
	c.TotalAmount = estimateTotal(c)

	a := &domain.ContractAmendment{
		ContractID: c.ID,
		TenantID:   tenantID,
		Type:       domain.AmendmentTypeRate,
		PreviousState: prev,
		NewState: snapshot(map[string]interface{}{
			"daily_rate": newDailyRate.String(),
			"discount":   newDiscount.String(),
		}),
		AmountDelta: c.TotalAmount.Sub(oldTotal),
	}
	if err := s.contractRepo.UpdateWithAmendment(ctx, c, a); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contractService) DeleteContract(ctx context.Context, tenantID, id int32) error {
	c, err := s.contractRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrContractNotFound
		}
		return err
	}

	// Deleting an open contract frees its vehicle first.
	if c.Status == domain.ContractStatusActive || c.Status == domain.ContractStatusOverdue {
		vehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, c.VehicleID)
		if err == nil && vehicle.Status == domain.VehicleStatusRented {
			vehicle.Status = domain.VehicleStatusAvailable
			if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
				return err
			}
		}
	}
	return s.contractRepo.Delete(ctx, tenantID, id)
}

func (s *contractService) AddDamageMark(ctx context.Context, tenantID int32, m *domain.DamageMark) error {
	if _, err := s.contractRepo.GetByID(ctx, tenantID, m.ContractID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrContractNotFound
		}
		return err
	}
	return s.contractRepo.CreateDamageMark(ctx, m)
}
