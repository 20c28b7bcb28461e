package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
)

// In-memory repository fakes shared by the service tests.

type fakeVehicleRepo struct {
	nextID   int32
	vehicles map[int32]*domain.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: map[int32]*domain.Vehicle{}}
}

func (r *fakeVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	r.nextID++
	v.ID = r.nextID
	r.vehicles[v.ID] = v
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, tenantID, id int32) (*domain.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok || v.TenantID != tenantID {
		return nil, sql.ErrNoRows
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, tenantID, id int32) error {
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) List(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	var out []domain.Vehicle
	for _, v := range r.vehicles {
		if v.TenantID == tenantID && (status == "" || string(v.Status) == status) {
			out = append(out, *v)
		}
	}
	return out, int32(len(out)), nil
}

type fakeClientRepo struct {
	nextID  int32
	clients map[int32]*domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[int32]*domain.Client{}}
}

func (r *fakeClientRepo) Create(ctx context.Context, c *domain.Client) error {
	r.nextID++
	c.ID = r.nextID
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, tenantID, id int32) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.TenantID != tenantID {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, c *domain.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, tenantID, id int32) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) List(ctx context.Context, tenantID int32, search string, page, pageSize int32) ([]domain.Client, int32, error) {
	var out []domain.Client
	for _, c := range r.clients {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, int32(len(out)), nil
}

type fakeContractRepo struct {
	nextID     int32
	contracts  map[int32]*domain.RentalContract
	amendments []domain.ContractAmendment
	marks      []domain.DamageMark
	vehicles   *fakeVehicleRepo // SwapVehicle touches vehicle rows too
}

func newFakeContractRepo(vehicles *fakeVehicleRepo) *fakeContractRepo {
	return &fakeContractRepo{contracts: map[int32]*domain.RentalContract{}, vehicles: vehicles}
}

func (r *fakeContractRepo) Create(ctx context.Context, c *domain.RentalContract) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.contracts[c.ID] = &cp
	return nil
}

func (r *fakeContractRepo) GetByID(ctx context.Context, tenantID, id int32) (*domain.RentalContract, error) {
	c, ok := r.contracts[id]
	if !ok || c.TenantID != tenantID {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContractRepo) Update(ctx context.Context, c *domain.RentalContract) error {
	cp := *c
	r.contracts[c.ID] = &cp
	return nil
}

func (r *fakeContractRepo) Delete(ctx context.Context, tenantID, id int32) error {
	delete(r.contracts, id)
	return nil
}

func (r *fakeContractRepo) List(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.RentalContract, int32, error) {
	var out []domain.RentalContract
	for _, c := range r.contracts {
		if c.TenantID == tenantID && (status == "" || string(c.Status) == status) {
			out = append(out, *c)
		}
	}
	return out, int32(len(out)), nil
}

func (r *fakeContractRepo) UpdateWithAmendment(ctx context.Context, c *domain.RentalContract, a *domain.ContractAmendment) error {
	if err := r.Update(ctx, c); err != nil {
		return err
	}
	a.ID = int32(len(r.amendments) + 1)
	r.amendments = append(r.amendments, *a)
	return nil
}

func (r *fakeContractRepo) SwapVehicle(ctx context.Context, c *domain.RentalContract, a *domain.ContractAmendment, oldVehicleID, newVehicleID int32) error {
	if err := r.UpdateWithAmendment(ctx, c, a); err != nil {
		return err
	}
	if v, ok := r.vehicles.vehicles[oldVehicleID]; ok {
		v.Status = domain.VehicleStatusAvailable
	}
	if v, ok := r.vehicles.vehicles[newVehicleID]; ok {
		v.Status = domain.VehicleStatusRented
	}
	return nil
}

func (r *fakeContractRepo) ListAmendments(ctx context.Context, tenantID, contractID int32) ([]domain.ContractAmendment, error) {
	var out []domain.ContractAmendment
	for _, a := range r.amendments {
		if a.ContractID == contractID && a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeContractRepo) CreateDamageMark(ctx context.Context, m *domain.DamageMark) error {
	m.ID = int32(len(r.marks) + 1)
	r.marks = append(r.marks, *m)
	return nil
}

func (r *fakeContractRepo) ListDamageMarks(ctx context.Context, contractID int32) ([]domain.DamageMark, error) {
	var out []domain.DamageMark
	for _, m := range r.marks {
		if m.ContractID == contractID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	nextID   int32
	invoices map[int32]*domain.Invoice
	items    map[int32][]domain.InvoiceLineItem
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[int32]*domain.Invoice{}, items: map[int32][]domain.InvoiceLineItem{}}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice, items []domain.InvoiceLineItem) error {
	for _, existing := range r.invoices {
		if existing.ContractID == inv.ContractID {
			return &pq.Error{Code: "23505"}
		}
	}
	r.nextID++
	inv.ID = r.nextID
	cp := *inv
	r.invoices[inv.ID] = &cp
	for i := range items {
		items[i].InvoiceID = inv.ID
	}
	r.items[inv.ID] = append([]domain.InvoiceLineItem(nil), items...)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, tenantID, id int32) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.TenantID != tenantID {
		return nil, sql.ErrNoRows
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByContractID(ctx context.Context, tenantID, contractID int32) (*domain.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ContractID == contractID && inv.TenantID == tenantID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Invoice, int32, error) {
	var out []domain.Invoice
	for _, inv := range r.invoices {
		if inv.TenantID == tenantID {
			out = append(out, *inv)
		}
	}
	return out, int32(len(out)), nil
}

func (r *fakeInvoiceRepo) ListItems(ctx context.Context, invoiceID int32) ([]domain.InvoiceLineItem, error) {
	return r.items[invoiceID], nil
}

type fakeSettingsRepo struct {
	settings map[int32]*domain.CompanySettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: map[int32]*domain.CompanySettings{}}
}

func (r *fakeSettingsRepo) Create(ctx context.Context, s *domain.CompanySettings) error {
	s.ID = int32(len(r.settings) + 1)
	r.settings[s.TenantID] = s
	return nil
}

func (r *fakeSettingsRepo) GetByTenant(ctx context.Context, tenantID int32) (*domain.CompanySettings, error) {
	s, ok := r.settings[tenantID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, s *domain.CompanySettings) error {
	r.settings[s.TenantID] = s
	return nil
}

func (r *fakeSettingsRepo) NextInvoiceNumber(ctx context.Context, tenantID int32) (string, error) {
	s, ok := r.settings[tenantID]
	if !ok {
		return "", sql.ErrNoRows
	}
	s.InvoiceCounter++
	return s.InvoicePrefix + padCounter(s.InvoiceCounter), nil
}

func padCounter(n int32) string {
	digits := []byte{'0', '0', '0', '0'}
	for i := 3; i >= 0 && n > 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits)
}

type fakeNoteRepo struct {
	notes []domain.Notification
}

func (r *fakeNoteRepo) Create(ctx context.Context, n *domain.Notification) error {
	n.ID = int32(len(r.notes) + 1)
	r.notes = append(r.notes, *n)
	return nil
}

func (r *fakeNoteRepo) List(ctx context.Context, tenantID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	return r.notes, int32(len(r.notes)), nil
}

func (r *fakeNoteRepo) MarkAsRead(ctx context.Context, id, tenantID int32) error {
	return nil
}

type fakeEmailService struct {
	sent []string
}

func (f *fakeEmailService) SendInvoiceIssued(ctx context.Context, toEmail, clientName, invoiceNumber, total, dueOn string) error {
	f.sent = append(f.sent, "invoice:"+invoiceNumber)
	return nil
}

func (f *fakeEmailService) SendOverdueAlert(ctx context.Context, toEmail, clientName, vehicleName string, daysLate int32) error {
	f.sent = append(f.sent, "overdue:"+vehicleName)
	return nil
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, toEmail, name string) error {
	f.sent = append(f.sent, "welcome:"+toEmail)
	return nil
}

// seedTenant wires a full fake backend for one tenant with an available
// vehicle and a client on file.
type fixture struct {
	vehicles  *fakeVehicleRepo
	clients   *fakeClientRepo
	contracts *fakeContractRepo
	invoices  *fakeInvoiceRepo
	settings  *fakeSettingsRepo
	notes     *fakeNoteRepo
	email     *fakeEmailService

	invoiceSvc  InvoiceService
	contractSvc ContractService

	vehicle *domain.Vehicle
	client  *domain.Client
}

const testTenant = int32(1)

func newFixture() *fixture {
	f := &fixture{
		vehicles: newFakeVehicleRepo(),
		clients:  newFakeClientRepo(),
		invoices: newFakeInvoiceRepo(),
		settings: newFakeSettingsRepo(),
		notes:    &fakeNoteRepo{},
		email:    &fakeEmailService{},
	}
	f.contracts = newFakeContractRepo(f.vehicles)

	f.settings.Create(context.Background(), &domain.CompanySettings{
		TenantID:          testTenant,
		TaxPercentage:     decimal.NewFromFloat(11.00),
		InvoicePrefix:     "INV-",
		DefaultLateFeePct: decimal.NewFromInt(150),
		InvoiceDueDays:    14,
	})

	f.vehicle = &domain.Vehicle{
		TenantID:   testTenant,
		Make:       "Toyota",
		Model:      "Avanza",
		Year:       2022,
		OdometerKm: 40000,
		FuelLevel:  8,
		Status:     domain.VehicleStatusAvailable,
		DailyRate:  decimal.NewFromInt(100),
	}
	f.vehicles.Create(context.Background(), f.vehicle)

	f.client = &domain.Client{TenantID: testTenant, Name: "Budi", Email: "budi@example.com", Phone: "+62812"}
	f.clients.Create(context.Background(), f.client)

	f.invoiceSvc = NewInvoiceService(f.invoices, f.contracts, f.clients, f.settings, f.notes, f.email)
	f.contractSvc = NewContractService(f.contracts, f.vehicles, f.clients, f.settings, f.invoiceSvc)
	return f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
