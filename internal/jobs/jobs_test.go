package jobs

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository/postgres"
)

type fakeNoteRepo struct {
	created []domain.Notification
}

func (r *fakeNoteRepo) Create(ctx context.Context, n *domain.Notification) error {
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeNoteRepo) List(ctx context.Context, tenantID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	return r.created, int32(len(r.created)), nil
}

func (r *fakeNoteRepo) MarkAsRead(ctx context.Context, id, tenantID int32) error {
	return nil
}

type fakeSettingsRepo struct {
	settings domain.CompanySettings
}

func (r *fakeSettingsRepo) Create(ctx context.Context, s *domain.CompanySettings) error { return nil }

func (r *fakeSettingsRepo) GetByTenant(ctx context.Context, tenantID int32) (*domain.CompanySettings, error) {
	cp := r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, s *domain.CompanySettings) error { return nil }

func (r *fakeSettingsRepo) NextInvoiceNumber(ctx context.Context, tenantID int32) (string, error) {
	return "INV-0001", nil
}

type templateSend struct {
	tenantID     int32
	clientID     int32
	templateName string
	values       map[string]string
}

type fakeTemplateService struct {
	sends []templateSend
}

func (s *fakeTemplateService) AddTemplate(ctx context.Context, t *domain.WhatsAppTemplate) error {
	return nil
}

func (s *fakeTemplateService) GetTemplate(ctx context.Context, tenantID, id int32) (*domain.WhatsAppTemplate, error) {
	return nil, nil
}

func (s *fakeTemplateService) UpdateTemplate(ctx context.Context, t *domain.WhatsAppTemplate) error {
	return nil
}

func (s *fakeTemplateService) DeleteTemplate(ctx context.Context, tenantID, id int32) error {
	return nil
}

func (s *fakeTemplateService) ListTemplates(ctx context.Context, tenantID int32) ([]domain.WhatsAppTemplate, error) {
	return nil, nil
}

func (s *fakeTemplateService) Preview(ctx context.Context, tenantID, id int32, values map[string]string) (string, error) {
	return "", nil
}

func (s *fakeTemplateService) SendToClient(ctx context.Context, tenantID, clientID int32, templateName string, values map[string]string) error {
	s.sends = append(s.sends, templateSend{tenantID, clientID, templateName, values})
	return nil
}

type overdueAlert struct {
	toEmail     string
	clientName  string
	vehicleName string
	daysLate    int32
}

type fakeEmailService struct {
	alerts []overdueAlert
}

func (s *fakeEmailService) SendInvoiceIssued(ctx context.Context, toEmail, clientName, invoiceNumber, total, dueOn string) error {
	return nil
}

func (s *fakeEmailService) SendOverdueAlert(ctx context.Context, toEmail, clientName, vehicleName string, daysLate int32) error {
	s.alerts = append(s.alerts, overdueAlert{toEmail, clientName, vehicleName, daysLate})
	return nil
}

func (s *fakeEmailService) SendWelcome(ctx context.Context, toEmail, name string) error {
	return nil
}

type fakeImageRepo struct {
	expiredKeys []string
}

func (r *fakeImageRepo) Create(ctx context.Context, img *domain.VehicleImage) error { return nil }

func (r *fakeImageRepo) GetByID(ctx context.Context, tenantID, id int32) (*domain.VehicleImage, error) {
	return nil, nil
}

func (r *fakeImageRepo) Confirm(ctx context.Context, tenantID, id int32, fileSize int64) error {
	return nil
}

func (r *fakeImageRepo) Delete(ctx context.Context, tenantID, id int32) error { return nil }

func (r *fakeImageRepo) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.VehicleImage, error) {
	return nil, nil
}

func (r *fakeImageRepo) DeleteExpiredPending(ctx context.Context, olderThan time.Time) ([]string, error) {
	return r.expiredKeys, nil
}

type fakeStorage struct {
	deleted []string
}

func (s *fakeStorage) GeneratePresignedUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error) {
	return "", nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return "", nil
}

func (s *fakeStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	return true, 0, nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) SaveFile(key string, reader io.Reader) error { return nil }

func (s *fakeStorage) ReadFile(key string) (io.ReadCloser, error) { return nil, nil }

type jobFixture struct {
	mock     sqlmock.Sqlmock
	runner   *JobRunner
	notes    *fakeNoteRepo
	settings *fakeSettingsRepo
	template *fakeTemplateService
	email    *fakeEmailService
	images   *fakeImageRepo
	storage  *fakeStorage
}

func newJobFixture(t *testing.T) *jobFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &jobFixture{
		mock:     mock,
		notes:    &fakeNoteRepo{},
		settings: &fakeSettingsRepo{settings: domain.CompanySettings{TenantID: 1, NotificationEmail: "owner@example.com"}},
		template: &fakeTemplateService{},
		email:    &fakeEmailService{},
		images:   &fakeImageRepo{},
		storage:  &fakeStorage{},
	}
	store := &postgres.Store{
		NotificationRepository: f.notes,
		SettingsRepository:     f.settings,
		ImageRepository:        f.images,
	}
	f.runner = NewJobRunner(db, store, &Services{
		Email:    f.email,
		Template: f.template,
		Storage:  f.storage,
	}, &config.Config{})
	return f
}

func TestMarkOverdueContracts(t *testing.T) {
	f := newJobFixture(t)

	endDate := time.Now().Add(-73 * time.Hour) // 3 days and an hour ago
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "client_id", "end_date", "make", "model", "license_plate", "name"}).
		AddRow(7, 1, 3, endDate, "Toyota", "Avanza", "B 1234 XYZ", "Budi")
	f.mock.ExpectQuery("UPDATE rental_contracts").WillReturnRows(rows)

	f.runner.MarkOverdueContracts()

	require.Len(t, f.notes.created, 1)
	note := f.notes.created[0]
	assert.Equal(t, int32(1), note.TenantID)
	assert.Equal(t, "Rental overdue", note.Title)
	assert.Contains(t, note.Message, "Budi")
	assert.Contains(t, note.Message, "Toyota Avanza (B 1234 XYZ)")
	assert.Equal(t, "7", note.Attributes["contract_id"])

	require.Len(t, f.template.sends, 1)
	send := f.template.sends[0]
	assert.Equal(t, int32(1), send.tenantID)
	assert.Equal(t, int32(3), send.clientID)
	assert.Equal(t, "rental_overdue", send.templateName)
	assert.Equal(t, endDate.Format("2006-01-02"), send.values["due_date"])

	require.Len(t, f.email.alerts, 1)
	alert := f.email.alerts[0]
	assert.Equal(t, "owner@example.com", alert.toEmail)
	assert.Equal(t, "Budi", alert.clientName)
	assert.Equal(t, int32(3), alert.daysLate)

	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestMarkOverdueContractsSkipsEmailWithoutAddress(t *testing.T) {
	f := newJobFixture(t)
	f.settings.settings.NotificationEmail = ""

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "client_id", "end_date", "make", "model", "license_plate", "name"}).
		AddRow(7, 1, 3, time.Now().AddDate(0, 0, -1), "Toyota", "Avanza", "B 1234 XYZ", "Budi")
	f.mock.ExpectQuery("UPDATE rental_contracts").WillReturnRows(rows)

	f.runner.MarkOverdueContracts()

	assert.Len(t, f.notes.created, 1)
	assert.Empty(t, f.email.alerts)
}

func TestMarkOverdueContractsNothingDue(t *testing.T) {
	f := newJobFixture(t)

	f.mock.ExpectQuery("UPDATE rental_contracts").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "client_id", "end_date", "make", "model", "license_plate", "name"}))

	f.runner.MarkOverdueContracts()

	assert.Empty(t, f.notes.created)
	assert.Empty(t, f.template.sends)
	assert.Empty(t, f.email.alerts)
}

func TestMarkOverdueInvoices(t *testing.T) {
	f := newJobFixture(t)

	dueOn := time.Now().AddDate(0, 0, -5)
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "invoice_number", "total", "due_on", "name"}).
		AddRow(11, 1, "INV-0042", "555.00", dueOn, "Budi").
		AddRow(12, 2, "INV-0007", "120.00", dueOn, "Sari")
	f.mock.ExpectQuery("UPDATE invoices").WillReturnRows(rows)

	f.runner.MarkOverdueInvoices()

	require.Len(t, f.notes.created, 2)
	assert.Equal(t, "Invoice overdue", f.notes.created[0].Title)
	assert.Contains(t, f.notes.created[0].Message, "INV-0042")
	assert.Contains(t, f.notes.created[0].Message, "Budi")
	assert.Equal(t, "11", f.notes.created[0].Attributes["invoice_id"])
	assert.Equal(t, int32(2), f.notes.created[1].TenantID)

	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSendMaintenanceReminders(t *testing.T) {
	f := newJobFixture(t)

	dueOn := time.Now().AddDate(0, 0, 2)
	dueAtKm := int32(45000)
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "type", "description", "due_on", "due_at_km",
		"make", "model", "license_plate", "odometer_km"}).
		AddRow(5, 1, "oil_change", "10W-40 and filter", dueOn, nil, "Toyota", "Avanza", "B 1234 XYZ", 40000).
		AddRow(6, 1, "brake_check", "", nil, dueAtKm, "Honda", "Jazz", "B 9 ABC", 46000)
	f.mock.ExpectQuery("SELECT m.id").WillReturnRows(rows)

	f.runner.SendMaintenanceReminders()

	require.Len(t, f.notes.created, 2)
	assert.Equal(t, "Maintenance due", f.notes.created[0].Title)
	assert.Contains(t, f.notes.created[0].Message, "oil_change")
	assert.Contains(t, f.notes.created[0].Message, dueOn.Format("2006-01-02"))
	assert.Contains(t, f.notes.created[1].Message, "46000 km")
	assert.Equal(t, "6", f.notes.created[1].Attributes["maintenance_id"])

	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCleanupPendingImages(t *testing.T) {
	f := newJobFixture(t)
	f.images.expiredKeys = []string{"tenants/1/abc.jpg", "tenants/2/def.png"}

	f.runner.CleanupPendingImages()

	assert.Equal(t, f.images.expiredKeys, f.storage.deleted)
}
