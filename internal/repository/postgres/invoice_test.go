package postgres

import (
	"context"
	"testing"
	"time"

	"fleetrent-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	inv := &domain.Invoice{
		TenantID:      1,
		ContractID:    7,
		InvoiceNumber: "INV-0042",
		Subtotal:      decimal.NewFromInt(500),
		TaxPercentage: decimal.NewFromInt(11),
		TaxAmount:     decimal.NewFromInt(55),
		Total:         decimal.NewFromInt(555),
		Status:        domain.InvoiceStatusPending,
		IssuedOn:      time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		DueOn:         time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	}
	items := []domain.InvoiceLineItem{
		{Category: domain.LineItemRental, Description: "Rental (5 days)", Amount: decimal.NewFromInt(500)},
	}

	t.Run("Inserts invoice and line items in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO invoices").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectQuery("INSERT INTO invoice_line_items").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
		mock.ExpectCommit()

		err := repo.Create(ctx, inv, items)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), inv.ID)
		assert.Equal(t, int32(3), items[0].InvoiceID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back when a line item insert fails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO invoices").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
		mock.ExpectQuery("INSERT INTO invoice_line_items").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.Create(ctx, inv, items)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInvoiceRepository_GetByContractID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "tenant_id", "contract_id", "invoice_number", "subtotal",
			"tax_percentage", "tax_amount", "total", "status", "issued_on", "due_on", "paid_on", "created_on", "updated_on"}).
			AddRow(3, 1, 7, "INV-0042", "500", "11", "55", "555", "pending", now, now, nil, now, now)
		mock.ExpectQuery("SELECT (.+) FROM invoices WHERE contract_id").
			WithArgs(int32(7), int32(1)).
			WillReturnRows(rows)

		inv, err := repo.GetByContractID(ctx, 1, 7)
		assert.NoError(t, err)
		assert.Equal(t, "INV-0042", inv.InvoiceNumber)
		assert.True(t, inv.Total.Equal(decimal.NewFromInt(555)))
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM invoices WHERE contract_id").
			WithArgs(int32(7), int32(1)).
			WillReturnError(context.Canceled)

		_, err := repo.GetByContractID(ctx, 1, 7)
		assert.Error(t, err)
	})
}
