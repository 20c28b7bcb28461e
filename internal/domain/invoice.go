package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

type LineItemCategory string

const (
	LineItemRental       LineItemCategory = "rental"
	LineItemDiscount     LineItemCategory = "discount"
	LineItemInsurance    LineItemCategory = "insurance"
	LineItemLateFee      LineItemCategory = "late_fee"
	LineItemOverLimitFee LineItemCategory = "over_limit_fee"
	LineItemFuelCharge   LineItemCategory = "fuel_charge"
)

// Invoice is the one-to-one billing derivative of a completed contract.
// contract_id carries a unique constraint so generation stays idempotent
// even under concurrent calls.
type Invoice struct {
	ID            int32           `json:"id"`
	TenantID      int32           `json:"tenant_id"`
	ContractID    int32           `json:"contract_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Total         decimal.Decimal `json:"total"`
	Status        InvoiceStatus   `json:"status"`
	IssuedOn      time.Time       `json:"issued_on"`
	DueOn         time.Time       `json:"due_on"`
	PaidOn        *time.Time      `json:"paid_on,omitempty"`
	CreatedOn     time.Time       `json:"created_on"`
	UpdatedOn     time.Time       `json:"updated_on"`
}

// InvoiceLineItem is one itemized charge row. The sum of a invoice's line
// item amounts equals its subtotal; discounts carry negative amounts.
type InvoiceLineItem struct {
	ID          int32            `json:"id"`
	InvoiceID   int32            `json:"invoice_id"`
	Category    LineItemCategory `json:"category"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
}
