package receiving

import (
	"time"

	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtStatus represents the payment status of a supplier debt
type DebtStatus string

const (
	DebtStatusUnpaid        DebtStatus = "unpaid"
	DebtStatusPartiallyPaid DebtStatus = "partially_paid"
	DebtStatusPaid          DebtStatus = "paid"
)

// SupplierDebt is the per-receipt record of the amount owed to the supplier.
// It is created together with the receipt header at zero and accrues with
// every committed line. The receiving core only ever produces the unpaid
// status; payment transitions belong to a settlement module.
type SupplierDebt struct {
	shared.BaseAggregateRoot
	ReceiptID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	AmountDue  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status     DebtStatus      `gorm:"type:varchar(20);not null;default:'unpaid'"`
}

// TableName returns the table name for GORM
func (SupplierDebt) TableName() string {
	return "supplier_debts"
}

// NewSupplierDebt creates the debt record for a freshly created receipt
func NewSupplierDebt(receiptID uuid.UUID) (*SupplierDebt, error) {
	if receiptID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt ID cannot be empty")
	}
	return &SupplierDebt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptID:         receiptID,
		AmountDue:         decimal.Zero,
		AmountPaid:        decimal.Zero,
		Status:            DebtStatusUnpaid,
	}, nil
}

// Accrue increases the amount due by the total of a newly committed line
func (d *SupplierDebt) Accrue(lineTotal decimal.Decimal) error {
	if lineTotal.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Accrued amount must be positive")
	}

	d.AmountDue = d.AmountDue.Add(lineTotal)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDebtAccruedEvent(d, lineTotal))

	return nil
}

// Outstanding returns the amount still owed to the supplier
func (d *SupplierDebt) Outstanding() decimal.Decimal {
	return d.AmountDue.Sub(d.AmountPaid)
}
