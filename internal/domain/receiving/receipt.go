package receiving

import (
	"time"

	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt represents a goods-receipt document: everything received from one
// supplier in one warehouse session. It is the aggregate root for receiving
// operations. The document is created on the first committed line and grows
// line by line; the header itself is never mutated afterwards.
type Receipt struct {
	shared.BaseAggregateRoot
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceivedBy int64     `gorm:"not null;index"` // external chat ID of the warehouse user

	// Associations - loaded lazily
	Lines []ReceiptLine `gorm:"foreignKey:ReceiptID;references:ID"`
}

// TableName returns the table name for GORM
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptLine is one (item, quantity, price) entry within a receipt.
// Lines are append-only.
type ReceiptLine struct {
	shared.BaseEntity
	ReceiptID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null"` // unit purchase price
}

// TableName returns the table name for GORM
func (ReceiptLine) TableName() string {
	return "receipt_lines"
}

// Total returns the line total (quantity * price) rounded to 2 places
func (l *ReceiptLine) Total() decimal.Decimal {
	return l.Quantity.Mul(l.Price).Round(2)
}

// NewReceipt creates a new receipt document for a supplier
func NewReceipt(supplierID uuid.UUID, receivedBy int64) (*Receipt, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if receivedBy == 0 {
		return nil, shared.NewDomainError("INVALID_USER", "Receiving user ID cannot be empty")
	}

	r := &Receipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		ReceivedBy:        receivedBy,
		Lines:             make([]ReceiptLine, 0),
	}
	r.AddDomainEvent(NewReceiptCreatedEvent(r))

	return r, nil
}

// AddLine appends a line to the receipt and returns it.
// Quantity and price must both be positive.
func (r *Receipt) AddLine(itemID uuid.UUID, quantity, price decimal.Decimal) (*ReceiptLine, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}

	line := ReceiptLine{
		BaseEntity: shared.NewBaseEntity(),
		ReceiptID:  r.ID,
		ItemID:     itemID,
		Quantity:   quantity,
		Price:      price,
	}
	r.Lines = append(r.Lines, line)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewReceiptLineAddedEvent(r, &line))

	return &line, nil
}

// TotalAmount returns the sum of all line totals
func (r *Receipt) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range r.Lines {
		total = total.Add(r.Lines[i].Total())
	}
	return total
}

// LineCount returns the number of committed lines
func (r *Receipt) LineCount() int {
	return len(r.Lines)
}
