package receiving

import (
	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants for the receiving context
const (
	EventTypeReceiptCreated   = "receiving.receipt_created"
	EventTypeReceiptLineAdded = "receiving.receipt_line_added"
	EventTypeStockReceived    = "receiving.stock_received"
	EventTypeDebtAccrued      = "receiving.debt_accrued"
)

// ReceiptCreatedEvent is emitted when a receipt header is created
type ReceiptCreatedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	ReceivedBy int64     `json:"received_by"`
}

// NewReceiptCreatedEvent creates a new ReceiptCreatedEvent
func NewReceiptCreatedEvent(r *Receipt) *ReceiptCreatedEvent {
	return &ReceiptCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceiptCreated, "Receipt", r.ID),
		SupplierID:      r.SupplierID,
		ReceivedBy:      r.ReceivedBy,
	}
}

// ReceiptLineAddedEvent is emitted when a line is committed to a receipt
type ReceiptLineAddedEvent struct {
	shared.BaseDomainEvent
	LineID    uuid.UUID       `json:"line_id"`
	ItemID    uuid.UUID       `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// NewReceiptLineAddedEvent creates a new ReceiptLineAddedEvent
func NewReceiptLineAddedEvent(r *Receipt, line *ReceiptLine) *ReceiptLineAddedEvent {
	return &ReceiptLineAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceiptLineAdded, "Receipt", r.ID),
		LineID:          line.ID,
		ItemID:          line.ItemID,
		Quantity:        line.Quantity,
		Price:           line.Price,
		LineTotal:       line.Total(),
	}
}

// StockReceivedEvent is emitted when incoming stock is applied to an item
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	ItemID      uuid.UUID       `json:"item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	NewAvgPrice decimal.Decimal `json:"new_avg_price"`
}

// NewStockReceivedEvent creates a new StockReceivedEvent
func NewStockReceivedEvent(s *InventoryStock, quantity, price decimal.Decimal) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, "InventoryStock", s.ID),
		ItemID:          s.ItemID,
		Quantity:        quantity,
		Price:           price,
		NewQuantity:     s.QuantityOnHand,
		NewAvgPrice:     s.AvgPrice,
	}
}

// DebtAccruedEvent is emitted when a committed line increases a supplier debt
type DebtAccruedEvent struct {
	shared.BaseDomainEvent
	ReceiptID uuid.UUID       `json:"receipt_id"`
	Amount    decimal.Decimal `json:"amount"`
	AmountDue decimal.Decimal `json:"amount_due"`
}

// NewDebtAccruedEvent creates a new DebtAccruedEvent
func NewDebtAccruedEvent(d *SupplierDebt, amount decimal.Decimal) *DebtAccruedEvent {
	return &DebtAccruedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtAccrued, "SupplierDebt", d.ID),
		ReceiptID:       d.ReceiptID,
		Amount:          amount,
		AmountDue:       d.AmountDue,
	}
}
