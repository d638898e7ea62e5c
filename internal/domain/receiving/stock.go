package receiving

import (
	"time"

	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryStock tracks the quantity on hand and the running weighted-average
// purchase price for one catalog item. There is exactly one row per item;
// the row is created on the first receipt of that item.
type InventoryStock struct {
	shared.BaseAggregateRoot
	ItemID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	QuantityOnHand decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AvgPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // weighted-average purchase price
}

// TableName returns the table name for GORM
func (InventoryStock) TableName() string {
	return "inventory_stock"
}

// NewInventoryStock creates the stock record for an item's first receipt
func NewInventoryStock(itemID uuid.UUID) (*InventoryStock, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	return &InventoryStock{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemID:            itemID,
		QuantityOnHand:    decimal.Zero,
		AvgPrice:          decimal.Zero,
	}, nil
}

// Receive applies an incoming quantity at a given unit price and recalculates
// the weighted-average purchase price:
//
//	new avg = (old avg * old qty + price * qty) / (old qty + qty)
//
// The caller must hold a row-level lock on this record for the duration of the
// enclosing transaction; two concurrent receipts for the same item would
// otherwise read-modify-write on stale quantities.
func (s *InventoryStock) Receive(quantity, price decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}

	oldQuantity := s.QuantityOnHand

	if oldQuantity.IsZero() {
		s.AvgPrice = price
	} else {
		totalValue := s.AvgPrice.Mul(oldQuantity).Add(price.Mul(quantity))
		s.AvgPrice = totalValue.Div(oldQuantity.Add(quantity)).Round(4)
	}

	s.QuantityOnHand = oldQuantity.Add(quantity)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockReceivedEvent(s, quantity, price))

	return nil
}

// TotalValue returns quantity on hand times the weighted-average price
func (s *InventoryStock) TotalValue() decimal.Decimal {
	return s.QuantityOnHand.Mul(s.AvgPrice)
}
