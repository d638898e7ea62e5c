package catalog

import (
	"strings"

	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents a catalog item owned by a single supplier.
// DefaultPrice is the current reference purchase price, shown as a hint
// when staff enter the actual price during receiving.
type Item struct {
	shared.BaseEntity
	SupplierID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_item_supplier_name,priority:2"`
	DefaultPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item for a supplier
func NewItem(supplierID uuid.UUID, name string, defaultPrice decimal.Decimal) (*Item, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if defaultPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Default price cannot be negative")
	}
	return &Item{
		BaseEntity:   shared.NewBaseEntity(),
		SupplierID:   supplierID,
		Name:         name,
		DefaultPrice: defaultPrice,
	}, nil
}
