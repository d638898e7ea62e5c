package receiving

import (
	"context"

	"github.com/google/uuid"
)

// ReceiptRepository persists receipt documents and their lines
type ReceiptRepository interface {
	// FindByID finds a receipt with its lines preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)
	// Create inserts a new receipt header
	Create(ctx context.Context, receipt *Receipt) error
	// AddLine appends a line row for an existing receipt
	AddLine(ctx context.Context, line *ReceiptLine) error
}

// StockRepository persists per-item inventory stock records
type StockRepository interface {
	// FindByItem finds the stock record for an item, or shared.ErrNotFound
	FindByItem(ctx context.Context, itemID uuid.UUID) (*InventoryStock, error)
	// FindByItemForUpdate finds the stock record and acquires a row-level
	// write lock for the duration of the enclosing transaction
	FindByItemForUpdate(ctx context.Context, itemID uuid.UUID) (*InventoryStock, error)
	// Create inserts a new stock record
	Create(ctx context.Context, stock *InventoryStock) error
	// Save persists changes to an existing stock record
	Save(ctx context.Context, stock *InventoryStock) error
}

// SupplierDebtRepository persists per-receipt supplier debt records
type SupplierDebtRepository interface {
	// FindByReceipt finds the debt record for a receipt, or shared.ErrNotFound
	FindByReceipt(ctx context.Context, receiptID uuid.UUID) (*SupplierDebt, error)
	// FindByReceiptForUpdate finds the debt record under a row-level write lock
	FindByReceiptForUpdate(ctx context.Context, receiptID uuid.UUID) (*SupplierDebt, error)
	// Create inserts a new debt record
	Create(ctx context.Context, debt *SupplierDebt) error
	// Save persists changes to an existing debt record
	Save(ctx context.Context, debt *SupplierDebt) error
}
