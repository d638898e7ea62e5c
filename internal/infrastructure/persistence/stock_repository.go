package persistence

import (
	"context"
	"errors"

	"github.com/erp/warehouse-bot/internal/domain/receiving"
	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByItem finds the stock record for an item
func (r *GormStockRepository) FindByItem(ctx context.Context, itemID uuid.UUID) (*receiving.InventoryStock, error) {
	var stock receiving.InventoryStock
	if err := r.db.WithContext(ctx).
		First(&stock, "item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindByItemForUpdate finds the stock record and acquires a row-level write
// lock (SELECT ... FOR UPDATE) held until the enclosing transaction ends.
// Must be called within a transaction.
func (r *GormStockRepository) FindByItemForUpdate(ctx context.Context, itemID uuid.UUID) (*receiving.InventoryStock, error) {
	var stock receiving.InventoryStock
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&stock, "item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// Create inserts a new stock record
func (r *GormStockRepository) Create(ctx context.Context, stock *receiving.InventoryStock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

// Save persists changes to an existing stock record
func (r *GormStockRepository) Save(ctx context.Context, stock *receiving.InventoryStock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

// Ensure GormStockRepository implements StockRepository
var _ receiving.StockRepository = (*GormStockRepository)(nil)
