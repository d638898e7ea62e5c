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

// GormSupplierDebtRepository implements SupplierDebtRepository using GORM
type GormSupplierDebtRepository struct {
	db *gorm.DB
}

// NewGormSupplierDebtRepository creates a new GormSupplierDebtRepository
func NewGormSupplierDebtRepository(db *gorm.DB) *GormSupplierDebtRepository {
	return &GormSupplierDebtRepository{db: db}
}

// FindByReceipt finds the debt record for a receipt
func (r *GormSupplierDebtRepository) FindByReceipt(ctx context.Context, receiptID uuid.UUID) (*receiving.SupplierDebt, error) {
	var debt receiving.SupplierDebt
	if err := r.db.WithContext(ctx).
		First(&debt, "receipt_id = ?", receiptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &debt, nil
}

// FindByReceiptForUpdate finds the debt record under a row-level write lock.
// Must be called within a transaction.
func (r *GormSupplierDebtRepository) FindByReceiptForUpdate(ctx context.Context, receiptID uuid.UUID) (*receiving.SupplierDebt, error) {
	var debt receiving.SupplierDebt
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&debt, "receipt_id = ?", receiptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &debt, nil
}

// Create inserts a new debt record
func (r *GormSupplierDebtRepository) Create(ctx context.Context, debt *receiving.SupplierDebt) error {
	return r.db.WithContext(ctx).Create(debt).Error
}

// Save persists changes to an existing debt record
func (r *GormSupplierDebtRepository) Save(ctx context.Context, debt *receiving.SupplierDebt) error {
	return r.db.WithContext(ctx).Save(debt).Error
}

// Ensure GormSupplierDebtRepository implements SupplierDebtRepository
var _ receiving.SupplierDebtRepository = (*GormSupplierDebtRepository)(nil)
