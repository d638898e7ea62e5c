package persistence

import (
	"context"
	"errors"

	"github.com/erp/warehouse-bot/internal/domain/receiving"
	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceiptRepository implements ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt with its lines preloaded
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*receiving.Receipt, error) {
	var receipt receiving.Receipt
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// Create inserts a new receipt header. Lines are persisted separately via
// AddLine so a header insert never cascades stale in-memory lines.
func (r *GormReceiptRepository) Create(ctx context.Context, receipt *receiving.Receipt) error {
	return r.db.WithContext(ctx).
		Omit("Lines").
		Create(receipt).Error
}

// AddLine appends a line row for an existing receipt
func (r *GormReceiptRepository) AddLine(ctx context.Context, line *receiving.ReceiptLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// Ensure GormReceiptRepository implements ReceiptRepository
var _ receiving.ReceiptRepository = (*GormReceiptRepository)(nil)
