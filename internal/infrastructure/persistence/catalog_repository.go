package persistence

import (
	"context"

	"github.com/erp/warehouse-bot/internal/domain/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogReader implements catalog.Reader using GORM
type GormCatalogReader struct {
	db *gorm.DB
}

// NewGormCatalogReader creates a new GormCatalogReader
func NewGormCatalogReader(db *gorm.DB) *GormCatalogReader {
	return &GormCatalogReader{db: db}
}

// ListSuppliers returns all suppliers sorted by name
func (r *GormCatalogReader) ListSuppliers(ctx context.Context) ([]catalog.Supplier, error) {
	suppliers := make([]catalog.Supplier, 0)
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// ListItemsForSupplier returns the supplier's items sorted by name
func (r *GormCatalogReader) ListItemsForSupplier(ctx context.Context, supplierID uuid.UUID) ([]catalog.Item, error) {
	items := make([]catalog.Item, 0)
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Ensure GormCatalogReader implements catalog.Reader
var _ catalog.Reader = (*GormCatalogReader)(nil)
