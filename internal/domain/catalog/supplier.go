package catalog

import (
	"strings"

	"github.com/erp/warehouse-bot/internal/domain/shared"
)

// Supplier represents a goods supplier in the catalog context.
// The receiving core treats suppliers as read-only reference data.
type Supplier struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(200);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(name string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
