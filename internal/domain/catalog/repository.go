package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Reader provides read-only access to suppliers and their items.
// Implementations return results ordered by name and an empty slice
// (not an error) when no rows match.
type Reader interface {
	// ListSuppliers returns all suppliers sorted by name
	ListSuppliers(ctx context.Context) ([]Supplier, error)
	// ListItemsForSupplier returns the supplier's items sorted by name
	ListItemsForSupplier(ctx context.Context, supplierID uuid.UUID) ([]Item, error)
}
