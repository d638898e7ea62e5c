package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCatalogReader_ListSuppliers(t *testing.T) {
	t.Run("returns suppliers sorted by name", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		reader := NewGormCatalogReader(db)

		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uuid.New(), "Acme Foods").
			AddRow(uuid.New(), "Zen Trade")

		mock.ExpectQuery(`SELECT \* FROM "suppliers" ORDER BY name ASC`).
			WillReturnRows(rows)

		suppliers, err := reader.ListSuppliers(context.Background())
		require.NoError(t, err)

		require.Len(t, suppliers, 2)
		assert.Equal(t, "Acme Foods", suppliers[0].Name)
		assert.Equal(t, "Zen Trade", suppliers[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when no suppliers exist", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		reader := NewGormCatalogReader(db)

		mock.ExpectQuery(`SELECT \* FROM "suppliers" ORDER BY name ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		suppliers, err := reader.ListSuppliers(context.Background())
		require.NoError(t, err)
		assert.Empty(t, suppliers)
		assert.NotNil(t, suppliers)
	})

	t.Run("propagates query errors", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		reader := NewGormCatalogReader(db)

		mock.ExpectQuery(`SELECT \* FROM "suppliers" ORDER BY name ASC`).
			WillReturnError(errors.New("connection reset"))

		_, err := reader.ListSuppliers(context.Background())
		assert.Error(t, err)
	})
}

func TestGormCatalogReader_ListItemsForSupplier(t *testing.T) {
	t.Run("returns the supplier's items sorted by name", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		reader := NewGormCatalogReader(db)

		supplierID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "supplier_id", "name", "default_price"}).
			AddRow(uuid.New(), supplierID, "Flour", decimal.NewFromFloat(2.5)).
			AddRow(uuid.New(), supplierID, "Sugar", decimal.NewFromFloat(3.2))

		mock.ExpectQuery(`SELECT \* FROM "items" WHERE supplier_id = \$1 ORDER BY name ASC`).
			WithArgs(supplierID).
			WillReturnRows(rows)

		items, err := reader.ListItemsForSupplier(context.Background(), supplierID)
		require.NoError(t, err)

		require.Len(t, items, 2)
		assert.Equal(t, "Flour", items[0].Name)
		assert.True(t, items[0].DefaultPrice.Equal(decimal.NewFromFloat(2.5)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice for a supplier without items", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		reader := NewGormCatalogReader(db)

		supplierID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "items" WHERE supplier_id = \$1 ORDER BY name ASC`).
			WithArgs(supplierID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "supplier_id", "name", "default_price"}))

		items, err := reader.ListItemsForSupplier(context.Background(), supplierID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
