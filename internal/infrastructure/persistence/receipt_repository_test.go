package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/warehouse-bot/internal/domain/receiving"
	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormReceiptRepository_FindByID(t *testing.T) {
	t.Run("finds receipt with lines preloaded", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormReceiptRepository(db)

		receiptID := uuid.New()
		supplierID := uuid.New()

		receiptRows := sqlmock.NewRows([]string{"id", "supplier_id", "received_by", "version"}).
			AddRow(receiptID, supplierID, int64(42), 1)
		mock.ExpectQuery(`SELECT \* FROM "receipts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(receiptID, 1).
			WillReturnRows(receiptRows)

		lineRows := sqlmock.NewRows([]string{"id", "receipt_id", "item_id", "quantity", "price"}).
			AddRow(uuid.New(), receiptID, uuid.New(), decimal.NewFromInt(10), decimal.NewFromFloat(2.5))
		mock.ExpectQuery(`SELECT \* FROM "receipt_lines" WHERE "receipt_lines"\."receipt_id" = \$1`).
			WithArgs(receiptID).
			WillReturnRows(lineRows)

		receipt, err := repo.FindByID(context.Background(), receiptID)
		require.NoError(t, err)

		assert.Equal(t, receiptID, receipt.ID)
		assert.Equal(t, supplierID, receipt.SupplierID)
		require.Len(t, receipt.Lines, 1)
		assert.Equal(t, "25.00", receipt.Lines[0].Total().StringFixed(2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing receipt to not found", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormReceiptRepository(db)

		receiptID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "receipts" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(receiptID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		receipt, err := repo.FindByID(context.Background(), receiptID)
		assert.Nil(t, receipt)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormReceiptRepository_Create(t *testing.T) {
	t.Run("inserts only the header", func(t *testing.T) {
		db, mock, mockDB := newMockGorm(t)
		defer mockDB.Close()
		repo := NewGormReceiptRepository(db)

		receipt, err := receiving.NewReceipt(uuid.New(), 42)
		require.NoError(t, err)
		_, err = receipt.AddLine(uuid.New(), decimal.NewFromInt(10), decimal.NewFromFloat(2.5))
		require.NoError(t, err)

		// No receipt_lines insert expected; lines go through AddLine.
		mock.ExpectExec(`INSERT INTO "receipts"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), receipt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReceiptRepository_AddLine(t *testing.T) {
	db, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()
	repo := NewGormReceiptRepository(db)

	receipt, err := receiving.NewReceipt(uuid.New(), 42)
	require.NoError(t, err)
	line, err := receipt.AddLine(uuid.New(), decimal.NewFromInt(10), decimal.NewFromFloat(2.5))
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "receipt_lines"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AddLine(context.Background(), line))
	assert.NoError(t, mock.ExpectationsWereMet())
}
