package receiving

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceipt(t *testing.T) {
	t.Run("creates receipt with supplier and user", func(t *testing.T) {
		supplierID := uuid.New()
		receipt, err := NewReceipt(supplierID, 42)
		require.NoError(t, err)

		assert.Equal(t, supplierID, receipt.SupplierID)
		assert.Equal(t, int64(42), receipt.ReceivedBy)
		assert.Empty(t, receipt.Lines)
	})

	t.Run("rejects nil supplier", func(t *testing.T) {
		_, err := NewReceipt(uuid.Nil, 42)
		assert.Error(t, err)
	})

	t.Run("rejects zero user id", func(t *testing.T) {
		_, err := NewReceipt(uuid.New(), 0)
		assert.Error(t, err)
	})

	t.Run("emits receipt created event", func(t *testing.T) {
		receipt, err := NewReceipt(uuid.New(), 42)
		require.NoError(t, err)

		events := receipt.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeReceiptCreated, events[0].EventType())
	})
}

func TestReceiptAddLine(t *testing.T) {
	t.Run("appends a valid line", func(t *testing.T) {
		receipt, err := NewReceipt(uuid.New(), 42)
		require.NoError(t, err)

		itemID := uuid.New()
		line, err := receipt.AddLine(itemID, decimal.NewFromInt(10), decimal.NewFromFloat(2.5))
		require.NoError(t, err)

		assert.Equal(t, receipt.ID, line.ReceiptID)
		assert.Equal(t, itemID, line.ItemID)
		assert.Equal(t, 1, receipt.LineCount())
	})

	t.Run("rejects nil item", func(t *testing.T) {
		receipt, err := NewReceipt(uuid.New(), 42)
		require.NoError(t, err)

		_, err = receipt.AddLine(uuid.Nil, decimal.NewFromInt(1), decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		receipt, err := NewReceipt(uuid.New(), 42)
		require.NoError(t, err)

		_, err = receipt.AddLine(uuid.New(), decimal.Zero, decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		receipt, err := NewReceipt(uuid.New(), 42)
		require.NoError(t, err)

		_, err = receipt.AddLine(uuid.New(), decimal.NewFromInt(1), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("emits line added event", func(t *testing.T) {
		receipt, err := NewReceipt(uuid.New(), 42)
		require.NoError(t, err)
		receipt.ClearDomainEvents()

		_, err = receipt.AddLine(uuid.New(), decimal.NewFromInt(1), decimal.NewFromInt(1))
		require.NoError(t, err)

		events := receipt.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeReceiptLineAdded, events[0].EventType())
	})
}

func TestReceiptLineTotal(t *testing.T) {
	t.Run("rounds to two decimal places", func(t *testing.T) {
		line := ReceiptLine{
			Quantity: decimal.NewFromFloat(3.333),
			Price:    decimal.NewFromFloat(1.111),
		}
		// 3.333 * 1.111 = 3.702963 -> 3.70
		assert.Equal(t, "3.70", line.Total().StringFixed(2))
	})

	t.Run("exact product stays exact", func(t *testing.T) {
		line := ReceiptLine{
			Quantity: decimal.NewFromInt(10),
			Price:    decimal.NewFromFloat(2.5),
		}
		assert.Equal(t, "25.00", line.Total().StringFixed(2))
	})
}

func TestReceiptTotalAmount(t *testing.T) {
	receipt, err := NewReceipt(uuid.New(), 42)
	require.NoError(t, err)

	_, err = receipt.AddLine(uuid.New(), decimal.NewFromInt(10), decimal.NewFromFloat(2.5))
	require.NoError(t, err)
	_, err = receipt.AddLine(uuid.New(), decimal.NewFromInt(4), decimal.NewFromInt(1))
	require.NoError(t, err)

	assert.Equal(t, "29.00", receipt.TotalAmount().StringFixed(2))
}
