package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftOrder(t *testing.T) *SalesOrder {
	t.Helper()
	order, err := NewSalesOrder("SO-0001")
	require.NoError(t, err)
	return order
}

func addLine(t *testing.T, order *SalesOrder) {
	t.Helper()
	err := order.AddLine(uuid.New(), "Mouse", "ESP-001", decimal.NewFromInt(2), decimal.NewFromInt(10))
	require.NoError(t, err)
}

func TestNewSalesOrder(t *testing.T) {
	t.Run("creates draft order", func(t *testing.T) {
		order := newDraftOrder(t)
		assert.Equal(t, "SO-0001", order.Number)
		assert.Equal(t, OrderStatusDraft, order.Status)
		assert.False(t, order.DistributorSent)
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := NewSalesOrder("")
		assert.Error(t, err)
	})
}

func TestSalesOrder_Confirm(t *testing.T) {
	t.Run("confirms order with lines", func(t *testing.T) {
		order := newDraftOrder(t)
		addLine(t, order)

		require.NoError(t, order.Confirm())
		assert.Equal(t, OrderStatusConfirmed, order.Status)
		assert.True(t, order.IsConfirmed())
	})

	t.Run("rejects confirming empty order", func(t *testing.T) {
		order := newDraftOrder(t)
		assert.Error(t, order.Confirm())
	})

	t.Run("rejects double confirm", func(t *testing.T) {
		order := newDraftOrder(t)
		addLine(t, order)
		require.NoError(t, order.Confirm())
		assert.Error(t, order.Confirm())
	})
}

func TestSalesOrder_AddLine(t *testing.T) {
	t.Run("rejects lines after confirmation", func(t *testing.T) {
		order := newDraftOrder(t)
		addLine(t, order)
		require.NoError(t, order.Confirm())

		err := order.AddLine(uuid.New(), "Keyboard", "ESP-002", decimal.NewFromInt(1), decimal.NewFromInt(20))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order := newDraftOrder(t)
		err := order.AddLine(uuid.New(), "Mouse", "ESP-001", decimal.Zero, decimal.NewFromInt(10))
		assert.Error(t, err)
	})
}

func TestSalesOrder_MarkDistributorSent(t *testing.T) {
	t.Run("records external order id exactly once", func(t *testing.T) {
		order := newDraftOrder(t)
		addLine(t, order)
		require.NoError(t, order.Confirm())

		require.NoError(t, order.MarkDistributorSent("ESP-77001"))
		assert.True(t, order.DistributorSent)
		assert.Equal(t, "ESP-77001", order.DistributorOrderID)

		err := order.MarkDistributorSent("ESP-77002")
		assert.Error(t, err)
		assert.Equal(t, "ESP-77001", order.DistributorOrderID)
	})
}

func TestSalesOrder_Cancel(t *testing.T) {
	t.Run("cancels draft order", func(t *testing.T) {
		order := newDraftOrder(t)
		require.NoError(t, order.Cancel())
		assert.Equal(t, OrderStatusCancelled, order.Status)
	})

	t.Run("rejects cancelling twice", func(t *testing.T) {
		order := newDraftOrder(t)
		require.NoError(t, order.Cancel())
		assert.Error(t, order.Cancel())
	})
}
