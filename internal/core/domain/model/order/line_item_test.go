package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewLineItem(t *testing.T) {
	validID := kernel.NewUUID()
	validRef := kernel.NewUUID()

	t.Run("should create line item and compute subtotal", func(t *testing.T) {
		price := mustMoney(t, "29.99")

		item, err := order.NewLineItem(validID, validRef, "Wireless Mouse", price, 2)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ID().IsEqual(validID))
		assert.True(t, item.ProductRef().IsEqual(validRef))
		assert.Equal(t, "Wireless Mouse", item.ProductName())
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, "59.98", item.Subtotal().String())
	})

	t.Run("should accept quantity of one", func(t *testing.T) {
		item, err := order.NewLineItem(validID, validRef, "Laptop", mustMoney(t, "999.99"), 1)

		require.NoError(t, err)
		assert.Equal(t, "999.99", item.Subtotal().String())
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		_, err := order.NewLineItem(validID, validRef, "Laptop", mustMoney(t, "999.99"), 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("should fail with negative quantity", func(t *testing.T) {
		_, err := order.NewLineItem(validID, validRef, "Laptop", mustMoney(t, "999.99"), -3)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "-3 is not greater than 0")
	})

	t.Run("should fail with empty product name", func(t *testing.T) {
		_, err := order.NewLineItem(validID, validRef, "", mustMoney(t, "10.00"), 1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with invalid id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := order.NewLineItem(invalidID, validRef, "Laptop", mustMoney(t, "10.00"), 1)

		require.Error(t, err)
	})

	t.Run("should fail with unconstructed unit price", func(t *testing.T) {
		var price kernel.Money

		_, err := order.NewLineItem(validID, validRef, "Laptop", price, 1)

		require.Error(t, err)
	})
}

func TestRestoreLineItem(t *testing.T) {
	id := kernel.NewUUID()
	ref := kernel.NewUUID()

	t.Run("should restore when subtotal matches", func(t *testing.T) {
		item, err := order.RestoreLineItem(
			id, ref, "Keyboard", mustMoney(t, "49.50"), 2, mustMoney(t, "99.00"))

		require.NoError(t, err)
		assert.Equal(t, "99.00", item.Subtotal().String())
	})

	t.Run("should reject drifted subtotal", func(t *testing.T) {
		_, err := order.RestoreLineItem(
			id, ref, "Keyboard", mustMoney(t, "49.50"), 2, mustMoney(t, "99.01"))

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrLineItemSubtotalMismatch)
	})
}

func TestLineItem_Validate(t *testing.T) {
	t.Run("should fail for zero-value line item", func(t *testing.T) {
		var item order.LineItem

		err := item.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrLineItemIsNotConstructed, err)
	})
}
