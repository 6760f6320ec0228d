package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePriceBreakdown(t *testing.T) {
	t.Run("order above free delivery threshold", func(t *testing.T) {
		breakdown := CalculatePriceBreakdown(600)

		assert.Equal(t, 600.0, breakdown.ProductPrice)
		assert.Equal(t, 0.0, breakdown.DeliveryFee)
		assert.Equal(t, 10.0, breakdown.PlatformFee)
		assert.InDelta(t, 108.0, breakdown.Taxes, 0.001)
		assert.Equal(t, 0.0, breakdown.Discount)
		assert.InDelta(t, 718.0, breakdown.OrderTotal, 0.001)
	})

	t.Run("order below free delivery threshold", func(t *testing.T) {
		breakdown := CalculatePriceBreakdown(100)

		assert.Equal(t, 50.0, breakdown.DeliveryFee)
		assert.Equal(t, 10.0, breakdown.PlatformFee)
		assert.InDelta(t, 18.0, breakdown.Taxes, 0.001)
		assert.InDelta(t, 178.0, breakdown.OrderTotal, 0.001)
	})

	t.Run("delivery fee boundary", func(t *testing.T) {
		// exactly at the threshold still pays delivery
		at := CalculatePriceBreakdown(500)
		assert.Equal(t, 50.0, at.DeliveryFee)

		above := CalculatePriceBreakdown(500.01)
		assert.Equal(t, 0.0, above.DeliveryFee)
	})

	t.Run("zero subtotal", func(t *testing.T) {
		breakdown := CalculatePriceBreakdown(0)

		assert.Equal(t, 50.0, breakdown.DeliveryFee)
		assert.Equal(t, 10.0, breakdown.PlatformFee)
		assert.Equal(t, 0.0, breakdown.Taxes)
		assert.Equal(t, 60.0, breakdown.OrderTotal)
	})
}
