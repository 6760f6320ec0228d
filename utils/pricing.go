package utils

import "github.com/gameonmart/GameOnMart/models"

// Fee schedule constants. Orders over the free-delivery threshold ship
// free; the platform fee is flat and taxes are a fixed rate on the
// product subtotal.
const (
	FreeDeliveryThreshold = 500.0
	DeliveryFee           = 50.0
	PlatformFee           = 10.0
	TaxRate               = 0.18
)

// CalculatePriceBreakdown computes the full charge schedule for a product
// subtotal. The breakdown is snapshotted onto the order at checkout and
// never recomputed. Discount is always zero until a promotion model lands.
func CalculatePriceBreakdown(subtotal float64) models.PriceBreakdown {
	deliveryFee := DeliveryFee
	if subtotal > FreeDeliveryThreshold {
		deliveryFee = 0
	}
	taxes := subtotal * TaxRate
	discount := 0.0

	return models.PriceBreakdown{
		ProductPrice: subtotal,
		DeliveryFee:  deliveryFee,
		PlatformFee:  PlatformFee,
		Taxes:        taxes,
		Discount:     discount,
		OrderTotal:   subtotal + deliveryFee + PlatformFee + taxes - discount,
	}
}
