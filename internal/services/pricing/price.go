package pricing

import (
	"math"

	"ShellWatch/internal/domain/models"
)

// Price reproduces the shop's randomized price for one item and hour.
// Every rounding step matches the shop's algorithm exactly; recovery relies
// on integer equality with externally observed prices.
func Price(identityID, itemID string, basePrice int, hour int64, bounds models.PriceBounds) int {
	random := Draw(identityID, itemID, hour)

	b := bounds.Clamped()
	safeMin := b.MinPercent
	safeMax := b.MaxPercent

	minPrice := int(math.Floor(float64(basePrice) * float64(safeMin) / 100))
	maxPrice := int(math.Ceil(float64(basePrice) * float64(safeMax) / 100))

	randomPercent := float64(safeMin) + random*float64(safeMax-safeMin)
	multiplier := randomPercent / 100

	raw := int(math.Round(float64(basePrice) * multiplier))
	clamped := raw
	if clamped < minPrice {
		clamped = minPrice
	}
	if clamped > maxPrice {
		clamped = maxPrice
	}

	if clamped < 1 {
		return 1
	}
	return clamped
}
