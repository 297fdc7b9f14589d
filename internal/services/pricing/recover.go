package pricing

import (
	"math"

	"ShellWatch/internal/domain/models"
)

// Search window for base price recovery. Under default bounds the shop never
// strays more than ~30% from the base price, so candidates outside
// [0.7*observed, 1.3*observed] cannot reproduce the observation.
const (
	SearchLowFactor  = 0.7
	SearchHighFactor = 1.3
)

// RecoverBasePrice searches for the base price that would have produced the
// observed price at the given hour under default bounds. Candidates are tried
// in ascending order and the first exact match wins, so ambiguous observations
// resolve to the smallest plausible base price. Returns
// models.BasePriceUnknown when no candidate in the window matches; that is an
// expected outcome, not an error.
func RecoverBasePrice(identityID, itemID string, observedPrice int, hour int64) int {
	lo := int(math.Round(float64(observedPrice) * SearchLowFactor))
	hi := int(math.Round(float64(observedPrice) * SearchHighFactor))
	bounds := models.DefaultPriceBounds()

	for candidate := lo; candidate <= hi; candidate++ {
		if Price(identityID, itemID, candidate, hour, bounds) == observedPrice {
			return candidate
		}
	}
	return models.BasePriceUnknown
}
