package pricing

import (
	"sort"

	"ShellWatch/internal/domain/models"
	"ShellWatch/pkg/util"
)

// BuildSchedule simulates every hour in [fromHour, toHour] against the shared
// reference base price and returns the hours ranked best discount first, ties
// broken by earliest time.
//
// The simulation deliberately runs against a fixed reference base price rather
// than an item's own recovered base: the discount percentage captures the
// oscillation pattern, and callers apply that ratio to each item's real base
// price for display. An inverted range yields an empty schedule.
func BuildSchedule(identityID, itemID string, fromHour, toHour int64, referenceBase int) []models.TimeToBuy {
	if toHour < fromHour {
		return nil
	}

	bounds := models.DefaultPriceBounds()
	entries := make([]models.TimeToBuy, 0, toHour-fromHour+1)
	for hour := fromHour; hour <= toHour; hour++ {
		p := Price(identityID, itemID, referenceBase, hour, bounds)
		discount := (float64(referenceBase) - float64(p)) / float64(referenceBase) * 100
		entries = append(entries, models.TimeToBuy{
			Time:            util.HourStart(hour),
			DiscountPercent: discount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].DiscountPercent != entries[j].DiscountPercent {
			return entries[i].DiscountPercent > entries[j].DiscountPercent
		}
		return entries[i].Time.Before(entries[j].Time)
	})
	return entries
}
