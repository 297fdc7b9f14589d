package pricing

import (
	"math"
	"sort"

	"ShellWatch/internal/domain/models"
)

// Rank orders items for presentation. Pinned items come first, in the order of
// pinnedIDs (most recently pinned leads, since pinning prepends). Unpinned
// items follow, best current discount ratio first; the sort is stable so equal
// discounts keep their input order.
//
// An item with an unknown base price has no meaningful discount ratio; it is
// given -Inf and therefore sorts after every item with a known base.
func Rank(items []models.Item, pinnedIDs []string) []models.Item {
	pinnedPos := make(map[string]int, len(pinnedIDs))
	for i, id := range pinnedIDs {
		if _, ok := pinnedPos[id]; !ok {
			pinnedPos[id] = i
		}
	}

	out := append([]models.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, iPinned := pinnedPos[out[i].ID]
		pj, jPinned := pinnedPos[out[j].ID]
		if iPinned && jPinned {
			return pi < pj
		}
		if iPinned != jPinned {
			return iPinned
		}
		return discountRatio(out[i]) > discountRatio(out[j])
	})
	return out
}

func discountRatio(item models.Item) float64 {
	if !item.HasKnownBasePrice() {
		return math.Inf(-1)
	}
	return float64(item.BasePrice-item.Price) / float64(item.BasePrice)
}
