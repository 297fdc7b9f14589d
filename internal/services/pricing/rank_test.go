package pricing

import (
	"testing"

	"ShellWatch/internal/domain/models"
)

func rankedIDs(items []models.Item, pinned []string) []string {
	ranked := Rank(items, pinned)
	ids := make([]string, len(ranked))
	for i, it := range ranked {
		ids[i] = it.ID
	}
	return ids
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestRankByDiscountStable(t *testing.T) {
	items := []models.Item{
		{ID: "A", Price: 95, BasePrice: 100}, // 5% off
		{ID: "B", Price: 90, BasePrice: 100}, // 10% off
		{ID: "C", Price: 90, BasePrice: 100}, // 10% off, after B in input
	}
	got := rankedIDs(items, nil)
	if !equalIDs(got, []string{"B", "C", "A"}) {
		t.Fatalf("got order %v, want [B C A]", got)
	}
}

func TestRankPinnedFirst(t *testing.T) {
	items := []models.Item{
		{ID: "A", Price: 95, BasePrice: 100},
		{ID: "B", Price: 90, BasePrice: 100},
		{ID: "C", Price: 90, BasePrice: 100},
	}
	got := rankedIDs(items, []string{"A"})
	if !equalIDs(got, []string{"A", "B", "C"}) {
		t.Fatalf("got order %v, want [A B C]", got)
	}
}

func TestRankPinnedOrderPreserved(t *testing.T) {
	items := []models.Item{
		{ID: "A", Price: 95, BasePrice: 100},
		{ID: "B", Price: 90, BasePrice: 100},
		{ID: "C", Price: 90, BasePrice: 100},
	}
	// Pinning prepends, so the list is most-recently-pinned first.
	got := rankedIDs(items, []string{"C", "A"})
	if !equalIDs(got, []string{"C", "A", "B"}) {
		t.Fatalf("got order %v, want [C A B]", got)
	}
}

func TestRankUnknownBaseSortsLast(t *testing.T) {
	items := []models.Item{
		{ID: "X", Price: 50, BasePrice: models.BasePriceUnknown},
		{ID: "A", Price: 105, BasePrice: 100}, // 5% hike, still known
		{ID: "B", Price: 90, BasePrice: 100},
	}
	got := rankedIDs(items, nil)
	if !equalIDs(got, []string{"B", "A", "X"}) {
		t.Fatalf("got order %v, want [B A X]", got)
	}
}

func TestRankUnknownBaseStable(t *testing.T) {
	items := []models.Item{
		{ID: "X", Price: 50, BasePrice: models.BasePriceUnknown},
		{ID: "Y", Price: 70, BasePrice: models.BasePriceUnknown},
	}
	got := rankedIDs(items, nil)
	if !equalIDs(got, []string{"X", "Y"}) {
		t.Fatalf("got order %v, want [X Y]", got)
	}
}

func TestRankPinnedUnknownBase(t *testing.T) {
	items := []models.Item{
		{ID: "A", Price: 90, BasePrice: 100},
		{ID: "X", Price: 50, BasePrice: models.BasePriceUnknown},
	}
	got := rankedIDs(items, []string{"X"})
	if !equalIDs(got, []string{"X", "A"}) {
		t.Fatalf("pinned unknown-base item should lead: %v", got)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	items := []models.Item{
		{ID: "A", Price: 95, BasePrice: 100},
		{ID: "B", Price: 90, BasePrice: 100},
	}
	_ = Rank(items, nil)
	if items[0].ID != "A" || items[1].ID != "B" {
		t.Fatalf("input slice mutated: %v", items)
	}
}
