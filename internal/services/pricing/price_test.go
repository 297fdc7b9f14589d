package pricing

import (
	"testing"

	"ShellWatch/internal/domain/models"
)

func TestPriceKnownValues(t *testing.T) {
	// Regression fixtures for the full digest-to-price pipeline.
	cases := []struct {
		hour int64
		base int
		want int
	}{
		{487000, 100, 101},
		{487001, 100, 91},
		{487002, 100, 94},
		{500123, 100, 110},
		{487000, 250, 252},
		{487000, 0, 1},
	}
	for _, c := range cases {
		got := Price("user123", "item456", c.base, c.hour, models.DefaultPriceBounds())
		if got != c.want {
			t.Fatalf("hour=%d base=%d: got %d, want %d", c.hour, c.base, got, c.want)
		}
	}
}

func TestPriceDeterministic(t *testing.T) {
	bounds := models.DefaultPriceBounds()
	first := Price("user123", "item456", 100, 487000, bounds)
	for i := 0; i < 20; i++ {
		if got := Price("user123", "item456", 100, 487000, bounds); got != first {
			t.Fatalf("price not deterministic: %d vs %d", got, first)
		}
	}
}

func TestPriceRespectsBounds(t *testing.T) {
	bounds := models.DefaultPriceBounds()
	for base := 1; base <= 500; base += 7 {
		for hour := int64(487000); hour < 487020; hour++ {
			p := Price("user123", "item456", base, hour, bounds)
			lo := base * 90 / 100 // floor
			hi := (base*110 + 99) / 100
			if p < lo || p > hi {
				t.Fatalf("base=%d hour=%d: price %d outside [%d,%d]", base, hour, p, lo, hi)
			}
			if p < 1 {
				t.Fatalf("price below 1: %d", p)
			}
		}
	}
}

func TestPriceNeverBelowOne(t *testing.T) {
	bounds := models.DefaultPriceBounds()
	for hour := int64(487000); hour < 487050; hour++ {
		if p := Price("user123", "item456", 0, hour, bounds); p != 1 {
			t.Fatalf("zero base should price at 1, got %d", p)
		}
	}
}

func TestPriceClampsDegenerateBounds(t *testing.T) {
	// (0, 0) clamps to (1, 2): price stays within 1-2% of base.
	p := Price("user123", "item456", 1000, 487000, models.PriceBounds{MinPercent: 0, MaxPercent: 0})
	if p < 10 || p > 20 {
		t.Fatalf("degenerate bounds: price %d outside [10,20]", p)
	}
}

func TestPriceBoundsClamped(t *testing.T) {
	b := models.PriceBounds{MinPercent: -5, MaxPercent: 0}.Clamped()
	if b.MinPercent != 1 || b.MaxPercent != 2 {
		t.Fatalf("unexpected clamp result: %+v", b)
	}
	b = models.PriceBounds{MinPercent: 95, MaxPercent: 90}.Clamped()
	if b.MinPercent != 95 || b.MaxPercent != 96 {
		t.Fatalf("unexpected clamp result: %+v", b)
	}
}
