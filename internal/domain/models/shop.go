package models

import "time"

// BasePriceUnknown marks an item whose base price could not be recovered.
const BasePriceUnknown = -1

// PriceBounds is the percent window the shop draws hourly prices from.
type PriceBounds struct {
	MinPercent int `json:"minPercent"`
	MaxPercent int `json:"maxPercent"`
}

// DefaultPriceBounds returns the shop's observed default window.
func DefaultPriceBounds() PriceBounds {
	return PriceBounds{MinPercent: 90, MaxPercent: 110}
}

// Clamped returns bounds with the invariants minPercent >= 1 and
// maxPercent >= minPercent+1 enforced.
func (b PriceBounds) Clamped() PriceBounds {
	if b.MinPercent < 1 {
		b.MinPercent = 1
	}
	if b.MaxPercent < b.MinPercent+1 {
		b.MaxPercent = b.MinPercent + 1
	}
	return b
}

// TimeToBuy is one simulated hour and its discount relative to the
// reference base price. Positive discount means cheaper than reference.
type TimeToBuy struct {
	Time            time.Time `json:"time"`
	DiscountPercent float64   `json:"discountPercent"`
}

// Item is one shop item with its observed price, recovered base price and
// simulated purchase windows.
type Item struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Image          string      `json:"image"`
	Price          int         `json:"price"`
	BasePrice      int         `json:"basePrice"`
	BestTimesToBuy []TimeToBuy `json:"bestTimesToBuy"`
}

// HasKnownBasePrice reports whether recovery succeeded for this item.
func (i Item) HasKnownBasePrice() bool {
	return i.BasePrice > 0
}

// Snapshot is a full per-identity view of the shop, valid for one unix hour.
type Snapshot struct {
	IdentityID          string   `json:"identityId"`
	Items               []Item   `json:"items"`
	Pinned              []string `json:"pinned,omitempty"`
	LastUpdatedUnixHour int64    `json:"lastUpdatedUnixHour"`
}

// Observation is one intake fact worth keeping: what price an item showed
// at an hour, and what base price was recovered from it.
type Observation struct {
	IdentityID    string
	ItemID        string
	Hour          int64
	ObservedPrice int
	BasePrice     int
}

// DiscountAlert announces an upcoming favorable purchase window for an item.
type DiscountAlert struct {
	IdentityID      string    `json:"identityId"`
	ItemID          string    `json:"itemId"`
	ItemName        string    `json:"itemName"`
	Time            time.Time `json:"time"`
	DiscountPercent float64   `json:"discountPercent"`
}
