package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedIntake rejects a pasted shop payload that fails structural
// validation. Callers report it as a generic invalid response.
var ErrMalformedIntake = errors.New("invalid response")

type intakePayload struct {
	Items json.RawMessage `json:"items"`
}

type intakeItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       *int   `json:"price"`
}

// ParseIntake validates a raw pasted shop payload into items. The payload must
// be a JSON object with an "items" array; each entry needs an id and a
// non-negative integer price. Nothing past this boundary trusts payload shape.
func ParseIntake(raw json.RawMessage) ([]Item, error) {
	if len(raw) == 0 {
		return nil, ErrMalformedIntake
	}

	var payload intakePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedIntake, err)
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("%w: missing items", ErrMalformedIntake)
	}

	var entries []intakeItem
	if err := json.Unmarshal(payload.Items, &entries); err != nil {
		return nil, fmt.Errorf("%w: items is not an array", ErrMalformedIntake)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty items", ErrMalformedIntake)
	}

	items := make([]Item, 0, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: item %d has no id", ErrMalformedIntake, i)
		}
		if e.Price == nil || *e.Price < 0 {
			return nil, fmt.Errorf("%w: item %q has no valid price", ErrMalformedIntake, e.ID)
		}
		items = append(items, Item{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Image:       e.Image,
			Price:       *e.Price,
			BasePrice:   BasePriceUnknown,
		})
	}
	return items, nil
}
