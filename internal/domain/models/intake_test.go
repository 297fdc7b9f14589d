package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseIntakeValid(t *testing.T) {
	raw := json.RawMessage(`{"items":[
		{"id":"a","name":"Alpha","description":"first","image":"a.png","price":42},
		{"id":"b","name":"Beta","price":0}
	]}`)

	items, err := ParseIntake(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "a" || items[0].Price != 42 || items[0].Name != "Alpha" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].Price != 0 {
		t.Fatalf("zero price should be accepted, got %d", items[1].Price)
	}
	for _, it := range items {
		if it.BasePrice != BasePriceUnknown {
			t.Fatalf("parsed item %q should start with unknown base, got %d", it.ID, it.BasePrice)
		}
	}
}

func TestParseIntakeMalformed(t *testing.T) {
	cases := []string{
		``,
		`null`,
		`not json`,
		`[]`,
		`{}`,
		`{"items":null}`,
		`{"items":{}}`,
		`{"items":[]}`,
		`{"items":[{"name":"no id","price":5}]}`,
		`{"items":[{"id":"a"}]}`,
		`{"items":[{"id":"a","price":-1}]}`,
		`{"items":[{"id":"a","price":"5"}]}`,
	}
	for _, raw := range cases {
		if _, err := ParseIntake(json.RawMessage(raw)); !errors.Is(err, ErrMalformedIntake) {
			t.Fatalf("payload %q: expected malformed error, got %v", raw, err)
		}
	}
}
