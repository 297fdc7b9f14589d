package models

import "encoding/json"

// Requests for the shop HTTP endpoints. Defined in domain for consistency and reuse.

type SnapshotBuildRequest struct {
	IdentityID string          `json:"identityId" validate:"required"`
	Payload    json.RawMessage `json:"payload" validate:"required"`
	Pinned     []string        `json:"pinned"`
}

type SnapshotGetRequest struct {
	IdentityID string `query:"identity" json:"identity" validate:"required"`
}

type ScheduleRequest struct {
	IdentityID string `query:"identity" json:"identity" validate:"required"`
	ItemID     string `query:"item" json:"item" validate:"required"`
	FromHour   int64  `query:"from" json:"from"`
	ToHour     int64  `query:"to" json:"to"`
	Limit      int    `query:"limit" json:"limit" default:"0" validate:"gte=0,lte=10000"`
}

type PriceRequest struct {
	IdentityID string `query:"identity" json:"identity" validate:"required"`
	ItemID     string `query:"item" json:"item" validate:"required"`
	BasePrice  int    `query:"base" json:"base" validate:"gte=0"`
	Hour       int64  `query:"hour" json:"hour"`
}
