package pricing

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
)

// Draw returns the shop's deterministic hourly random value for one
// (identity, item, hour) combination, uniform-ish over [0, 1).
//
// The shop seeds SHA-256 with "identity-item-hour" and scales the first
// 32 bits of the digest. Reproducing that digest bit-for-bit is what makes
// base price recovery and forward simulation possible, so the seed format
// must not change.
func Draw(identityID, itemID string, hour int64) float64 {
	combined := fmt.Sprintf("%s-%s-%d", strings.TrimSpace(identityID), itemID, hour)
	sum := sha256.Sum256([]byte(combined))
	return float64(binary.BigEndian.Uint32(sum[:4])) / float64(0xffffffff)
}
