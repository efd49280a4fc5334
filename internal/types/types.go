// README: Shared value objects used across modules.
package types

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ID identifies an entity (service, request, user profile).
type ID string

// NewID returns a random 32-char hex identifier.
func NewID() ID {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return ID(hex.EncodeToString(b))
}

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PriceRange is the advertised price band for a catalog service.
// Max is nil for open-ended ("desde $X") pricing.
type PriceRange struct {
	Min      int64  `json:"min"`
	Max      *int64 `json:"max,omitempty"`
	Currency string `json:"currency"`
}

// Label renders the range for display, e.g. "$300 - $800 MXN" or "Desde $300 MXN".
func (p PriceRange) Label() string {
	if p.Max == nil {
		return fmt.Sprintf("Desde $%d %s", p.Min, p.Currency)
	}
	return fmt.Sprintf("$%d - $%d %s", p.Min, *p.Max, p.Currency)
}
