// README: Location resolution models and the saved-address book.
package location

import (
	"time"

	"manitas/internal/types"
)

// Source tags where a resolved location came from, in fallback order.
type Source string

const (
	SourceDevice  Source = "device"
	SourceProfile Source = "profile"
	SourceDefault Source = "default"
)

// Resolved is the outcome of the fallback chain. InCoverage is advisory:
// out-of-coverage locations are flagged, never rejected.
type Resolved struct {
	Position   types.Point `json:"position"`
	Source     Source      `json:"source"`
	InCoverage bool        `json:"in_coverage"`
}

// Address is one saved address in a user's address book. Position is nil
// until the address text has been geocoded.
type Address struct {
	ID        types.ID     `json:"id"`
	UID       string       `json:"uid"`
	Label     string       `json:"label"`
	Text      string       `json:"text"`
	Position  *types.Point `json:"position,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
