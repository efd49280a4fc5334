// README: Catalog entry model; one sellable home-service definition.
package catalog

import (
	"manitas/internal/types"
)

// PriceType distinguishes fixed-price services from quoted ones.
type PriceType string

const (
	PriceFixed    PriceType = "fijo"
	PriceVariable PriceType = "variable"
)

// Entry is one active service in the marketplace catalog.
// Only entries with Active = true are eligible for intent matching.
type Entry struct {
	ID         types.ID  `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	PriceType  PriceType `json:"price_type"`
	MinPrice   int64     `json:"min_price"`
	MaxPrice   *int64    `json:"max_price,omitempty"`
	Popularity int       `json:"popularity"`
	Active     bool      `json:"active"`
}

// PriceRange returns the advertised price band for display.
func (e Entry) PriceRange() types.PriceRange {
	return types.PriceRange{Min: e.MinPrice, Max: e.MaxPrice, Currency: "MXN"}
}
