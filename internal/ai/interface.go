package ai

import (
	"context"
)

// ServiceOption is one catalog entry offered to the model as a candidate.
type ServiceOption struct {
	Name       string
	Category   string
	PriceLabel string
	Popularity int
}

// IntentModel is the contract for the hosted generative model that maps a
// free-text problem description onto one of the supplied catalog services.
// Implementations must return an error rather than a partially filled
// Classification when the response cannot be parsed.
type IntentModel interface {
	ClassifyService(ctx context.Context, description string, services []ServiceOption) (*Classification, error)
}
