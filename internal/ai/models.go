package ai

import "fmt"

// PriceEstimate is the model's guess at the price band for the job.
type PriceEstimate struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Classification is the structured answer the model must produce. The JSON
// keys match the schema embedded in the prompt; decoding is strict in the
// sense that Validate rejects any answer missing the required fields.
type Classification struct {
	ServiceName     string         `json:"service_name"`
	Discipline      string         `json:"discipline"`
	Confidence      *float64       `json:"confidence"`
	Reasoning       string         `json:"reasoning"`
	MatchedKeywords []string       `json:"matched_keywords"`
	Urgency         string         `json:"urgency"`
	PriceEstimate   *PriceEstimate `json:"price_estimate"`
	Alternatives    []string       `json:"alternatives"`
}

// DefaultConfidence is assumed when the model omits a confidence score.
// The self-reported score is otherwise trusted as-is.
const DefaultConfidence = 0.8

// Validate fails closed on answers missing the fields every caller needs.
func (c *Classification) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("classification missing service_name")
	}
	if c.Discipline == "" {
		return fmt.Errorf("classification missing discipline")
	}
	if c.Confidence != nil && (*c.Confidence < 0 || *c.Confidence > 1) {
		return fmt.Errorf("classification confidence %f out of range", *c.Confidence)
	}
	return nil
}

// EffectiveConfidence returns the self-reported score or the default.
func (c *Classification) EffectiveConfidence() float64 {
	if c.Confidence == nil {
		return DefaultConfidence
	}
	return *c.Confidence
}
