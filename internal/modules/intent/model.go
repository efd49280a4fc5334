// README: Intent pipeline result contract and tier error taxonomy.
package intent

import (
	"errors"

	"manitas/internal/modules/catalog"
)

// Urgency is the derived urgency tier of a problem description.
type Urgency string

const (
	UrgencyAlta  Urgency = "alta"
	UrgencyMedia Urgency = "media"
	UrgencyBaja  Urgency = "baja"
)

// ParseUrgency maps a free-form urgency string onto a tier, defaulting to
// media for anything unrecognised.
func ParseUrgency(s string) Urgency {
	switch Urgency(s) {
	case UrgencyAlta, UrgencyMedia, UrgencyBaja:
		return Urgency(s)
	default:
		return UrgencyMedia
	}
}

// PreFilledData carries the fields a service-request form can be pre-filled
// with. JSON keys match the client form field names.
type PreFilledData struct {
	Servicio    string  `json:"servicio,omitempty"`
	Categoria   string  `json:"categoria,omitempty"`
	Descripcion string  `json:"descripcion,omitempty"`
	Urgencia    Urgency `json:"urgencia,omitempty"`
	RangoPrecio string  `json:"rango_precio,omitempty"`
}

// IntentResult is the pipeline's output contract. DetectedService is nil when
// no confident match exists; in that case Confidence is 0 and Reasoning
// explains why. Callers detect "no match" through these fields, never through
// an error.
type IntentResult struct {
	DetectedService *catalog.Entry  `json:"detected_service"`
	Alternatives    []catalog.Entry `json:"alternatives"`
	Confidence      float64         `json:"confidence"`
	Reasoning       string          `json:"reasoning"`
	PreFilled       PreFilledData   `json:"pre_filled_data"`
}

// Tier errors. None of these ever escape the orchestrator; they drive the
// fallback chain and diagnostics logging only.
var (
	// ErrRemoteModel covers every remote-model tier failure: missing
	// credential, empty catalog, transport error, unparseable answer, or an
	// answer that cannot be resolved against the catalog.
	ErrRemoteModel = errors.New("intent: remote model classification failed")

	// ErrMediationTimeout is returned when the mediation API exceeds its
	// hard 5-second deadline.
	ErrMediationTimeout = errors.New("intent: mediation api timed out")

	// ErrMediationStatus is returned on a non-success mediation HTTP status.
	ErrMediationStatus = errors.New("intent: mediation api returned error status")

	// ErrMediationInvalid is returned when the mediation API answered at the
	// transport level but carried no usable detected service.
	ErrMediationInvalid = errors.New("intent: mediation api returned no detected service")
)

// newResult assembles a success result, keeping the invariant that the
// pre-filled service name mirrors the detected entry.
func newResult(detected *catalog.Entry, alternatives []catalog.Entry, confidence float64, reasoning, description string, urgency Urgency) IntentResult {
	res := IntentResult{
		DetectedService: detected,
		Alternatives:    alternatives,
		Confidence:      confidence,
		Reasoning:       reasoning,
		PreFilled: PreFilledData{
			Descripcion: description,
			Urgencia:    urgency,
		},
	}
	if detected != nil {
		res.PreFilled.Servicio = detected.Name
		res.PreFilled.Categoria = detected.Category
		res.PreFilled.RangoPrecio = detected.PriceRange().Label()
	}
	return res
}

// noMatchResult is the negative-result shape shared by the terminal failure
// modes: nil service, zero confidence, explanatory reasoning.
func noMatchResult(reasoning, description string, urgency Urgency) IntentResult {
	return IntentResult{
		Confidence: 0,
		Reasoning:  reasoning,
		PreFilled: PreFilledData{
			Descripcion: description,
			Urgencia:    urgency,
		},
	}
}
