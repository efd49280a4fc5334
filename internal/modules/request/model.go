// README: Service-request aggregate and status flow.
package request

import (
	"time"

	"manitas/internal/modules/intent"
	"manitas/internal/types"
)

type Status string

const (
	StatusPending    Status = "pendiente"
	StatusQuoted     Status = "cotizada"
	StatusAccepted   Status = "aceptada"
	StatusInProgress Status = "en_progreso"
	StatusCompleted  Status = "completada"
	StatusCancelled  Status = "cancelada"
)

// Request is one client job request, usually pre-filled from an intent
// analysis result.
type Request struct {
	ID          types.ID       `json:"id"`
	UID         string         `json:"uid"`
	ServiceID   types.ID       `json:"service_id"`
	Descripcion string         `json:"descripcion"`
	Urgencia    intent.Urgency `json:"urgencia"`
	Status      Status         `json:"status"`
	Position    *types.Point   `json:"position,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// AllowedTransitions represents the request state flow as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending:    {StatusQuoted, StatusCancelled},
	StatusQuoted:     {StatusAccepted, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
