// README: Request service; creation from intent pre-fill and status transitions.
package request

import (
	"context"
	"errors"
	"strings"
	"time"

	"manitas/internal/modules/intent"
	"manitas/internal/types"
)

var (
	ErrNotFound     = errors.New("request: not found")
	ErrBadRequest   = errors.New("request: bad request")
	ErrInvalidState = errors.New("request: invalid state transition")
	ErrConflict     = errors.New("request: state conflict")
)

// requestStore keeps the service testable without Postgres.
type requestStore interface {
	Create(ctx context.Context, r *Request) error
	Get(ctx context.Context, id types.ID) (*Request, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error)
}

type Service struct {
	store requestStore
}

func NewService(store requestStore) *Service {
	return &Service{store: store}
}

// CreateCommand carries the intent pre-fill plus the resolved location.
type CreateCommand struct {
	UID         string
	ServiceID   types.ID
	Descripcion string
	Urgencia    intent.Urgency
	Position    *types.Point
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if strings.TrimSpace(cmd.UID) == "" || cmd.ServiceID == "" {
		return "", ErrBadRequest
	}
	now := time.Now().UTC()
	r := &Request{
		ID:          types.NewID(),
		UID:         cmd.UID,
		ServiceID:   cmd.ServiceID,
		Descripcion: strings.TrimSpace(cmd.Descripcion),
		Urgencia:    intent.ParseUrgency(string(cmd.Urgencia)),
		Status:      StatusPending,
		Position:    cmd.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, r); err != nil {
		return "", err
	}
	return r.ID, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Request, error) {
	return s.store.Get(ctx, id)
}

// Transition applies one status change, enforcing the state flow.
func (s *Service) Transition(ctx context.Context, id types.ID, to Status) error {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(r.Status, to) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, id, r.Status, to)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

func (s *Service) Cancel(ctx context.Context, id types.ID) error {
	return s.Transition(ctx, id, StatusCancelled)
}
