// README: Request store backed by PostgreSQL with optimistic status updates.
package request

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"manitas/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, r *Request) error {
	var lat, lng *float64
	if r.Position != nil {
		lat, lng = &r.Position.Lat, &r.Position.Lng
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO service_requests (id, uid, service_id, descripcion, urgencia, status, lat, lng, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		string(r.ID), r.UID, string(r.ServiceID), r.Descripcion, string(r.Urgencia),
		string(r.Status), lat, lng, r.CreatedAt, r.UpdatedAt)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Request, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, uid, service_id, descripcion, urgencia, status, lat, lng, created_at, updated_at
		FROM service_requests
		WHERE id = $1`, string(id))

	var r Request
	var lat, lng *float64
	err := row.Scan(&r.ID, &r.UID, &r.ServiceID, &r.Descripcion, &r.Urgencia,
		&r.Status, &lat, &lng, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		r.Position = &types.Point{Lat: *lat, Lng: *lng}
	}
	return &r, nil
}

// UpdateStatus moves a request from one status to another. The WHERE clause
// carries the expected current status, so concurrent updates lose cleanly.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE service_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`,
		string(to), string(id), string(from))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
