// README: Location store; Redis for last-known positions, Postgres for the address book.
package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"manitas/internal/types"
)

var ErrNotFound = errors.New("location: not found")

const (
	lastKnownKeyPrefix = "location:last:%s"
	lastKnownTTL       = 24 * time.Hour
)

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redisClient *redis.Client) *Store {
	return &Store{db: db, redis: redisClient}
}

// SetLastKnown caches a user's most recent position.
func (s *Store) SetLastKnown(ctx context.Context, uid string, p types.Point) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, lastKnownKey(uid), raw, lastKnownTTL).Err()
}

// GetLastKnown returns the cached position, falling back to the newest
// geocoded address in Postgres when the cache is cold.
func (s *Store) GetLastKnown(ctx context.Context, uid string) (types.Point, error) {
	raw, err := s.redis.Get(ctx, lastKnownKey(uid)).Result()
	if err == nil {
		var p types.Point
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return p, nil
		}
	} else if err != redis.Nil {
		return types.Point{}, err
	}

	row := s.db.QueryRow(ctx, `
		SELECT lat, lng FROM addresses
		WHERE uid = $1 AND lat IS NOT NULL
		ORDER BY created_at DESC
		LIMIT 1`, uid)

	var p types.Point
	err = row.Scan(&p.Lat, &p.Lng)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Point{}, ErrNotFound
	}
	if err != nil {
		return types.Point{}, err
	}
	return p, nil
}

// SaveAddress inserts one address-book entry.
func (s *Store) SaveAddress(ctx context.Context, a Address) error {
	var lat, lng *float64
	if a.Position != nil {
		lat, lng = &a.Position.Lat, &a.Position.Lng
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO addresses (id, uid, label, address_text, lat, lng, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(a.ID), a.UID, a.Label, a.Text, lat, lng, a.CreatedAt)
	return err
}

// ListAddresses returns a user's address book, newest first.
func (s *Store) ListAddresses(ctx context.Context, uid string) ([]Address, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, uid, label, address_text, lat, lng, created_at
		FROM addresses
		WHERE uid = $1
		ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		var a Address
		var lat, lng *float64
		if err := rows.Scan(&a.ID, &a.UID, &a.Label, &a.Text, &lat, &lng, &a.CreatedAt); err != nil {
			return nil, err
		}
		if lat != nil && lng != nil {
			a.Position = &types.Point{Lat: *lat, Lng: *lng}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAddress removes one entry; deleting a missing entry is ErrNotFound.
func (s *Store) DeleteAddress(ctx context.Context, uid string, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND uid = $2`, string(id), uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func lastKnownKey(uid string) string {
	return fmt.Sprintf(lastKnownKeyPrefix, uid)
}
