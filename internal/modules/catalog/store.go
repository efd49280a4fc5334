// README: Catalog store backed by PostgreSQL.
package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"manitas/internal/types"
)

var ErrNotFound = errors.New("catalog: service not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListActive returns active services ordered by popularity descending.
// category narrows the result to one discipline when non-empty.
func (s *Store) ListActive(ctx context.Context, category string, limit int) ([]Entry, error) {
	const q = `
		SELECT id, name, category, price_type, min_price, max_price, popularity, active
		FROM services
		WHERE active = TRUE AND ($1 = '' OR category = $1)
		ORDER BY popularity DESC, name ASC
		LIMIT $2`

	rows, err := s.db.Query(ctx, q, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetByNameAndCategory looks up one active service by its exact name within a
// discipline. Returns ErrNotFound when no such active entry exists.
func (s *Store) GetByNameAndCategory(ctx context.Context, name, category string) (*Entry, error) {
	const q = `
		SELECT id, name, category, price_type, min_price, max_price, popularity, active
		FROM services
		WHERE active = TRUE AND LOWER(name) = LOWER($1) AND category = $2`

	row := s.db.QueryRow(ctx, q, name, category)
	e, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// IncrementPopularity bumps the selection counter for a service.
func (s *Store) IncrementPopularity(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `UPDATE services SET popularity = popularity + 1 WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	var maxPrice *int64
	err := row.Scan(&e.ID, &e.Name, &e.Category, &e.PriceType, &e.MinPrice, &maxPrice, &e.Popularity, &e.Active)
	if err != nil {
		return Entry{}, err
	}
	e.MaxPrice = maxPrice
	return e, nil
}
