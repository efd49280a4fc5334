// README: DB-backed catalog store tests; skipped unless MANITAS_TEST_DSN is set.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"manitas/internal/types"
)

func testStore(t *testing.T) (*Store, *pgxpool.Pool, string) {
	t.Helper()

	dsn := os.Getenv("MANITAS_TEST_DSN")
	if dsn == "" {
		t.Skip("MANITAS_TEST_DSN not set; skipping DB-backed store tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS services (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			category    TEXT NOT NULL,
			price_type  TEXT NOT NULL DEFAULT 'fijo',
			min_price   BIGINT NOT NULL DEFAULT 0,
			max_price   BIGINT,
			popularity  BIGINT NOT NULL DEFAULT 0,
			active      BOOLEAN NOT NULL DEFAULT TRUE,
			UNIQUE (name, category)
		)`); err != nil {
		t.Fatalf("ensure services table: %v", err)
	}

	// Unique category per run keeps rows isolated from concurrent tests.
	category := fmt.Sprintf("cat%d", time.Now().UnixNano())
	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = db.Exec(cleanupCtx, "DELETE FROM services WHERE category = $1", category)
	})

	return NewStore(db), db, category
}

func insertService(t *testing.T, db *pgxpool.Pool, id, name, category string, popularity int64, active bool) {
	t.Helper()
	_, err := db.Exec(context.Background(), `
		INSERT INTO services (id, name, category, price_type, min_price, popularity, active)
		VALUES ($1, $2, $3, 'fijo', 100, $4, $5)`,
		id, name, category, popularity, active)
	if err != nil {
		t.Fatalf("insert %s: %v", id, err)
	}
}

func TestStoreListActive(t *testing.T) {
	store, db, category := testStore(t)
	ctx := context.Background()

	insertService(t, db, category+"-a", "Servicio A "+category, category, 10, true)
	insertService(t, db, category+"-b", "Servicio B "+category, category, 30, true)
	insertService(t, db, category+"-c", "Servicio C "+category, category, 20, false)

	entries, err := store.ListActive(ctx, category, 10)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 active entries, got %d", len(entries))
	}
	if entries[0].ID != types.ID(category+"-b") {
		t.Errorf("expected popularity-desc order, first = %s", entries[0].ID)
	}
	for _, e := range entries {
		if !e.Active {
			t.Errorf("inactive entry %s surfaced", e.ID)
		}
	}
}

func TestStoreGetByNameAndCategory(t *testing.T) {
	store, db, category := testStore(t)
	ctx := context.Background()

	insertService(t, db, category+"-a", "Reparación Especial "+category, category, 10, true)

	// Lookup is case-insensitive on name.
	e, err := store.GetByNameAndCategory(ctx, "reparación especial "+category, category)
	if err != nil {
		t.Fatalf("GetByNameAndCategory: %v", err)
	}
	if e.ID != types.ID(category+"-a") {
		t.Errorf("got %s", e.ID)
	}

	if _, err := store.GetByNameAndCategory(ctx, "No Existe", category); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreIncrementPopularity(t *testing.T) {
	store, db, category := testStore(t)
	ctx := context.Background()

	id := types.ID(category + "-a")
	insertService(t, db, string(id), "Servicio A "+category, category, 5, true)

	if err := store.IncrementPopularity(ctx, id); err != nil {
		t.Fatalf("IncrementPopularity: %v", err)
	}

	var pop int64
	if err := db.QueryRow(ctx, "SELECT popularity FROM services WHERE id = $1", string(id)).Scan(&pop); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if pop != 6 {
		t.Errorf("popularity = %d, want 6", pop)
	}

	if err := store.IncrementPopularity(ctx, "missing-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing id, got %v", err)
	}
}
