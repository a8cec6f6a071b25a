package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/KonradClos/FoodtruckPricing/internal/db"
	"github.com/KonradClos/FoodtruckPricing/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	cfg := Config{
		AdminEmail:    "admin@foodtruck.local",
		AdminPassword: "12345",
	}

	// 1 admin + 1 settings row + 6 fixed-cost buckets + 1 packaging set.
	const firstRunInserts = 9

	for i := 0; i < 10; i++ {
		stats, err := Run(database, cfg)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != firstRunInserts {
				t.Fatalf("expected %d inserts in first run, got %d", firstRunInserts, stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM users WHERE email = ?`, "admin@foodtruck.local", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM packaging_sets WHERE id = ?`, DefaultPackagingSetID, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM fixed_costs WHERE bucket = ?`, "rent", 1)

	var step float64
	if err := database.QueryRow(`SELECT rounding_step FROM settings WHERE id = 1`).Scan(&step); err != nil {
		t.Fatalf("query settings: %v", err)
	}
	if step != 0.10 {
		t.Fatalf("expected default rounding step 0.10, got %v", step)
	}
}

func TestRunWithoutAdminCredentialsSkipsUser(t *testing.T) {
	t.Parallel()

	database, err := db.Open(filepath.Join(t.TempDir(), "seed-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	stats, err := Run(database, Config{})
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Inserts != 8 {
		t.Fatalf("expected 8 inserts without admin, got %d", stats.Inserts)
	}

	assertCount(t, database, `SELECT COUNT(*) FROM users WHERE 1 = ?`, 1, 0)
}

func assertCount(t *testing.T, db *sql.DB, query string, arg any, want int) {
	t.Helper()

	var got int
	if err := db.QueryRow(query, arg).Scan(&got); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if got != want {
		t.Fatalf("count = %d, want %d (query %q)", got, want, query)
	}
}
