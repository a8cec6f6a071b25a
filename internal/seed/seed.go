// Package seed installs the baseline data a fresh database needs before the
// first calculation: the admin user, the settings singleton with the stock
// defaults, the standard fixed-cost buckets and the default packaging set.
package seed

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
)

const (
	// DefaultPackagingSetID is the well-known empty packaging set that
	// always exists and may be referenced by recipe defaults.
	DefaultPackagingSetID   = "pack_default"
	defaultPackagingSetName = "Standard To-Go"
)

// StandardFixedCostBuckets are the named monthly fixed-cost positions every
// installation starts with, all at zero.
var StandardFixedCostBuckets = []string{
	"rent",
	"insurance",
	"phoneInternet",
	"equipmentLeasing",
	"accounting",
	"other",
}

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureSettings(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureFixedCostBuckets(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureDefaultPackagingSet(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	sum := sha256.Sum256([]byte(password))
	if _, err := tx.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, hex.EncodeToString(sum[:])); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureSettings(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM settings WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check settings existence: %w", err)
	}
	if exists {
		return nil
	}

	// Stock defaults: German food/drink VAT, 10 cent rounding, 2% loss,
	// 12 open days at 80 portions each.
	if _, err := tx.Exec(`
		INSERT INTO settings (
			id,
			vat_food,
			vat_drink,
			rounding_step,
			default_vat_category,
			default_packaging_set_id,
			default_loss_percent,
			open_days_per_month,
			portions_per_open_day
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
	`, 0.07, 0.19, 0.10, "food", DefaultPackagingSetID, 0.02, 12, 80); err != nil {
		return fmt.Errorf("insert settings singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureFixedCostBuckets(tx *sql.Tx, stats *Stats) error {
	for _, bucket := range StandardFixedCostBuckets {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM fixed_costs WHERE bucket = ? LIMIT 1)`, bucket).Scan(&exists); err != nil {
			return fmt.Errorf("check fixed cost bucket %q: %w", bucket, err)
		}
		if exists {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO fixed_costs (bucket, amount) VALUES (?, 0)`, bucket); err != nil {
			return fmt.Errorf("insert fixed cost bucket %q: %w", bucket, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureDefaultPackagingSet(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM packaging_sets WHERE id = ? LIMIT 1)`, DefaultPackagingSetID).Scan(&exists); err != nil {
		return fmt.Errorf("check default packaging set existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO packaging_sets (id, name)
		VALUES (?, ?)
	`, DefaultPackagingSetID, defaultPackagingSetName); err != nil {
		return fmt.Errorf("insert default packaging set: %w", err)
	}
	stats.Inserts++
	return nil
}
