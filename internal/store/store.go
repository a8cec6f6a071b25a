// Package store persists the calculation snapshot in SQLite and hands the
// engine immutable copies of it. Writes are last-write-wins; there is no
// versioning beyond the migration schema.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/KonradClos/FoodtruckPricing/internal/pricing"
)

// ErrNotFound is returned when an update, delete or lookup targets an entity
// that does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the SQLite handle with snapshot and catalog operations.
type Store struct {
	db *sql.DB
}

// New returns a Store backed by the given database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// LoadSnapshot assembles the full immutable snapshot read by engine calls.
func (s *Store) LoadSnapshot() (pricing.Snapshot, error) {
	settings, vol, err := s.settingsRow()
	if err != nil {
		return pricing.Snapshot{}, err
	}

	fixed, err := s.fixedCostsMonthly()
	if err != nil {
		return pricing.Snapshot{}, err
	}

	ingredients, err := s.ListIngredients()
	if err != nil {
		return pricing.Snapshot{}, err
	}
	items, err := s.ListPackagingItems()
	if err != nil {
		return pricing.Snapshot{}, err
	}
	sets, err := s.ListPackagingSets()
	if err != nil {
		return pricing.Snapshot{}, err
	}

	return pricing.Snapshot{
		Settings: settings,
		CostModel: pricing.CostModel{
			FixedCostsMonthly: fixed,
			VolumeAssumptions: vol,
		},
		Catalog: pricing.Catalog{
			Ingredients:    ingredients,
			PackagingItems: items,
			PackagingSets:  sets,
		},
	}, nil
}

func (s *Store) settingsRow() (pricing.Settings, pricing.VolumeAssumptions, error) {
	var (
		settings pricing.Settings
		vol      pricing.VolumeAssumptions
		override sql.NullFloat64
		category string
	)
	err := s.db.QueryRow(`
		SELECT vat_food, vat_drink, rounding_step, default_vat_category,
		       default_packaging_set_id, default_loss_percent,
		       open_days_per_month, portions_per_open_day, override_monthly_portions
		FROM settings
		WHERE id = 1
	`).Scan(
		&settings.VATRates.Food,
		&settings.VATRates.Drink,
		&settings.Rounding.Step,
		&category,
		&settings.Defaults.PackagingSetID,
		&settings.Defaults.LossPercent,
		&vol.OpenDaysPerMonth,
		&vol.ExpectedPortionsPerOpenDay,
		&override,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.Settings{}, pricing.VolumeAssumptions{}, fmt.Errorf("settings singleton: %w", ErrNotFound)
	}
	if err != nil {
		return pricing.Settings{}, pricing.VolumeAssumptions{}, fmt.Errorf("query settings: %w", err)
	}

	settings.Defaults.VATCategory = pricing.VATCategory(category)
	if override.Valid {
		v := override.Float64
		vol.OverrideMonthlyPortions = &v
	}
	return settings, vol, nil
}

// Settings returns the settings singleton.
func (s *Store) Settings() (pricing.Settings, error) {
	settings, _, err := s.settingsRow()
	return settings, err
}

// UpdateSettings overwrites the settings singleton.
func (s *Store) UpdateSettings(settings pricing.Settings) error {
	res, err := s.db.Exec(`
		UPDATE settings
		SET
			vat_food = ?,
			vat_drink = ?,
			rounding_step = ?,
			default_vat_category = ?,
			default_packaging_set_id = ?,
			default_loss_percent = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		settings.VATRates.Food,
		settings.VATRates.Drink,
		settings.Rounding.Step,
		string(settings.Defaults.VATCategory),
		settings.Defaults.PackagingSetID,
		settings.Defaults.LossPercent,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return requireAffected(res, "settings singleton")
}

// CostModel returns the monthly fixed costs and volume assumptions.
func (s *Store) CostModel() (pricing.CostModel, error) {
	_, vol, err := s.settingsRow()
	if err != nil {
		return pricing.CostModel{}, err
	}
	fixed, err := s.fixedCostsMonthly()
	if err != nil {
		return pricing.CostModel{}, err
	}
	return pricing.CostModel{FixedCostsMonthly: fixed, VolumeAssumptions: vol}, nil
}

func (s *Store) fixedCostsMonthly() (pricing.FixedCostsMonthly, error) {
	rows, err := s.db.Query(`SELECT bucket, amount FROM fixed_costs`)
	if err != nil {
		return pricing.FixedCostsMonthly{}, fmt.Errorf("query fixed costs: %w", err)
	}
	defer rows.Close()

	fixed := pricing.FixedCostsMonthly{Standard: make(map[string]float64)}
	for rows.Next() {
		var bucket string
		var amount float64
		if err := rows.Scan(&bucket, &amount); err != nil {
			return pricing.FixedCostsMonthly{}, fmt.Errorf("scan fixed cost: %w", err)
		}
		fixed.Standard[bucket] = amount
	}
	if err := rows.Err(); err != nil {
		return pricing.FixedCostsMonthly{}, fmt.Errorf("iterate fixed costs: %w", err)
	}

	custom, err := s.db.Query(`SELECT label, amount FROM custom_fixed_costs ORDER BY id`)
	if err != nil {
		return pricing.FixedCostsMonthly{}, fmt.Errorf("query custom fixed costs: %w", err)
	}
	defer custom.Close()

	for custom.Next() {
		var line pricing.CustomFixedCost
		if err := custom.Scan(&line.Label, &line.Amount); err != nil {
			return pricing.FixedCostsMonthly{}, fmt.Errorf("scan custom fixed cost: %w", err)
		}
		fixed.Custom = append(fixed.Custom, line)
	}
	if err := custom.Err(); err != nil {
		return pricing.FixedCostsMonthly{}, fmt.Errorf("iterate custom fixed costs: %w", err)
	}

	return fixed, nil
}

// UpdateCostModel replaces the fixed-cost buckets, custom lines and volume
// assumptions in one transaction.
func (s *Store) UpdateCostModel(cm pricing.CostModel) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cost model update: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM fixed_costs`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear fixed costs: %w", err)
	}
	for bucket, amount := range cm.FixedCostsMonthly.Standard {
		if _, err := tx.Exec(`INSERT INTO fixed_costs (bucket, amount) VALUES (?, ?)`, bucket, amount); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert fixed cost %q: %w", bucket, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM custom_fixed_costs`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear custom fixed costs: %w", err)
	}
	for _, line := range cm.FixedCostsMonthly.Custom {
		if _, err := tx.Exec(`INSERT INTO custom_fixed_costs (label, amount) VALUES (?, ?)`, line.Label, line.Amount); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert custom fixed cost %q: %w", line.Label, err)
		}
	}

	var override any
	if cm.VolumeAssumptions.OverrideMonthlyPortions != nil {
		override = *cm.VolumeAssumptions.OverrideMonthlyPortions
	}
	if _, err := tx.Exec(`
		UPDATE settings
		SET
			open_days_per_month = ?,
			portions_per_open_day = ?,
			override_monthly_portions = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, cm.VolumeAssumptions.OpenDaysPerMonth, cm.VolumeAssumptions.ExpectedPortionsPerOpenDay, override); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update volume assumptions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cost model update: %w", err)
	}
	return nil
}

func requireAffected(res sql.Result, what string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", what, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
