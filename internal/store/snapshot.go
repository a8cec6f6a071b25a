package store

import (
	"fmt"

	"github.com/KonradClos/FoodtruckPricing/internal/pricing"
)

// ReplaceAll swaps the entire persisted snapshot and recipe list for the
// provided one, in a single transaction. Used by the JSON import; the
// previous state is not kept.
func (s *Store) ReplaceAll(snap pricing.Snapshot, recipes []pricing.Recipe) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot import: %w", err)
	}

	for _, table := range []string{
		"recipe_ingredients", "recipes",
		"packaging_set_items", "packaging_sets", "packaging_items",
		"ingredients", "custom_fixed_costs", "fixed_costs",
	} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, ing := range snap.Catalog.Ingredients {
		if _, err := tx.Exec(`
			INSERT INTO ingredients (id, name, base_unit, price_per_base_unit, supplier, notes)
			VALUES (?, ?, ?, ?, ?, ?)
		`, ing.ID, ing.Name, string(ing.BaseUnit), ing.PricePerBaseUnit, ing.Supplier, ing.Notes); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import ingredient %q: %w", ing.ID, err)
		}
	}

	for _, item := range snap.Catalog.PackagingItems {
		if _, err := tx.Exec(`
			INSERT INTO packaging_items (id, name, price_per_unit)
			VALUES (?, ?, ?)
		`, item.ID, item.Name, item.PricePerUnit); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import packaging item %q: %w", item.ID, err)
		}
	}

	for _, set := range snap.Catalog.PackagingSets {
		if _, err := tx.Exec(`INSERT INTO packaging_sets (id, name) VALUES (?, ?)`, set.ID, set.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import packaging set %q: %w", set.ID, err)
		}
		for _, line := range set.Lines {
			if _, err := tx.Exec(`
				INSERT INTO packaging_set_items (set_id, packaging_item_id, qty)
				VALUES (?, ?, ?)
			`, set.ID, line.PackagingItemID, line.Qty); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("import packaging set line: %w", err)
			}
		}
	}

	for bucket, amount := range snap.CostModel.FixedCostsMonthly.Standard {
		if _, err := tx.Exec(`INSERT INTO fixed_costs (bucket, amount) VALUES (?, ?)`, bucket, amount); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import fixed cost %q: %w", bucket, err)
		}
	}
	for _, line := range snap.CostModel.FixedCostsMonthly.Custom {
		if _, err := tx.Exec(`INSERT INTO custom_fixed_costs (label, amount) VALUES (?, ?)`, line.Label, line.Amount); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import custom fixed cost %q: %w", line.Label, err)
		}
	}

	var override any
	if snap.CostModel.VolumeAssumptions.OverrideMonthlyPortions != nil {
		override = *snap.CostModel.VolumeAssumptions.OverrideMonthlyPortions
	}
	if _, err := tx.Exec(`
		UPDATE settings
		SET
			vat_food = ?,
			vat_drink = ?,
			rounding_step = ?,
			default_vat_category = ?,
			default_packaging_set_id = ?,
			default_loss_percent = ?,
			open_days_per_month = ?,
			portions_per_open_day = ?,
			override_monthly_portions = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		snap.Settings.VATRates.Food,
		snap.Settings.VATRates.Drink,
		snap.Settings.Rounding.Step,
		string(snap.Settings.Defaults.VATCategory),
		snap.Settings.Defaults.PackagingSetID,
		snap.Settings.Defaults.LossPercent,
		snap.CostModel.VolumeAssumptions.OpenDaysPerMonth,
		snap.CostModel.VolumeAssumptions.ExpectedPortionsPerOpenDay,
		override,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("import settings: %w", err)
	}

	for _, recipe := range recipes {
		var loss any
		if recipe.LossPercent != nil {
			loss = *recipe.LossPercent
		}
		if _, err := tx.Exec(`
			INSERT INTO recipes (id, name, vat_category, loss_percent, packaging_set_id,
			                     target_margin, market_price_gross, sell_price_gross)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			recipe.ID,
			recipe.Name,
			string(recipe.VATCategory),
			loss,
			recipe.PackagingSetID,
			recipe.Pricing.TargetMargin,
			recipe.Pricing.MarketPriceGross,
			recipe.Pricing.SellPriceGross,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import recipe %q: %w", recipe.ID, err)
		}
		for i, line := range recipe.Ingredients {
			if _, err := tx.Exec(`
				INSERT INTO recipe_ingredients (recipe_id, position, ingredient_id, qty, unit)
				VALUES (?, ?, ?, ?, ?)
			`, recipe.ID, i, line.IngredientID, line.Qty, string(line.Unit)); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("import recipe line: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot import: %w", err)
	}
	return nil
}
