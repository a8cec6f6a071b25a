package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/KonradClos/FoodtruckPricing/internal/pricing"
)

// ListRecipes returns all recipes with their ingredient lines, ordered by name.
func (s *Store) ListRecipes() ([]pricing.Recipe, error) {
	rows, err := s.db.Query(`
		SELECT id, name, vat_category, loss_percent, packaging_set_id,
		       target_margin, market_price_gross, sell_price_gross
		FROM recipes
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]pricing.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	for i := range recipes {
		lines, err := s.recipeLines(recipes[i].ID)
		if err != nil {
			return nil, err
		}
		recipes[i].Ingredients = lines
	}
	return recipes, nil
}

// GetRecipe returns one recipe with its ingredient lines.
func (s *Store) GetRecipe(id string) (pricing.Recipe, error) {
	row := s.db.QueryRow(`
		SELECT id, name, vat_category, loss_percent, packaging_set_id,
		       target_margin, market_price_gross, sell_price_gross
		FROM recipes
		WHERE id = ?
	`, id)

	recipe, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.Recipe{}, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return pricing.Recipe{}, err
	}

	lines, err := s.recipeLines(id)
	if err != nil {
		return pricing.Recipe{}, err
	}
	recipe.Ingredients = lines
	return recipe, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (pricing.Recipe, error) {
	var (
		recipe   pricing.Recipe
		category string
		loss     sql.NullFloat64
	)
	err := row.Scan(
		&recipe.ID,
		&recipe.Name,
		&category,
		&loss,
		&recipe.PackagingSetID,
		&recipe.Pricing.TargetMargin,
		&recipe.Pricing.MarketPriceGross,
		&recipe.Pricing.SellPriceGross,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.Recipe{}, err
	}
	if err != nil {
		return pricing.Recipe{}, fmt.Errorf("scan recipe: %w", err)
	}

	recipe.VATCategory = pricing.VATCategory(category)
	if loss.Valid {
		v := loss.Float64
		recipe.LossPercent = &v
	}
	return recipe, nil
}

func (s *Store) recipeLines(recipeID string) ([]pricing.IngredientLine, error) {
	rows, err := s.db.Query(`
		SELECT ingredient_id, qty, unit
		FROM recipe_ingredients
		WHERE recipe_id = ?
		ORDER BY position
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe lines: %w", err)
	}
	defer rows.Close()

	lines := make([]pricing.IngredientLine, 0)
	for rows.Next() {
		var line pricing.IngredientLine
		var unit string
		if err := rows.Scan(&line.IngredientID, &line.Qty, &unit); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		line.Unit = pricing.Unit(unit)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe lines: %w", err)
	}
	return lines, nil
}

// SaveRecipe inserts or replaces a recipe and its ordered ingredient lines.
func (s *Store) SaveRecipe(recipe pricing.Recipe) (string, error) {
	id := recipe.ID
	if id == "" {
		id = newID("rec")
	}

	var loss any
	if recipe.LossPercent != nil {
		loss = *recipe.LossPercent
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin recipe save: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO recipes (id, name, vat_category, loss_percent, packaging_set_id,
		                     target_margin, market_price_gross, sell_price_gross)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			vat_category = excluded.vat_category,
			loss_percent = excluded.loss_percent,
			packaging_set_id = excluded.packaging_set_id,
			target_margin = excluded.target_margin,
			market_price_gross = excluded.market_price_gross,
			sell_price_gross = excluded.sell_price_gross,
			updated_at = CURRENT_TIMESTAMP
	`,
		id,
		recipe.Name,
		string(recipe.VATCategory),
		loss,
		recipe.PackagingSetID,
		recipe.Pricing.TargetMargin,
		recipe.Pricing.MarketPriceGross,
		recipe.Pricing.SellPriceGross,
	); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("upsert recipe: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, id); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("clear recipe lines: %w", err)
	}
	for i, line := range recipe.Ingredients {
		if _, err := tx.Exec(`
			INSERT INTO recipe_ingredients (recipe_id, position, ingredient_id, qty, unit)
			VALUES (?, ?, ?, ?, ?)
		`, id, i, line.IngredientID, line.Qty, string(line.Unit)); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("insert recipe line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit recipe save: %w", err)
	}
	return id, nil
}

// DeleteRecipe removes a recipe and its lines.
func (s *Store) DeleteRecipe(id string) error {
	res, err := s.db.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return requireAffected(res, "recipe "+id)
}
