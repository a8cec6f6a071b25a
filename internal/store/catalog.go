package store

import (
	"fmt"

	"github.com/KonradClos/FoodtruckPricing/internal/pricing"
)

// ListIngredients returns all catalog ingredients ordered by name.
func (s *Store) ListIngredients() ([]pricing.Ingredient, error) {
	rows, err := s.db.Query(`
		SELECT id, name, base_unit, price_per_base_unit, supplier, notes
		FROM ingredients
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := make([]pricing.Ingredient, 0)
	for rows.Next() {
		var ing pricing.Ingredient
		var baseUnit string
		if err := rows.Scan(&ing.ID, &ing.Name, &baseUnit, &ing.PricePerBaseUnit, &ing.Supplier, &ing.Notes); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ing.BaseUnit = pricing.Unit(baseUnit)
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredients: %w", err)
	}
	return ingredients, nil
}

// CreateIngredient inserts a new ingredient and returns its generated id.
func (s *Store) CreateIngredient(ing pricing.Ingredient) (string, error) {
	id := ing.ID
	if id == "" {
		id = newID("ing")
	}
	_, err := s.db.Exec(`
		INSERT INTO ingredients (id, name, base_unit, price_per_base_unit, supplier, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, ing.Name, string(ing.BaseUnit), ing.PricePerBaseUnit, ing.Supplier, ing.Notes)
	if err != nil {
		return "", fmt.Errorf("insert ingredient: %w", err)
	}
	return id, nil
}

// UpdateIngredient overwrites an existing ingredient.
func (s *Store) UpdateIngredient(ing pricing.Ingredient) error {
	res, err := s.db.Exec(`
		UPDATE ingredients
		SET
			name = ?,
			base_unit = ?,
			price_per_base_unit = ?,
			supplier = ?,
			notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, ing.Name, string(ing.BaseUnit), ing.PricePerBaseUnit, ing.Supplier, ing.Notes, ing.ID)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	return requireAffected(res, "ingredient "+ing.ID)
}

// DeleteIngredient removes an ingredient. Recipe lines referencing it are
// left dangling on purpose; the engine reports them when the recipe is next
// costed.
func (s *Store) DeleteIngredient(id string) error {
	res, err := s.db.Exec(`DELETE FROM ingredients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return requireAffected(res, "ingredient "+id)
}

// ListPackagingItems returns all packaging items ordered by name.
func (s *Store) ListPackagingItems() ([]pricing.PackagingItem, error) {
	rows, err := s.db.Query(`
		SELECT id, name, price_per_unit
		FROM packaging_items
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query packaging items: %w", err)
	}
	defer rows.Close()

	items := make([]pricing.PackagingItem, 0)
	for rows.Next() {
		var item pricing.PackagingItem
		if err := rows.Scan(&item.ID, &item.Name, &item.PricePerUnit); err != nil {
			return nil, fmt.Errorf("scan packaging item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate packaging items: %w", err)
	}
	return items, nil
}

// CreatePackagingItem inserts a packaging item and returns its id.
func (s *Store) CreatePackagingItem(item pricing.PackagingItem) (string, error) {
	id := item.ID
	if id == "" {
		id = newID("pi")
	}
	_, err := s.db.Exec(`
		INSERT INTO packaging_items (id, name, price_per_unit)
		VALUES (?, ?, ?)
	`, id, item.Name, item.PricePerUnit)
	if err != nil {
		return "", fmt.Errorf("insert packaging item: %w", err)
	}
	return id, nil
}

// UpdatePackagingItem overwrites an existing packaging item.
func (s *Store) UpdatePackagingItem(item pricing.PackagingItem) error {
	res, err := s.db.Exec(`
		UPDATE packaging_items
		SET name = ?, price_per_unit = ?
		WHERE id = ?
	`, item.Name, item.PricePerUnit, item.ID)
	if err != nil {
		return fmt.Errorf("update packaging item: %w", err)
	}
	return requireAffected(res, "packaging item "+item.ID)
}

// DeletePackagingItem removes a packaging item. Set lines referencing it are
// skipped by the engine's lenient packaging policy.
func (s *Store) DeletePackagingItem(id string) error {
	res, err := s.db.Exec(`DELETE FROM packaging_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete packaging item: %w", err)
	}
	return requireAffected(res, "packaging item "+id)
}

// ListPackagingSets returns all packaging sets with their lines.
func (s *Store) ListPackagingSets() ([]pricing.PackagingSet, error) {
	rows, err := s.db.Query(`SELECT id, name FROM packaging_sets ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query packaging sets: %w", err)
	}
	defer rows.Close()

	sets := make([]pricing.PackagingSet, 0)
	for rows.Next() {
		var set pricing.PackagingSet
		if err := rows.Scan(&set.ID, &set.Name); err != nil {
			return nil, fmt.Errorf("scan packaging set: %w", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate packaging sets: %w", err)
	}

	for i := range sets {
		lines, err := s.packagingSetLines(sets[i].ID)
		if err != nil {
			return nil, err
		}
		sets[i].Lines = lines
	}
	return sets, nil
}

func (s *Store) packagingSetLines(setID string) ([]pricing.PackagingLine, error) {
	rows, err := s.db.Query(`
		SELECT packaging_item_id, qty
		FROM packaging_set_items
		WHERE set_id = ?
		ORDER BY packaging_item_id
	`, setID)
	if err != nil {
		return nil, fmt.Errorf("query packaging set lines: %w", err)
	}
	defer rows.Close()

	lines := make([]pricing.PackagingLine, 0)
	for rows.Next() {
		var line pricing.PackagingLine
		if err := rows.Scan(&line.PackagingItemID, &line.Qty); err != nil {
			return nil, fmt.Errorf("scan packaging set line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate packaging set lines: %w", err)
	}
	return lines, nil
}

// SavePackagingSet inserts or replaces a packaging set with its lines.
func (s *Store) SavePackagingSet(set pricing.PackagingSet) (string, error) {
	id := set.ID
	if id == "" {
		id = newID("pack")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin packaging set save: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO packaging_sets (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, id, set.Name); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("upsert packaging set: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM packaging_set_items WHERE set_id = ?`, id); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("clear packaging set lines: %w", err)
	}
	for _, line := range set.Lines {
		if _, err := tx.Exec(`
			INSERT INTO packaging_set_items (set_id, packaging_item_id, qty)
			VALUES (?, ?, ?)
		`, id, line.PackagingItemID, line.Qty); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("insert packaging set line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit packaging set save: %w", err)
	}
	return id, nil
}

// DeletePackagingSet removes a packaging set and its lines.
func (s *Store) DeletePackagingSet(id string) error {
	res, err := s.db.Exec(`DELETE FROM packaging_sets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete packaging set: %w", err)
	}
	return requireAffected(res, "packaging set "+id)
}
