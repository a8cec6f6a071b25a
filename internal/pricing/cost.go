package pricing

import (
	"fmt"
	"math"
	"strings"
)

// VATRateFor resolves the VAT rate for a category. Anything outside the
// recognized set fails with ErrInvalidVatCategory.
func (s Settings) VATRateFor(cat VATCategory) (float64, error) {
	switch VATCategory(strings.ToLower(string(cat))) {
	case VATFood:
		return s.VATRates.Food, nil
	case VATDrink:
		return s.VATRates.Drink, nil
	default:
		return 0, fmt.Errorf("category %q: %w", cat, ErrInvalidVatCategory)
	}
}

// KnownVATCategory reports whether cat is in the recognized set.
func KnownVATCategory(cat VATCategory) bool {
	switch VATCategory(strings.ToLower(string(cat))) {
	case VATFood, VATDrink:
		return true
	default:
		return false
	}
}

// ComputeCost aggregates the total cost of one portion of a recipe:
// ingredient cost (converted to base units, scaled by the loss factor) plus
// packaging cost plus the amortized fixed cost. The first failure
// short-circuits the whole call; no partial breakdown is returned.
func ComputeCost(snap Snapshot, r Recipe) (CostBreakdown, error) {
	vatRate, err := snap.Settings.VATRateFor(r.VATCategory)
	if err != nil {
		return CostBreakdown{}, err
	}

	fixed, err := AllocateFixedCost(snap.CostModel)
	if err != nil {
		return CostBreakdown{}, err
	}

	packagingCost, err := ResolvePackagingCost(snap.Catalog, r.PackagingSetID)
	if err != nil {
		return CostBreakdown{}, err
	}

	var ingredientSum float64
	for _, line := range r.Ingredients {
		ing, ok := snap.Catalog.IngredientByID(line.IngredientID)
		if !ok {
			return CostBreakdown{}, fmt.Errorf("recipe %q references ingredient %q: %w", r.Name, line.IngredientID, ErrIngredientNotFound)
		}

		qtyInBase, err := Convert(line.Qty, line.Unit, ing.BaseUnit)
		if err != nil {
			return CostBreakdown{}, fmt.Errorf("ingredient %q: %w", ing.Name, err)
		}
		ingredientSum += qtyInBase * ing.PricePerBaseUnit
	}

	lossPct := snap.Settings.Defaults.LossPercent
	if r.LossPercent != nil && isFinite(*r.LossPercent) {
		lossPct = *r.LossPercent
	}
	ingredientCost := ingredientSum * (1 + math.Max(0, lossPct))

	total := ingredientCost + packagingCost + fixed.PerPortion

	return CostBreakdown{
		IngredientCost:      ingredientCost,
		PackagingCost:       packagingCost,
		FixedCost:           fixed.PerPortion,
		TotalCostPerPortion: total,
		VATRate:             vatRate,
		VATCategory:         VATCategory(strings.ToLower(string(r.VATCategory))),
	}, nil
}
