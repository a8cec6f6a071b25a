package pricing

import (
	"errors"
	"testing"
)

// costTestSnapshot has zero fixed cost per portion (all buckets zero, valid
// volume) so ingredient-only scenarios stay easy to read.
func costTestSnapshot() Snapshot {
	return Snapshot{
		Settings: Settings{
			VATRates: VATRates{Food: 0.07, Drink: 0.19},
			Rounding: Rounding{Step: 0.10},
			Defaults: Defaults{VATCategory: VATFood, LossPercent: 0},
		},
		CostModel: CostModel{
			VolumeAssumptions: VolumeAssumptions{OverrideMonthlyPortions: floatPtr(100)},
		},
		Catalog: Catalog{
			Ingredients: []Ingredient{
				{ID: "ing_beef", Name: "Ground beef", BaseUnit: UnitKilogram, PricePerBaseUnit: 4.00},
				{ID: "ing_cola", Name: "Cola syrup", BaseUnit: UnitLiter, PricePerBaseUnit: 2.50},
				{ID: "ing_bun", Name: "Burger bun", BaseUnit: UnitPiece, PricePerBaseUnit: 0.40},
			},
			PackagingItems: []PackagingItem{
				{ID: "pi_box", Name: "Burger box", PricePerUnit: 0.18},
			},
			PackagingSets: []PackagingSet{
				{ID: "pack_box", Name: "Box only", Lines: []PackagingLine{{PackagingItemID: "pi_box", Qty: 1}}},
			},
		},
	}
}

func TestComputeCost_ConvertsLineUnitsToBaseUnit(t *testing.T) {
	recipe := Recipe{
		Name:        "Plain patty",
		VATCategory: VATFood,
		Ingredients: []IngredientLine{{IngredientID: "ing_beef", Qty: 250, Unit: UnitGram}},
	}

	breakdown, err := ComputeCost(costTestSnapshot(), recipe)
	if err != nil {
		t.Fatalf("ComputeCost returned error: %v", err)
	}

	nearlyEqual(t, "ingredientCost", breakdown.IngredientCost, 1.00)
	nearlyEqual(t, "packagingCost", breakdown.PackagingCost, 0)
	nearlyEqual(t, "fixedCost", breakdown.FixedCost, 0)
	nearlyEqual(t, "totalCostPerPortion", breakdown.TotalCostPerPortion, 1.00)
	nearlyEqual(t, "vatRate", breakdown.VATRate, 0.07)
	if breakdown.VATCategory != VATFood {
		t.Fatalf("vatCategory = %q, want food", breakdown.VATCategory)
	}
}

func TestComputeCost_AddsPackagingAndFixedCost(t *testing.T) {
	snap := costTestSnapshot()
	snap.CostModel.FixedCostsMonthly.Standard = map[string]float64{"rent": 100}

	recipe := Recipe{
		Name:           "Burger",
		VATCategory:    VATFood,
		PackagingSetID: "pack_box",
		Ingredients: []IngredientLine{
			{IngredientID: "ing_beef", Qty: 250, Unit: UnitGram},
			{IngredientID: "ing_bun", Qty: 1, Unit: UnitPiece},
		},
	}

	breakdown, err := ComputeCost(snap, recipe)
	if err != nil {
		t.Fatalf("ComputeCost returned error: %v", err)
	}

	nearlyEqual(t, "ingredientCost", breakdown.IngredientCost, 1.40)
	nearlyEqual(t, "packagingCost", breakdown.PackagingCost, 0.18)
	nearlyEqual(t, "fixedCost", breakdown.FixedCost, 1.00)
	nearlyEqual(t, "totalCostPerPortion", breakdown.TotalCostPerPortion, 2.58)
}

func TestComputeCost_LossPercentFallsBackToDefault(t *testing.T) {
	snap := costTestSnapshot()
	snap.Settings.Defaults.LossPercent = 0.02

	recipe := Recipe{
		Name:        "Plain patty",
		VATCategory: VATFood,
		Ingredients: []IngredientLine{{IngredientID: "ing_beef", Qty: 250, Unit: UnitGram}},
	}

	withDefault, err := ComputeCost(snap, recipe)
	if err != nil {
		t.Fatalf("ComputeCost returned error: %v", err)
	}
	nearlyEqual(t, "ingredientCost default loss", withDefault.IngredientCost, 1.02)

	recipe.LossPercent = floatPtr(0.10)
	withOwn, err := ComputeCost(snap, recipe)
	if err != nil {
		t.Fatalf("ComputeCost returned error: %v", err)
	}
	nearlyEqual(t, "ingredientCost own loss", withOwn.IngredientCost, 1.10)
}

func TestComputeCost_NegativeLossPercentIsClamped(t *testing.T) {
	recipe := Recipe{
		Name:        "Plain patty",
		VATCategory: VATFood,
		LossPercent: floatPtr(-0.5),
		Ingredients: []IngredientLine{{IngredientID: "ing_beef", Qty: 250, Unit: UnitGram}},
	}

	breakdown, err := ComputeCost(costTestSnapshot(), recipe)
	if err != nil {
		t.Fatalf("ComputeCost returned error: %v", err)
	}
	nearlyEqual(t, "ingredientCost", breakdown.IngredientCost, 1.00)
}

func TestComputeCost_InvalidVatCategory(t *testing.T) {
	recipe := Recipe{
		Name:        "Mystery dish",
		VATCategory: VATCategory("dessert"),
		Ingredients: []IngredientLine{{IngredientID: "ing_beef", Qty: 250, Unit: UnitGram}},
	}

	if _, err := ComputeCost(costTestSnapshot(), recipe); !errors.Is(err, ErrInvalidVatCategory) {
		t.Fatalf("error = %v, want ErrInvalidVatCategory", err)
	}
}

func TestComputeCost_InvalidVolumeAssumptionsShortCircuits(t *testing.T) {
	snap := costTestSnapshot()
	snap.CostModel.VolumeAssumptions = VolumeAssumptions{}

	recipe := Recipe{
		Name:        "Burger",
		VATCategory: VATFood,
		Ingredients: []IngredientLine{{IngredientID: "ing_beef", Qty: 250, Unit: UnitGram}},
	}

	if _, err := ComputeCost(snap, recipe); !errors.Is(err, ErrInvalidVolumeAssumptions) {
		t.Fatalf("error = %v, want ErrInvalidVolumeAssumptions", err)
	}
}

func TestComputeCost_UnknownPackagingSetFailsWithoutBreakdown(t *testing.T) {
	recipe := Recipe{
		Name:           "Burger",
		VATCategory:    VATFood,
		PackagingSetID: "pack_missing",
		Ingredients:    []IngredientLine{{IngredientID: "ing_beef", Qty: 250, Unit: UnitGram}},
	}

	breakdown, err := ComputeCost(costTestSnapshot(), recipe)
	if !errors.Is(err, ErrPackagingSetNotFound) {
		t.Fatalf("error = %v, want ErrPackagingSetNotFound", err)
	}
	if breakdown != (CostBreakdown{}) {
		t.Fatalf("expected zero breakdown on failure, got %+v", breakdown)
	}
}

func TestComputeCost_DanglingIngredientReferenceFails(t *testing.T) {
	recipe := Recipe{
		Name:        "Burger",
		VATCategory: VATFood,
		Ingredients: []IngredientLine{{IngredientID: "ing_deleted", Qty: 1, Unit: UnitPiece}},
	}

	if _, err := ComputeCost(costTestSnapshot(), recipe); !errors.Is(err, ErrIngredientNotFound) {
		t.Fatalf("error = %v, want ErrIngredientNotFound", err)
	}
}

func TestComputeCost_WrongUnitGroupFails(t *testing.T) {
	recipe := Recipe{
		Name:        "Cola",
		VATCategory: VATDrink,
		Ingredients: []IngredientLine{{IngredientID: "ing_bun", Qty: 200, Unit: UnitMilliliter}},
	}

	if _, err := ComputeCost(costTestSnapshot(), recipe); !errors.Is(err, ErrIncompatibleUnits) {
		t.Fatalf("error = %v, want ErrIncompatibleUnits", err)
	}
}

func TestComputeCost_IsIdempotent(t *testing.T) {
	snap := costTestSnapshot()
	snap.CostModel.FixedCostsMonthly.Standard = map[string]float64{
		"rent": 733.37, "insurance": 41.99, "phoneInternet": 29.90, "accounting": 55.55,
	}
	snap.CostModel.FixedCostsMonthly.Custom = []CustomFixedCost{
		{Label: "generator fuel", Amount: 87.31},
	}

	recipe := Recipe{
		Name:           "Burger",
		VATCategory:    VATFood,
		PackagingSetID: "pack_box",
		LossPercent:    floatPtr(0.03),
		Ingredients: []IngredientLine{
			{IngredientID: "ing_beef", Qty: 180, Unit: UnitGram},
			{IngredientID: "ing_bun", Qty: 1, Unit: UnitPiece},
			{IngredientID: "ing_cola", Qty: 330, Unit: UnitMilliliter},
		},
	}

	first, err := ComputeCost(snap, recipe)
	if err != nil {
		t.Fatalf("first ComputeCost returned error: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := ComputeCost(snap, recipe)
		if err != nil {
			t.Fatalf("ComputeCost (iteration=%d) returned error: %v", i, err)
		}
		if again != first {
			t.Fatalf("iteration %d not bit-identical: %+v vs %+v", i, again, first)
		}
	}
}
