package pricing

import (
	"errors"
	"testing"
)

func packagingTestCatalog() Catalog {
	return Catalog{
		PackagingItems: []PackagingItem{
			{ID: "pi_box", Name: "Burger box", PricePerUnit: 0.18},
			{ID: "pi_napkin", Name: "Napkin", PricePerUnit: 0.02},
		},
		PackagingSets: []PackagingSet{
			{
				ID:   "pack_togo",
				Name: "Standard To-Go",
				Lines: []PackagingLine{
					{PackagingItemID: "pi_box", Qty: 1},
					{PackagingItemID: "pi_napkin", Qty: 2},
				},
			},
			{ID: "pack_default", Name: "Default", Lines: nil},
		},
	}
}

func TestResolvePackagingCost_EmptyIDCostsNothing(t *testing.T) {
	cost, err := ResolvePackagingCost(packagingTestCatalog(), "")
	if err != nil {
		t.Fatalf("ResolvePackagingCost returned error: %v", err)
	}
	nearlyEqual(t, "cost", cost, 0)
}

func TestResolvePackagingCost_SumsSetLines(t *testing.T) {
	cost, err := ResolvePackagingCost(packagingTestCatalog(), "pack_togo")
	if err != nil {
		t.Fatalf("ResolvePackagingCost returned error: %v", err)
	}
	nearlyEqual(t, "cost", cost, 0.22)
}

func TestResolvePackagingCost_EmptySetCostsNothing(t *testing.T) {
	cost, err := ResolvePackagingCost(packagingTestCatalog(), "pack_default")
	if err != nil {
		t.Fatalf("ResolvePackagingCost returned error: %v", err)
	}
	nearlyEqual(t, "cost", cost, 0)
}

func TestResolvePackagingCost_UnknownSetFails(t *testing.T) {
	if _, err := ResolvePackagingCost(packagingTestCatalog(), "pack_missing"); !errors.Is(err, ErrPackagingSetNotFound) {
		t.Fatalf("error = %v, want ErrPackagingSetNotFound", err)
	}
}

func TestResolvePackagingCost_MissingItemIsSkipped(t *testing.T) {
	// Unlike a recipe line referencing a missing ingredient, a packaging
	// line referencing a missing item is tolerated and contributes zero.
	cat := packagingTestCatalog()
	cat.PackagingSets = append(cat.PackagingSets, PackagingSet{
		ID: "pack_partial",
		Lines: []PackagingLine{
			{PackagingItemID: "pi_box", Qty: 1},
			{PackagingItemID: "pi_gone", Qty: 5},
		},
	})

	cost, err := ResolvePackagingCost(cat, "pack_partial")
	if err != nil {
		t.Fatalf("ResolvePackagingCost returned error: %v", err)
	}
	nearlyEqual(t, "cost", cost, 0.18)
}
