package pricing

import "fmt"

// ResolvePackagingCost sums the per-portion packaging cost of the named set.
// An empty set id means no packaging and costs 0. A non-empty id must exist
// in the catalog, otherwise ErrPackagingSetNotFound.
//
// A set line referencing a missing packaging item contributes zero and is
// skipped. This is deliberately lenient, unlike the strict failure for a
// missing ingredient in ComputeCost.
func ResolvePackagingCost(cat Catalog, packagingSetID string) (float64, error) {
	if packagingSetID == "" {
		return 0, nil
	}

	set, ok := cat.PackagingSetByID(packagingSetID)
	if !ok {
		return 0, fmt.Errorf("packaging set %q: %w", packagingSetID, ErrPackagingSetNotFound)
	}

	var total float64
	for _, line := range set.Lines {
		item, ok := cat.PackagingItemByID(line.PackagingItemID)
		if !ok {
			continue
		}
		total += finiteOrZero(line.Qty) * finiteOrZero(item.PricePerUnit)
	}
	return total, nil
}
