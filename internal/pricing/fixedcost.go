package pricing

import (
	"fmt"
	"math"
	"sort"
)

// FixedCostAllocation is the result of amortizing monthly fixed costs over
// the expected monthly portion volume.
type FixedCostAllocation struct {
	PerPortion      float64
	MonthlyTotal    float64
	MonthlyPortions float64
}

// AllocateFixedCost sums all monthly fixed costs and divides them by the
// monthly portion volume. A non-nil portions override must be a finite number
// greater than zero; there is no fallback to the days-times-portions product
// when an override is present but invalid. Fails with
// ErrInvalidVolumeAssumptions when no positive portion volume can be
// determined, which blocks pricing rather than defaulting to zero.
func AllocateFixedCost(cm CostModel) (FixedCostAllocation, error) {
	var total float64
	// Standard buckets are summed in key order so identical snapshots
	// produce bit-identical totals.
	keys := make([]string, 0, len(cm.FixedCostsMonthly.Standard))
	for k := range cm.FixedCostsMonthly.Standard {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		total += finiteOrZero(cm.FixedCostsMonthly.Standard[k])
	}
	for _, line := range cm.FixedCostsMonthly.Custom {
		total += finiteOrZero(line.Amount)
	}

	portions, err := monthlyPortions(cm.VolumeAssumptions)
	if err != nil {
		return FixedCostAllocation{}, err
	}

	return FixedCostAllocation{
		PerPortion:      total / portions,
		MonthlyTotal:    total,
		MonthlyPortions: portions,
	}, nil
}

func monthlyPortions(vol VolumeAssumptions) (float64, error) {
	if vol.OverrideMonthlyPortions != nil {
		ov := *vol.OverrideMonthlyPortions
		if !isFinite(ov) || ov <= 0 {
			return 0, fmt.Errorf("monthly portions override %v: %w", ov, ErrInvalidVolumeAssumptions)
		}
		return ov, nil
	}

	days := vol.OpenDaysPerMonth
	perDay := vol.ExpectedPortionsPerOpenDay
	if !isFinite(days) || days <= 0 || !isFinite(perDay) || perDay <= 0 {
		return 0, fmt.Errorf("open days %v x portions per day %v: %w", days, perDay, ErrInvalidVolumeAssumptions)
	}
	return days * perDay, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}
