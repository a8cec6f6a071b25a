package pricing

import "math"

// DefaultRoundingStep is used when the configured step is missing or invalid.
const DefaultRoundingStep = 0.10

// RoundUpToStep rounds value up to the next multiple of step. The step is
// inverted to an integer scale first so that common decimal steps (0.10,
// 0.05) round without naive floating-point division artifacts.
func RoundUpToStep(value, step float64) float64 {
	if !isFinite(step) || step <= 0 {
		step = DefaultRoundingStep
	}
	inv := math.Round(1 / step)
	return math.Ceil(value*inv) / inv
}

// PriceFromTargetMargin derives the minimum sellable price that yields at
// least the target absolute contribution margin on top of the cost per
// portion. The target must be a finite number greater than zero.
func PriceFromTargetMargin(costPerPortion, targetMargin, vatRate, step float64) (PriceResult, error) {
	if !isFinite(targetMargin) || targetMargin <= 0 {
		return PriceResult{}, ErrInvalidTarget
	}
	return priceFromNet(costPerPortion+targetMargin, costPerPortion, vatRate, step), nil
}

// PriceFromTargetMarginPct derives the minimum sellable price such that the
// contribution margin is at least targetPct of net revenue. targetPct must be
// strictly between 0 and 1.
func PriceFromTargetMarginPct(costPerPortion, targetPct, vatRate, step float64) (PriceResult, error) {
	if !isFinite(targetPct) || targetPct <= 0 || targetPct >= 1 {
		return PriceResult{}, ErrInvalidMarginPercent
	}
	return priceFromNet(costPerPortion/(1-targetPct), costPerPortion, vatRate, step), nil
}

// priceFromNet runs the shared rounding pipeline. The realized margin is
// recomputed from the implied net of the rounded gross, not from the raw net,
// so it reflects what the seller actually keeps. Since the gross only ever
// rounds up, the realized margin is never below the requested one.
func priceFromNet(net, costPerPortion, vatRate, step float64) PriceResult {
	grossRaw := net * (1 + vatRate)
	grossRounded := RoundUpToStep(grossRaw, step)
	netImplied := grossRounded / (1 + vatRate)

	margin := netImplied - costPerPortion
	pct := 0.0
	if netImplied > 0 {
		pct = margin / netImplied
	}

	return PriceResult{
		GrossRounded: grossRounded,
		NetImplied:   netImplied,
		MarginAmount: margin,
		MarginPct:    pct,
	}
}
