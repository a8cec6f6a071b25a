// Package pricing implements the costing and price-derivation engine.
//
// A recipe is always exactly one portion (no batch/yield logic). Every
// calculation takes a full snapshot of settings, cost model and catalog and
// returns a fresh result; the engine never mutates its inputs.
package pricing

// VATCategory selects which VAT rate applies to a recipe.
type VATCategory string

const (
	VATFood  VATCategory = "food"
	VATDrink VATCategory = "drink"
)

// Ingredient is a purchasable raw material priced per one base unit.
type Ingredient struct {
	ID               string
	Name             string
	BaseUnit         Unit
	PricePerBaseUnit float64
	Supplier         string
	Notes            string
}

// PackagingItem is a single purchasable packaging component.
type PackagingItem struct {
	ID           string
	Name         string
	PricePerUnit float64
}

// PackagingLine references a packaging item with a per-portion quantity.
type PackagingLine struct {
	PackagingItemID string
	Qty             float64
}

// PackagingSet is a named bundle of packaging lines applied per portion.
type PackagingSet struct {
	ID    string
	Name  string
	Lines []PackagingLine
}

// Catalog holds all referenceable entities of a snapshot.
type Catalog struct {
	Ingredients    []Ingredient
	PackagingItems []PackagingItem
	PackagingSets  []PackagingSet
}

// IngredientByID returns the ingredient with the given id.
func (c Catalog) IngredientByID(id string) (Ingredient, bool) {
	for _, ing := range c.Ingredients {
		if ing.ID == id {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// PackagingItemByID returns the packaging item with the given id.
func (c Catalog) PackagingItemByID(id string) (PackagingItem, bool) {
	for _, item := range c.PackagingItems {
		if item.ID == id {
			return item, true
		}
	}
	return PackagingItem{}, false
}

// PackagingSetByID returns the packaging set with the given id.
func (c Catalog) PackagingSetByID(id string) (PackagingSet, bool) {
	for _, set := range c.PackagingSets {
		if set.ID == id {
			return set, true
		}
	}
	return PackagingSet{}, false
}

// VATRates holds the VAT rate per category as fractions (0.07 = 7%).
type VATRates struct {
	Food  float64
	Drink float64
}

// Rounding configures the gross price rounding policy (always round up).
type Rounding struct {
	Step float64
}

// Defaults are fallback values applied when a recipe leaves a field unset.
type Defaults struct {
	VATCategory    VATCategory
	PackagingSetID string
	LossPercent    float64
}

// Settings is the process-wide calculation configuration.
type Settings struct {
	VATRates VATRates
	Rounding Rounding
	Defaults Defaults
}

// CustomFixedCost is an arbitrary labeled monthly fixed-cost line.
type CustomFixedCost struct {
	Label  string
	Amount float64
}

// FixedCostsMonthly groups the standard named buckets and custom lines.
type FixedCostsMonthly struct {
	Standard map[string]float64
	Custom   []CustomFixedCost
}

// VolumeAssumptions determine the monthly portion volume used to amortize
// fixed costs. A non-nil override wins over the days-times-portions product.
type VolumeAssumptions struct {
	OpenDaysPerMonth           float64
	ExpectedPortionsPerOpenDay float64
	OverrideMonthlyPortions    *float64
}

// CostModel holds monthly fixed costs and the volume assumptions.
type CostModel struct {
	FixedCostsMonthly FixedCostsMonthly
	VolumeAssumptions VolumeAssumptions
}

// Snapshot is the immutable input read by every engine call.
type Snapshot struct {
	Settings  Settings
	CostModel CostModel
	Catalog   Catalog
}

// IngredientLine is one recipe line: a quantity of a referenced ingredient.
// The unit must belong to the same physical-quantity group as the
// ingredient's base unit.
type IngredientLine struct {
	IngredientID string
	Qty          float64
	Unit         Unit
}

// RecipePricing carries per-recipe pricing inputs: the target contribution
// margin plus the last-used market and sell prices entered by the user.
type RecipePricing struct {
	TargetMargin     float64
	MarketPriceGross float64
	SellPriceGross   float64
}

// Recipe is a priced product built from ingredient lines, one portion each.
type Recipe struct {
	ID             string
	Name           string
	VATCategory    VATCategory
	LossPercent    *float64
	PackagingSetID string
	Pricing        RecipePricing
	Ingredients    []IngredientLine
}

// CostBreakdown is the per-portion cost result of ComputeCost.
type CostBreakdown struct {
	IngredientCost      float64
	PackagingCost       float64
	FixedCost           float64
	TotalCostPerPortion float64
	VATRate             float64
	VATCategory         VATCategory
}

// PriceResult is the outcome of a price derivation. MarginPct is the realized
// margin as a fraction of net revenue, not of cost.
type PriceResult struct {
	GrossRounded float64
	NetImplied   float64
	MarginAmount float64
	MarginPct    float64
}
