package main

import (
	"fmt"
	"math"

	"github.com/KonradClos/FoodtruckPricing/internal/pricing"
)

// Wire representations of the snapshot entities. The engine types stay free
// of serialization concerns; handlers map at the boundary.

type ingredientDTO struct {
	ID               string  `json:"id,omitempty"`
	Name             string  `json:"name"`
	BaseUnit         string  `json:"baseUnit"`
	PricePerBaseUnit float64 `json:"pricePerBaseUnit"`
	Supplier         string  `json:"supplier,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

func (d ingredientDTO) validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !pricing.KnownUnit(pricing.Unit(d.BaseUnit)) {
		return fmt.Errorf("baseUnit %q is not a recognized unit", d.BaseUnit)
	}
	if !isFiniteNonNegative(d.PricePerBaseUnit) {
		return fmt.Errorf("pricePerBaseUnit must be a non-negative number")
	}
	return nil
}

func (d ingredientDTO) toModel() pricing.Ingredient {
	return pricing.Ingredient{
		ID:               d.ID,
		Name:             d.Name,
		BaseUnit:         pricing.Unit(d.BaseUnit),
		PricePerBaseUnit: d.PricePerBaseUnit,
		Supplier:         d.Supplier,
		Notes:            d.Notes,
	}
}

func toIngredientDTO(ing pricing.Ingredient) ingredientDTO {
	return ingredientDTO{
		ID:               ing.ID,
		Name:             ing.Name,
		BaseUnit:         string(ing.BaseUnit),
		PricePerBaseUnit: ing.PricePerBaseUnit,
		Supplier:         ing.Supplier,
		Notes:            ing.Notes,
	}
}

type packagingItemDTO struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

func (d packagingItemDTO) validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !isFiniteNonNegative(d.PricePerUnit) {
		return fmt.Errorf("pricePerUnit must be a non-negative number")
	}
	return nil
}

func (d packagingItemDTO) toModel() pricing.PackagingItem {
	return pricing.PackagingItem{ID: d.ID, Name: d.Name, PricePerUnit: d.PricePerUnit}
}

func toPackagingItemDTO(item pricing.PackagingItem) packagingItemDTO {
	return packagingItemDTO{ID: item.ID, Name: item.Name, PricePerUnit: item.PricePerUnit}
}

type packagingLineDTO struct {
	PackagingItemID string  `json:"packagingItemId"`
	Qty             float64 `json:"qty"`
}

type packagingSetDTO struct {
	ID    string             `json:"id,omitempty"`
	Name  string             `json:"name"`
	Lines []packagingLineDTO `json:"lines"`
}

func (d packagingSetDTO) validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	for i, line := range d.Lines {
		if line.PackagingItemID == "" {
			return fmt.Errorf("line %d: packagingItemId is required", i)
		}
		if !isFiniteNonNegative(line.Qty) {
			return fmt.Errorf("line %d: qty must be a non-negative number", i)
		}
	}
	return nil
}

func (d packagingSetDTO) toModel() pricing.PackagingSet {
	set := pricing.PackagingSet{ID: d.ID, Name: d.Name}
	for _, line := range d.Lines {
		set.Lines = append(set.Lines, pricing.PackagingLine{
			PackagingItemID: line.PackagingItemID,
			Qty:             line.Qty,
		})
	}
	return set
}

func toPackagingSetDTO(set pricing.PackagingSet) packagingSetDTO {
	dto := packagingSetDTO{ID: set.ID, Name: set.Name, Lines: make([]packagingLineDTO, 0, len(set.Lines))}
	for _, line := range set.Lines {
		dto.Lines = append(dto.Lines, packagingLineDTO{PackagingItemID: line.PackagingItemID, Qty: line.Qty})
	}
	return dto
}

type ingredientLineDTO struct {
	IngredientID string  `json:"ingredientId"`
	Qty          float64 `json:"qty"`
	Unit         string  `json:"unit"`
}

type recipePricingDTO struct {
	TargetMargin     float64 `json:"targetMargin"`
	MarketPriceGross float64 `json:"marketPriceGross,omitempty"`
	SellPriceGross   float64 `json:"sellPriceGross,omitempty"`
}

type recipeDTO struct {
	ID             string              `json:"id,omitempty"`
	Name           string              `json:"name"`
	VATCategory    string              `json:"vatCategory"`
	LossPercent    *float64            `json:"lossPercent,omitempty"`
	PackagingSetID string              `json:"packagingSetId,omitempty"`
	Pricing        recipePricingDTO    `json:"pricing"`
	Ingredients    []ingredientLineDTO `json:"ingredients"`
}

func (d recipeDTO) validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !pricing.KnownVATCategory(pricing.VATCategory(d.VATCategory)) {
		return fmt.Errorf("vatCategory %q must be food or drink", d.VATCategory)
	}
	if d.LossPercent != nil && !isFiniteNonNegative(*d.LossPercent) {
		return fmt.Errorf("lossPercent must be a non-negative number")
	}
	if len(d.Ingredients) == 0 {
		return fmt.Errorf("a recipe needs at least one ingredient line")
	}
	for i, line := range d.Ingredients {
		if line.IngredientID == "" {
			return fmt.Errorf("line %d: ingredientId is required", i)
		}
		if math.IsNaN(line.Qty) || math.IsInf(line.Qty, 0) || line.Qty <= 0 {
			return fmt.Errorf("line %d: qty must be greater than 0", i)
		}
		if !pricing.KnownUnit(pricing.Unit(line.Unit)) {
			return fmt.Errorf("line %d: unit %q is not a recognized unit", i, line.Unit)
		}
	}
	return nil
}

func (d recipeDTO) toModel() pricing.Recipe {
	recipe := pricing.Recipe{
		ID:             d.ID,
		Name:           d.Name,
		VATCategory:    pricing.VATCategory(d.VATCategory),
		LossPercent:    d.LossPercent,
		PackagingSetID: d.PackagingSetID,
		Pricing: pricing.RecipePricing{
			TargetMargin:     d.Pricing.TargetMargin,
			MarketPriceGross: d.Pricing.MarketPriceGross,
			SellPriceGross:   d.Pricing.SellPriceGross,
		},
	}
	for _, line := range d.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, pricing.IngredientLine{
			IngredientID: line.IngredientID,
			Qty:          line.Qty,
			Unit:         pricing.Unit(line.Unit),
		})
	}
	return recipe
}

func toRecipeDTO(recipe pricing.Recipe) recipeDTO {
	dto := recipeDTO{
		ID:             recipe.ID,
		Name:           recipe.Name,
		VATCategory:    string(recipe.VATCategory),
		LossPercent:    recipe.LossPercent,
		PackagingSetID: recipe.PackagingSetID,
		Pricing: recipePricingDTO{
			TargetMargin:     recipe.Pricing.TargetMargin,
			MarketPriceGross: recipe.Pricing.MarketPriceGross,
			SellPriceGross:   recipe.Pricing.SellPriceGross,
		},
		Ingredients: make([]ingredientLineDTO, 0, len(recipe.Ingredients)),
	}
	for _, line := range recipe.Ingredients {
		dto.Ingredients = append(dto.Ingredients, ingredientLineDTO{
			IngredientID: line.IngredientID,
			Qty:          line.Qty,
			Unit:         string(line.Unit),
		})
	}
	return dto
}

type settingsDTO struct {
	VATRates struct {
		Food  float64 `json:"food"`
		Drink float64 `json:"drink"`
	} `json:"vatRates"`
	Rounding struct {
		Step float64 `json:"step"`
	} `json:"rounding"`
	Defaults struct {
		VATCategory    string  `json:"vatCategory"`
		PackagingSetID string  `json:"packagingSetId"`
		LossPercent    float64 `json:"lossPercent"`
	} `json:"defaults"`
}

func (d settingsDTO) validate() error {
	if !isFiniteNonNegative(d.VATRates.Food) || !isFiniteNonNegative(d.VATRates.Drink) {
		return fmt.Errorf("vatRates must be non-negative numbers")
	}
	if math.IsNaN(d.Rounding.Step) || math.IsInf(d.Rounding.Step, 0) || d.Rounding.Step <= 0 {
		return fmt.Errorf("rounding step must be greater than 0")
	}
	if !pricing.KnownVATCategory(pricing.VATCategory(d.Defaults.VATCategory)) {
		return fmt.Errorf("default vatCategory %q must be food or drink", d.Defaults.VATCategory)
	}
	if !isFiniteNonNegative(d.Defaults.LossPercent) {
		return fmt.Errorf("default lossPercent must be a non-negative number")
	}
	return nil
}

func (d settingsDTO) toModel() pricing.Settings {
	return pricing.Settings{
		VATRates: pricing.VATRates{Food: d.VATRates.Food, Drink: d.VATRates.Drink},
		Rounding: pricing.Rounding{Step: d.Rounding.Step},
		Defaults: pricing.Defaults{
			VATCategory:    pricing.VATCategory(d.Defaults.VATCategory),
			PackagingSetID: d.Defaults.PackagingSetID,
			LossPercent:    d.Defaults.LossPercent,
		},
	}
}

func toSettingsDTO(s pricing.Settings) settingsDTO {
	var dto settingsDTO
	dto.VATRates.Food = s.VATRates.Food
	dto.VATRates.Drink = s.VATRates.Drink
	dto.Rounding.Step = s.Rounding.Step
	dto.Defaults.VATCategory = string(s.Defaults.VATCategory)
	dto.Defaults.PackagingSetID = s.Defaults.PackagingSetID
	dto.Defaults.LossPercent = s.Defaults.LossPercent
	return dto
}

type customFixedCostDTO struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type costModelDTO struct {
	FixedCostsMonthly struct {
		Standard map[string]float64   `json:"standard"`
		Custom   []customFixedCostDTO `json:"custom"`
	} `json:"fixedCostsMonthly"`
	VolumeAssumptions struct {
		OpenDaysPerMonth           float64  `json:"openDaysPerMonth"`
		ExpectedPortionsPerOpenDay float64  `json:"expectedPortionsPerOpenDay"`
		OverrideMonthlyPortions    *float64 `json:"overrideMonthlyPortions,omitempty"`
	} `json:"volumeAssumptions"`
}

func (d costModelDTO) toModel() pricing.CostModel {
	cm := pricing.CostModel{
		FixedCostsMonthly: pricing.FixedCostsMonthly{Standard: d.FixedCostsMonthly.Standard},
		VolumeAssumptions: pricing.VolumeAssumptions{
			OpenDaysPerMonth:           d.VolumeAssumptions.OpenDaysPerMonth,
			ExpectedPortionsPerOpenDay: d.VolumeAssumptions.ExpectedPortionsPerOpenDay,
			OverrideMonthlyPortions:    d.VolumeAssumptions.OverrideMonthlyPortions,
		},
	}
	if cm.FixedCostsMonthly.Standard == nil {
		cm.FixedCostsMonthly.Standard = map[string]float64{}
	}
	for _, line := range d.FixedCostsMonthly.Custom {
		cm.FixedCostsMonthly.Custom = append(cm.FixedCostsMonthly.Custom, pricing.CustomFixedCost{
			Label:  line.Label,
			Amount: line.Amount,
		})
	}
	return cm
}

func toCostModelDTO(cm pricing.CostModel) costModelDTO {
	var dto costModelDTO
	dto.FixedCostsMonthly.Standard = cm.FixedCostsMonthly.Standard
	if dto.FixedCostsMonthly.Standard == nil {
		dto.FixedCostsMonthly.Standard = map[string]float64{}
	}
	dto.FixedCostsMonthly.Custom = make([]customFixedCostDTO, 0, len(cm.FixedCostsMonthly.Custom))
	for _, line := range cm.FixedCostsMonthly.Custom {
		dto.FixedCostsMonthly.Custom = append(dto.FixedCostsMonthly.Custom, customFixedCostDTO{
			Label:  line.Label,
			Amount: line.Amount,
		})
	}
	dto.VolumeAssumptions.OpenDaysPerMonth = cm.VolumeAssumptions.OpenDaysPerMonth
	dto.VolumeAssumptions.ExpectedPortionsPerOpenDay = cm.VolumeAssumptions.ExpectedPortionsPerOpenDay
	dto.VolumeAssumptions.OverrideMonthlyPortions = cm.VolumeAssumptions.OverrideMonthlyPortions
	return dto
}

type costBreakdownDTO struct {
	IngredientCost      float64 `json:"ingredientCost"`
	PackagingCost       float64 `json:"packagingCost"`
	FixedCost           float64 `json:"fixedCost"`
	TotalCostPerPortion float64 `json:"totalCostPerPortion"`
	VATRate             float64 `json:"vatRate"`
	VATCategory         string  `json:"vatCategory"`
}

func toCostBreakdownDTO(b pricing.CostBreakdown) costBreakdownDTO {
	return costBreakdownDTO{
		IngredientCost:      b.IngredientCost,
		PackagingCost:       b.PackagingCost,
		FixedCost:           b.FixedCost,
		TotalCostPerPortion: b.TotalCostPerPortion,
		VATRate:             b.VATRate,
		VATCategory:         string(b.VATCategory),
	}
}

type priceResultDTO struct {
	GrossRounded float64 `json:"grossRounded"`
	NetImplied   float64 `json:"netImplied"`
	MarginAmount float64 `json:"realizedMarginAmount"`
	MarginPct    float64 `json:"realizedMarginPct"`
}

func toPriceResultDTO(p pricing.PriceResult) priceResultDTO {
	return priceResultDTO{
		GrossRounded: p.GrossRounded,
		NetImplied:   p.NetImplied,
		MarginAmount: p.MarginAmount,
		MarginPct:    p.MarginPct,
	}
}

func isFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
