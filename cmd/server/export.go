package main

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/KonradClos/FoodtruckPricing/internal/pricing"
)

// exportDocument is the full-state interchange format. An export can be
// re-imported as-is, replacing everything the app stores.
type exportDocument struct {
	Settings  settingsDTO  `json:"settings"`
	CostModel costModelDTO `json:"costModel"`
	Catalog   struct {
		Ingredients    []ingredientDTO    `json:"ingredients"`
		PackagingItems []packagingItemDTO `json:"packagingItems"`
		PackagingSets  []packagingSetDTO  `json:"packagingSets"`
	} `json:"catalog"`
	Recipes []recipeDTO `json:"recipes"`
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.LoadSnapshot()
	if err != nil {
		respondStoreError(w, err, "snapshot")
		return
	}
	recipes, err := s.store.ListRecipes()
	if err != nil {
		respondStoreError(w, err, "recipes")
		return
	}

	var doc exportDocument
	doc.Settings = toSettingsDTO(snap.Settings)
	doc.CostModel = toCostModelDTO(snap.CostModel)
	doc.Catalog.Ingredients = make([]ingredientDTO, 0, len(snap.Catalog.Ingredients))
	for _, ing := range snap.Catalog.Ingredients {
		doc.Catalog.Ingredients = append(doc.Catalog.Ingredients, toIngredientDTO(ing))
	}
	doc.Catalog.PackagingItems = make([]packagingItemDTO, 0, len(snap.Catalog.PackagingItems))
	for _, item := range snap.Catalog.PackagingItems {
		doc.Catalog.PackagingItems = append(doc.Catalog.PackagingItems, toPackagingItemDTO(item))
	}
	doc.Catalog.PackagingSets = make([]packagingSetDTO, 0, len(snap.Catalog.PackagingSets))
	for _, set := range snap.Catalog.PackagingSets {
		doc.Catalog.PackagingSets = append(doc.Catalog.PackagingSets, toPackagingSetDTO(set))
	}
	doc.Recipes = make([]recipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		doc.Recipes = append(doc.Recipes, toRecipeDTO(recipe))
	}

	w.Header().Set("Content-Disposition", `attachment; filename="foodtruck-export.json"`)
	respondJSON(w, http.StatusOK, doc)
}

func (s *server) handleImport(w http.ResponseWriter, r *http.Request) {
	var doc exportDocument
	if err := decodeJSON(r, &doc); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := doc.Settings.validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "settings: "+err.Error())
		return
	}
	for _, dto := range doc.Recipes {
		if err := dto.validate(); err != nil {
			respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("recipe %q: %v", dto.Name, err))
			return
		}
	}

	snap := pricing.Snapshot{
		Settings:  doc.Settings.toModel(),
		CostModel: doc.CostModel.toModel(),
	}
	for _, dto := range doc.Catalog.Ingredients {
		snap.Catalog.Ingredients = append(snap.Catalog.Ingredients, dto.toModel())
	}
	for _, dto := range doc.Catalog.PackagingItems {
		snap.Catalog.PackagingItems = append(snap.Catalog.PackagingItems, dto.toModel())
	}
	for _, dto := range doc.Catalog.PackagingSets {
		snap.Catalog.PackagingSets = append(snap.Catalog.PackagingSets, dto.toModel())
	}
	recipes := make([]pricing.Recipe, 0, len(doc.Recipes))
	for _, dto := range doc.Recipes {
		recipes = append(recipes, dto.toModel())
	}

	if err := s.store.ReplaceAll(snap, recipes); err != nil {
		respondStoreError(w, err, "import")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportIngredientsCSV writes the ingredient list for spreadsheet use.
// Prices are formatted through decimal so 0.1 comes out as "0.1000" and not
// a float artifact.
func (s *server) handleExportIngredientsCSV(w http.ResponseWriter, r *http.Request) {
	ingredients, err := s.store.ListIngredients()
	if err != nil {
		respondStoreError(w, err, "ingredients")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ingredients.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "base_unit", "price_per_base_unit", "supplier", "notes"}); err != nil {
		return
	}
	for _, ing := range ingredients {
		price := decimal.NewFromFloat(ing.PricePerBaseUnit).StringFixed(4)
		record := []string{ing.ID, ing.Name, string(ing.BaseUnit), price, ing.Supplier, ing.Notes}
		if err := cw.Write(record); err != nil {
			return
		}
	}
	cw.Flush()
}
