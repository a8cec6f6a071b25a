package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/KonradClos/FoodtruckPricing/internal/pricing"
)

type costResponse struct {
	Cost costBreakdownDTO `json:"cost"`
}

type priceResponse struct {
	Cost  costBreakdownDTO `json:"cost"`
	Price priceResultDTO   `json:"price"`
}

// priceErrorResponse keeps the cost breakdown visible when only the pricing
// step failed, e.g. a zero target margin on an otherwise costable recipe.
type priceErrorResponse struct {
	Error string           `json:"error"`
	Cost  costBreakdownDTO `json:"cost"`
}

func (s *server) handleRecipeCost(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.store.GetRecipe(chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err, "recipe")
		return
	}
	snap, err := s.store.LoadSnapshot()
	if err != nil {
		respondStoreError(w, err, "snapshot")
		return
	}
	breakdown, err := pricing.ComputeCost(snap, recipe)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, costResponse{Cost: toCostBreakdownDTO(breakdown)})
}

// handleRecipePrice prices a recipe from its cost breakdown. The pricing mode
// is selected by query parameters:
//
//	?mode=margin (default) uses the recipe's target margin in currency,
//	overridable with ?target=.
//	?mode=pct uses a target margin as a fraction of net revenue and
//	requires ?target=.
func (s *server) handleRecipePrice(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.store.GetRecipe(chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err, "recipe")
		return
	}
	snap, err := s.store.LoadSnapshot()
	if err != nil {
		respondStoreError(w, err, "snapshot")
		return
	}
	breakdown, err := pricing.ComputeCost(snap, recipe)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "margin"
	}

	var result pricing.PriceResult
	switch mode {
	case "margin":
		target := recipe.Pricing.TargetMargin
		if raw := r.URL.Query().Get("target"); raw != "" {
			target, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				respondError(w, http.StatusBadRequest, "target must be a number")
				return
			}
		}
		result, err = pricing.PriceFromTargetMargin(
			breakdown.TotalCostPerPortion, target, breakdown.VATRate, snap.Settings.Rounding.Step)
	case "pct":
		raw := r.URL.Query().Get("target")
		if raw == "" {
			respondError(w, http.StatusBadRequest, "mode=pct requires a target parameter")
			return
		}
		var target float64
		target, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "target must be a number")
			return
		}
		result, err = pricing.PriceFromTargetMarginPct(
			breakdown.TotalCostPerPortion, target, breakdown.VATRate, snap.Settings.Rounding.Step)
	default:
		respondError(w, http.StatusBadRequest, "mode must be margin or pct")
		return
	}
	if err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, priceErrorResponse{
			Error: err.Error(),
			Cost:  toCostBreakdownDTO(breakdown),
		})
		return
	}

	respondJSON(w, http.StatusOK, priceResponse{
		Cost:  toCostBreakdownDTO(breakdown),
		Price: toPriceResultDTO(result),
	})
}
