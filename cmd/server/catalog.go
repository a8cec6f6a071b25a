package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KonradClos/FoodtruckPricing/internal/seed"
)

func (s *server) handleIngredientsList(w http.ResponseWriter, r *http.Request) {
	ingredients, err := s.store.ListIngredients()
	if err != nil {
		respondStoreError(w, err, "ingredients")
		return
	}
	dtos := make([]ingredientDTO, 0, len(ingredients))
	for _, ing := range ingredients {
		dtos = append(dtos, toIngredientDTO(ing))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (s *server) handleIngredientCreate(w http.ResponseWriter, r *http.Request) {
	var dto ingredientDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := dto.validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id, err := s.store.CreateIngredient(dto.toModel())
	if err != nil {
		respondStoreError(w, err, "ingredient")
		return
	}
	dto.ID = id
	respondJSON(w, http.StatusCreated, dto)
}

func (s *server) handleIngredientUpdate(w http.ResponseWriter, r *http.Request) {
	var dto ingredientDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dto.ID = chi.URLParam(r, "id")
	if err := dto.validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.store.UpdateIngredient(dto.toModel()); err != nil {
		respondStoreError(w, err, "ingredient")
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

func (s *server) handleIngredientDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteIngredient(chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err, "ingredient")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handlePackagingItemsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListPackagingItems()
	if err != nil {
		respondStoreError(w, err, "packaging items")
		return
	}
	dtos := make([]packagingItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toPackagingItemDTO(item))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (s *server) handlePackagingItemCreate(w http.ResponseWriter, r *http.Request) {
	var dto packagingItemDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := dto.validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id, err := s.store.CreatePackagingItem(dto.toModel())
	if err != nil {
		respondStoreError(w, err, "packaging item")
		return
	}
	dto.ID = id
	respondJSON(w, http.StatusCreated, dto)
}

func (s *server) handlePackagingItemUpdate(w http.ResponseWriter, r *http.Request) {
	var dto packagingItemDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dto.ID = chi.URLParam(r, "id")
	if err := dto.validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.store.UpdatePackagingItem(dto.toModel()); err != nil {
		respondStoreError(w, err, "packaging item")
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

func (s *server) handlePackagingItemDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePackagingItem(chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err, "packaging item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handlePackagingSetsList(w http.ResponseWriter, r *http.Request) {
	sets, err := s.store.ListPackagingSets()
	if err != nil {
		respondStoreError(w, err, "packaging sets")
		return
	}
	dtos := make([]packagingSetDTO, 0, len(sets))
	for _, set := range sets {
		dtos = append(dtos, toPackagingSetDTO(set))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (s *server) handlePackagingSetCreate(w http.ResponseWriter, r *http.Request) {
	var dto packagingSetDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := dto.validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id, err := s.store.SavePackagingSet(dto.toModel())
	if err != nil {
		respondStoreError(w, err, "packaging set")
		return
	}
	dto.ID = id
	respondJSON(w, http.StatusCreated, dto)
}

func (s *server) handlePackagingSetUpdate(w http.ResponseWriter, r *http.Request) {
	var dto packagingSetDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dto.ID = chi.URLParam(r, "id")
	if err := dto.validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if _, err := s.store.SavePackagingSet(dto.toModel()); err != nil {
		respondStoreError(w, err, "packaging set")
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

func (s *server) handlePackagingSetDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == seed.DefaultPackagingSetID {
		respondError(w, http.StatusConflict, "the default packaging set cannot be deleted")
		return
	}
	if err := s.store.DeletePackagingSet(id); err != nil {
		respondStoreError(w, err, "packaging set")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
