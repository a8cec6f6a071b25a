package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *server) handleRecipesList(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.store.ListRecipes()
	if err != nil {
		respondStoreError(w, err, "recipes")
		return
	}
	dtos := make([]recipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		dtos = append(dtos, toRecipeDTO(recipe))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (s *server) handleRecipeCreate(w http.ResponseWriter, r *http.Request) {
	var dto recipeDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := dto.validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id, err := s.store.SaveRecipe(dto.toModel())
	if err != nil {
		respondStoreError(w, err, "recipe")
		return
	}
	dto.ID = id
	respondJSON(w, http.StatusCreated, dto)
}

func (s *server) handleRecipeUpdate(w http.ResponseWriter, r *http.Request) {
	var dto recipeDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dto.ID = chi.URLParam(r, "id")
	if err := dto.validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if _, err := s.store.SaveRecipe(dto.toModel()); err != nil {
		respondStoreError(w, err, "recipe")
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

func (s *server) handleRecipeDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteRecipe(chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err, "recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
