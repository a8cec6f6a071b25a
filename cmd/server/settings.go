package main

import (
	"net/http"
)

func (s *server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.Settings()
	if err != nil {
		respondStoreError(w, err, "settings")
		return
	}
	respondJSON(w, http.StatusOK, toSettingsDTO(settings))
}

func (s *server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var dto settingsDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := dto.validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.store.UpdateSettings(dto.toModel()); err != nil {
		respondStoreError(w, err, "settings")
		return
	}
	respondJSON(w, http.StatusOK, dto)
}

func (s *server) handleCostModelGet(w http.ResponseWriter, r *http.Request) {
	cm, err := s.store.CostModel()
	if err != nil {
		respondStoreError(w, err, "cost model")
		return
	}
	respondJSON(w, http.StatusOK, toCostModelDTO(cm))
}

// Cost model values are stored as given. Non-finite amounts count as zero and
// unusable volume assumptions surface as an error when a cost is computed, so
// a half-filled model can be saved while the operator is still editing it.
func (s *server) handleCostModelUpdate(w http.ResponseWriter, r *http.Request) {
	var dto costModelDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.UpdateCostModel(dto.toModel()); err != nil {
		respondStoreError(w, err, "cost model")
		return
	}
	respondJSON(w, http.StatusOK, dto)
}
