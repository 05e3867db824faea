// internal/handler/settings_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/leadpilot-backend/internal/model"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/scheduler"
)

type SettingsHandler struct {
	SettingsRepo repository.MessagingSettingsRepositoryInterface
	StepRepo     repository.SequenceStepRepositoryInterface
}

func (h *SettingsHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	settings, err := h.SettingsRepo.GetByCampaign(campaignID)
	if err != nil {
		http.Error(w, "failed to fetch settings: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if settings == nil {
		http.Error(w, "no messaging settings for campaign", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

func (h *SettingsHandler) UpsertSettingsHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var payload struct {
		StartTime    string `json:"start_time"`
		EndTime      string `json:"end_time"`
		MaxPerDay    int    `json:"max_per_day"`
		DelayMinutes int    `json:"delay_minutes"`
		Timezone     string `json:"timezone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Reject malformed windows on write so scheduling never sees them.
	if _, err := scheduler.NewWindow(payload.StartTime, payload.EndTime); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.MaxPerDay <= 0 {
		http.Error(w, "max_per_day must be positive", http.StatusBadRequest)
		return
	}
	if payload.DelayMinutes <= 0 {
		http.Error(w, "delay_minutes must be positive", http.StatusBadRequest)
		return
	}

	settings := &model.MessagingSettings{
		CampaignID:   campaignID,
		StartTime:    payload.StartTime,
		EndTime:      payload.EndTime,
		MaxPerDay:    payload.MaxPerDay,
		DelayMinutes: payload.DelayMinutes,
		Timezone:     payload.Timezone,
	}
	if err := h.SettingsRepo.Upsert(settings); err != nil {
		http.Error(w, "failed to save settings: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

func (h *SettingsHandler) GetSequenceHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	steps, err := h.StepRepo.ListByCampaign(campaignID)
	if err != nil {
		http.Error(w, "failed to fetch sequence: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": steps})
}

func (h *SettingsHandler) ReplaceSequenceHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Steps []model.SequenceStep `json:"steps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	for _, s := range payload.Steps {
		if s.StepOrder < 1 {
			http.Error(w, "step_order must be 1 or greater", http.StatusBadRequest)
			return
		}
		if s.DelayDays < 0 {
			http.Error(w, "delay_days cannot be negative", http.StatusBadRequest)
			return
		}
	}

	if err := h.StepRepo.ReplaceForCampaign(campaignID, payload.Steps); err != nil {
		http.Error(w, "failed to save sequence: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": payload.Steps})
}
