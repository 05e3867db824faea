// internal/handler/lead_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/leadpilot-backend/internal/model"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
)

// LeadHandler holds the dependencies for lead-related HTTP handlers
type LeadHandler struct {
	Repo repository.LeadRepositoryInterface
}

func (h *LeadHandler) CreateLeadHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CampaignID int    `json:"campaign_id"`
		ProfileURL string `json:"profile_url"`
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		Company    string `json:"company"`
		Title      string `json:"title"`
		Location   string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.CampaignID == 0 || payload.ProfileURL == "" {
		http.Error(w, "campaign_id and profile_url are required", http.StatusBadRequest)
		return
	}

	lead := &model.Lead{
		CampaignID: payload.CampaignID,
		ProfileURL: payload.ProfileURL,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Company:    payload.Company,
		Title:      payload.Title,
		Location:   payload.Location,
	}
	if err := h.Repo.Create(lead); err != nil {
		http.Error(w, "failed to create lead: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lead)
}

func (h *LeadHandler) ListLeadsHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	leads, err := h.Repo.ListByCampaign(campaignID)
	if err != nil {
		http.Error(w, "failed to fetch leads: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": leads})
}
