// internal/handler/search_url_handler.go
package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/leadpilot-backend/internal/model"
	"github.com/leadpilot/leadpilot-backend/internal/queue"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
)

type SearchURLHandler struct {
	Repo  repository.SearchURLRepositoryInterface
	Queue queue.TaskQueue
}

// CreateSearchURLHandler stores a new Sales Navigator search and enqueues
// the scrape task for it in one go.
func (h *SearchURLHandler) CreateSearchURLHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	searchURL := &model.SearchURL{
		CampaignID: campaignID,
		URL:        payload.URL,
		Status:     "pending",
	}
	if err := h.Repo.Create(searchURL); err != nil {
		http.Error(w, "failed to create search URL: "+err.Error(), http.StatusInternalServerError)
		return
	}

	task := &model.OutreachTask{
		Type:        model.TaskScrapeProfiles,
		CampaignID:  campaignID,
		SearchURLID: searchURL.ID,
	}
	if err := h.Queue.Push(r.Context(), task); err != nil {
		// The row stays pending; an operator can re-enqueue later.
		log.Println("⚠️ failed to enqueue scrape task for search URL", searchURL.ID, ":", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"search_url": searchURL,
		"task_id":    task.ID,
	})
}

func (h *SearchURLHandler) ListSearchURLsHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	urls, err := h.Repo.ListByCampaign(campaignID)
	if err != nil {
		http.Error(w, "failed to fetch search URLs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": urls})
}
