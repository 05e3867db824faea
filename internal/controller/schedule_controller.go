// internal/controller/schedule_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/leadpilot-backend/internal/service"
)

type ScheduleController struct {
	OutreachService *service.OutreachService
}

// scheduledEntry is the wire form of one planned send, instant as ISO-8601.
type scheduledEntry struct {
	LeadID      int    `json:"lead_id"`
	ScheduledAt string `json:"scheduled_at"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

func (c *ScheduleController) ScheduleMessages(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		LeadIDs []int  `json:"lead_ids"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	entries, err := c.OutreachService.ScheduleMessages(r.Context(), campaignID, body.LeadIDs, body.Subject, body.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]scheduledEntry, len(entries))
	for i, e := range entries {
		out[i] = scheduledEntry{
			LeadID:      e.LeadID,
			ScheduledAt: e.ScheduledAt.Format(time.RFC3339),
			Subject:     e.Subject,
			Message:     e.Message,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"campaign_id":        campaignID,
		"messages_scheduled": len(out),
		"messages":           out,
	})
}

func (c *ScheduleController) DispatchDue(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	dispatched, err := c.OutreachService.DispatchDue(r.Context(), campaignID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"campaign_id": campaignID,
		"dispatched":  dispatched,
	})
}
