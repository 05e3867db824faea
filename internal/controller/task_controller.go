// internal/controller/task_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/leadpilot/leadpilot-backend/internal/model"
	"github.com/leadpilot/leadpilot-backend/internal/queue"
	"github.com/leadpilot/leadpilot-backend/internal/service"
)

type TaskController struct {
	Queue    queue.TaskQueue
	Consumer *service.TaskConsumer
}

func (c *TaskController) PushTask(w http.ResponseWriter, r *http.Request) {
	var task model.OutreachTask
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if task.Type == "" {
		http.Error(w, "type is required", http.StatusBadRequest)
		return
	}
	if task.CampaignID == 0 {
		http.Error(w, "campaign_id is required", http.StatusBadRequest)
		return
	}

	if err := c.Queue.Push(r.Context(), &task); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "task enqueued",
		"task_id": task.ID,
	})
}

// ProcessTask pops and runs a single task. The surrounding system polls
// this endpoint; an empty queue is a normal 200 with processed=false.
func (c *TaskController) ProcessTask(w http.ResponseWriter, r *http.Request) {
	result, err := c.Consumer.ProcessNext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
