package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	appErrors "github.com/leadpilot/leadpilot-backend/internal/errors"
)

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validation *appErrors.ErrValidation
	var notFound *appErrors.ErrNotFound
	var campaignNotFound *appErrors.ErrCampaignNotFound
	var malformedTime *appErrors.ErrMalformedTime
	var unknownType *appErrors.ErrUnknownTaskType
	var external *appErrors.ErrExternalService

	switch {
	case errors.As(err, &validation), errors.As(err, &malformedTime):
		status = http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &campaignNotFound):
		status = http.StatusNotFound
	case errors.As(err, &unknownType):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &external):
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
