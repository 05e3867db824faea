// internal/errors/errors.go
package appErrors

import "fmt"

// ErrValidation signals a missing or malformed required field. Surfaced
// immediately to the caller, never retried.
type ErrValidation struct {
	Field  string
	Reason string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) error {
	return &ErrValidation{Field: field, Reason: reason}
}

// ErrNotFound signals a referenced record that does not exist.
type ErrNotFound struct {
	Entity string
	ID     int
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

func NewNotFound(entity string, id int) error {
	return &ErrNotFound{Entity: entity, ID: id}
}

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrUnknownTaskType signals a dequeued task with no registered handler.
// The task is not re-enqueued.
type ErrUnknownTaskType struct {
	Type string
}

func (e *ErrUnknownTaskType) Error() string {
	return fmt.Sprintf("no handler registered for task type %q", e.Type)
}

func NewUnknownTaskType(taskType string) error {
	return &ErrUnknownTaskType{Type: taskType}
}

// ErrExternalService wraps a failure from the scraper, messenger or
// cookie-check collaborator.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error { return e.Err }

func NewExternalService(service string, err error) error {
	return &ErrExternalService{Service: service, Err: err}
}

// ErrMalformedTime signals a sending-window time string that does not parse
// as HH:MM or HH:MM:SS.
type ErrMalformedTime struct {
	Value string
}

func (e *ErrMalformedTime) Error() string {
	return fmt.Sprintf("malformed time of day %q, want HH:MM or HH:MM:SS", e.Value)
}

func NewMalformedTime(value string) error {
	return &ErrMalformedTime{Value: value}
}
