package repository

import (
	"database/sql"
	"time"

	"github.com/leadpilot/leadpilot-backend/internal/model"
)

type ScheduledMessageRepositoryInterface interface {
	CreateBatch(messages []model.ScheduledMessage) error
	GetByID(id int) (*model.ScheduledMessage, error)
	ListByCampaign(campaignID int) ([]model.ScheduledMessage, error)
	// ListDue returns pending messages whose instant has arrived.
	ListDue(campaignID int, before time.Time, limit int) ([]model.ScheduledMessage, error)
	UpdateStatus(id int, status, lastError string) error
}

type ScheduledMessageRepository struct {
	DB *sql.DB
}

// CreateBatch persists one scheduling run's output atomically: either the
// whole plan lands or none of it does.
func (r *ScheduledMessageRepository) CreateBatch(messages []model.ScheduledMessage) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO scheduled_messages (campaign_id, lead_id, subject, message, scheduled_at, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, 'pending', NOW(), NOW())
        RETURNING id
    `
	for i := range messages {
		m := &messages[i]
		if err := tx.QueryRow(query, m.CampaignID, m.LeadID, m.Subject, m.Message, m.ScheduledAt).Scan(&m.ID); err != nil {
			return err
		}
		m.Status = "pending"
	}

	return tx.Commit()
}

func (r *ScheduledMessageRepository) GetByID(id int) (*model.ScheduledMessage, error) {
	query := `
        SELECT id, campaign_id, lead_id, subject, message, scheduled_at, status, last_error, created_at, updated_at
        FROM scheduled_messages WHERE id=$1
    `
	var m model.ScheduledMessage
	err := r.DB.QueryRow(query, id).Scan(
		&m.ID, &m.CampaignID, &m.LeadID, &m.Subject, &m.Message,
		&m.ScheduledAt, &m.Status, &m.LastError, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *ScheduledMessageRepository) ListByCampaign(campaignID int) ([]model.ScheduledMessage, error) {
	query := `
        SELECT id, campaign_id, lead_id, subject, message, scheduled_at, status, last_error, created_at, updated_at
        FROM scheduled_messages
        WHERE campaign_id=$1
        ORDER BY scheduled_at
    `
	return r.list(query, campaignID)
}

func (r *ScheduledMessageRepository) ListDue(campaignID int, before time.Time, limit int) ([]model.ScheduledMessage, error) {
	query := `
        SELECT id, campaign_id, lead_id, subject, message, scheduled_at, status, last_error, created_at, updated_at
        FROM scheduled_messages
        WHERE campaign_id=$1 AND status='pending' AND scheduled_at <= $2
        ORDER BY scheduled_at
        LIMIT $3
    `
	return r.list(query, campaignID, before, limit)
}

func (r *ScheduledMessageRepository) list(query string, args ...interface{}) ([]model.ScheduledMessage, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.ScheduledMessage{}
	for rows.Next() {
		var m model.ScheduledMessage
		if err := rows.Scan(
			&m.ID, &m.CampaignID, &m.LeadID, &m.Subject, &m.Message,
			&m.ScheduledAt, &m.Status, &m.LastError, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *ScheduledMessageRepository) UpdateStatus(id int, status, lastError string) error {
	query := `UPDATE scheduled_messages SET status=$1, last_error=$2, updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, status, lastError, id)
	return err
}

var _ ScheduledMessageRepositoryInterface = (*ScheduledMessageRepository)(nil)
