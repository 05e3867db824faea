package repository

import (
	"database/sql"

	"github.com/leadpilot/leadpilot-backend/internal/model"
)

type SequenceStepRepositoryInterface interface {
	ListByCampaign(campaignID int) ([]model.SequenceStep, error)
	ReplaceForCampaign(campaignID int, steps []model.SequenceStep) error
}

type SequenceStepRepository struct {
	DB *sql.DB
}

func (r *SequenceStepRepository) ListByCampaign(campaignID int) ([]model.SequenceStep, error) {
	query := `
        SELECT id, campaign_id, step_order, delay_days, subject, body
        FROM message_sequence_steps
        WHERE campaign_id=$1
        ORDER BY step_order
    `
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := []model.SequenceStep{}
	for rows.Next() {
		var s model.SequenceStep
		if err := rows.Scan(&s.ID, &s.CampaignID, &s.StepOrder, &s.DelayDays, &s.Subject, &s.Body); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// ReplaceForCampaign swaps a campaign's whole sequence in one transaction.
func (r *SequenceStepRepository) ReplaceForCampaign(campaignID int, steps []model.SequenceStep) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM message_sequence_steps WHERE campaign_id=$1`, campaignID); err != nil {
		return err
	}

	query := `
        INSERT INTO message_sequence_steps (campaign_id, step_order, delay_days, subject, body)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	for i := range steps {
		steps[i].CampaignID = campaignID
		if err := tx.QueryRow(query, campaignID, steps[i].StepOrder, steps[i].DelayDays, steps[i].Subject, steps[i].Body).Scan(&steps[i].ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

var _ SequenceStepRepositoryInterface = (*SequenceStepRepository)(nil)
