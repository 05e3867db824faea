package repository

import (
	"database/sql"

	"github.com/leadpilot/leadpilot-backend/internal/model"
)

type MessagingSettingsRepositoryInterface interface {
	// GetByCampaign returns nil when no settings row exists yet.
	GetByCampaign(campaignID int) (*model.MessagingSettings, error)
	Upsert(s *model.MessagingSettings) error
}

type MessagingSettingsRepository struct {
	DB *sql.DB
}

func (r *MessagingSettingsRepository) GetByCampaign(campaignID int) (*model.MessagingSettings, error) {
	query := `
        SELECT id, campaign_id, start_time, end_time, max_per_day, delay_minutes, timezone, updated_at
        FROM messaging_settings WHERE campaign_id=$1
    `
	var s model.MessagingSettings
	err := r.DB.QueryRow(query, campaignID).Scan(&s.ID, &s.CampaignID, &s.StartTime, &s.EndTime, &s.MaxPerDay, &s.DelayMinutes, &s.Timezone, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *MessagingSettingsRepository) Upsert(s *model.MessagingSettings) error {
	query := `
        INSERT INTO messaging_settings (campaign_id, start_time, end_time, max_per_day, delay_minutes, timezone, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        ON CONFLICT (campaign_id) DO UPDATE
        SET start_time=EXCLUDED.start_time,
            end_time=EXCLUDED.end_time,
            max_per_day=EXCLUDED.max_per_day,
            delay_minutes=EXCLUDED.delay_minutes,
            timezone=EXCLUDED.timezone,
            updated_at=NOW()
        RETURNING id
    `
	return r.DB.QueryRow(query, s.CampaignID, s.StartTime, s.EndTime, s.MaxPerDay, s.DelayMinutes, s.Timezone).Scan(&s.ID)
}

var _ MessagingSettingsRepositoryInterface = (*MessagingSettingsRepository)(nil)
