package repository

import (
	"database/sql"
	"time"

	"github.com/leadpilot/leadpilot-backend/internal/model"
)

type LeadRepositoryInterface interface {
	Create(lead *model.Lead) error
	GetByID(id int) (*model.Lead, error)
	ListByCampaign(campaignID int) ([]model.Lead, error)
	// ExistsByProfileURL checks across all campaigns of the client so the
	// same person scraped twice is only stored once.
	ExistsByProfileURL(clientID int, profileURL string) (bool, error)
}

type LeadRepository struct {
	DB *sql.DB
}

func (r *LeadRepository) Create(lead *model.Lead) error {
	lead.CreatedAt = time.Now()
	query := `
        INSERT INTO leads (campaign_id, profile_url, first_name, last_name, company, title, location, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	return r.DB.QueryRow(
		query,
		lead.CampaignID,
		lead.ProfileURL,
		lead.FirstName,
		lead.LastName,
		lead.Company,
		lead.Title,
		lead.Location,
		lead.CreatedAt,
	).Scan(&lead.ID)
}

func (r *LeadRepository) GetByID(id int) (*model.Lead, error) {
	query := `
        SELECT id, campaign_id, profile_url, first_name, last_name, company, title, location, created_at
        FROM leads WHERE id=$1
    `
	var l model.Lead
	err := r.DB.QueryRow(query, id).Scan(&l.ID, &l.CampaignID, &l.ProfileURL, &l.FirstName, &l.LastName, &l.Company, &l.Title, &l.Location, &l.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *LeadRepository) ListByCampaign(campaignID int) ([]model.Lead, error) {
	query := `
        SELECT id, campaign_id, profile_url, first_name, last_name, company, title, location, created_at
        FROM leads WHERE campaign_id=$1 ORDER BY id
    `
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.CampaignID, &l.ProfileURL, &l.FirstName, &l.LastName, &l.Company, &l.Title, &l.Location, &l.CreatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, nil
}

func (r *LeadRepository) ExistsByProfileURL(clientID int, profileURL string) (bool, error) {
	query := `
        SELECT 1 FROM leads l
        JOIN campaigns c ON c.id = l.campaign_id
        WHERE c.client_id = $1 AND l.profile_url = $2
        LIMIT 1
    `
	var tmp int
	err := r.DB.QueryRow(query, clientID, profileURL).Scan(&tmp)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var _ LeadRepositoryInterface = (*LeadRepository)(nil)
