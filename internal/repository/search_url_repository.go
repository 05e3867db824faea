package repository

import (
	"database/sql"
	"time"

	"github.com/leadpilot/leadpilot-backend/internal/model"
)

type SearchURLRepositoryInterface interface {
	Create(s *model.SearchURL) error
	GetByID(id int) (*model.SearchURL, error)
	ListByCampaign(campaignID int) ([]model.SearchURL, error)
	UpdateStatus(id int, status string) error
	// SetResult records the terminal outcome of a scrape run.
	SetResult(id int, status string, leadsFound int) error
}

type SearchURLRepository struct {
	DB *sql.DB
}

func (r *SearchURLRepository) Create(s *model.SearchURL) error {
	s.CreatedAt = time.Now()
	if s.Status == "" {
		s.Status = "pending"
	}
	query := `
        INSERT INTO search_urls (campaign_id, url, status, leads_found, created_at)
        VALUES ($1, $2, $3, 0, $4)
        RETURNING id
    `
	return r.DB.QueryRow(query, s.CampaignID, s.URL, s.Status, s.CreatedAt).Scan(&s.ID)
}

func (r *SearchURLRepository) GetByID(id int) (*model.SearchURL, error) {
	query := `
        SELECT id, campaign_id, url, status, leads_found, created_at, updated_at
        FROM search_urls WHERE id=$1
    `
	var s model.SearchURL
	err := r.DB.QueryRow(query, id).Scan(&s.ID, &s.CampaignID, &s.URL, &s.Status, &s.LeadsFound, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SearchURLRepository) ListByCampaign(campaignID int) ([]model.SearchURL, error) {
	query := `
        SELECT id, campaign_id, url, status, leads_found, created_at, updated_at
        FROM search_urls WHERE campaign_id=$1 ORDER BY id DESC
    `
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := []model.SearchURL{}
	for rows.Next() {
		var s model.SearchURL
		if err := rows.Scan(&s.ID, &s.CampaignID, &s.URL, &s.Status, &s.LeadsFound, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		urls = append(urls, s)
	}
	return urls, nil
}

func (r *SearchURLRepository) UpdateStatus(id int, status string) error {
	query := `UPDATE search_urls SET status=$1, updated_at=NOW() WHERE id=$2`
	_, err := r.DB.Exec(query, status, id)
	return err
}

func (r *SearchURLRepository) SetResult(id int, status string, leadsFound int) error {
	query := `UPDATE search_urls SET status=$1, leads_found=$2, updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, status, leadsFound, id)
	return err
}

var _ SearchURLRepositoryInterface = (*SearchURLRepository)(nil)
