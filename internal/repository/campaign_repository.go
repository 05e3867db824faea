package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/leadpilot/leadpilot-backend/internal/errors"
	"github.com/leadpilot/leadpilot-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	GetByID(id int) (*model.Campaign, error)
	ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error)
	UpdateStatus(campaignID int, status string) error
	UpdateCookies(campaignID int, cookies model.CampaignCookies) error
	GetCookies(campaignID int) (model.CampaignCookies, error)
	GetStats(campaignID int) (map[string]int, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = "draft"
	}
	query := `
        INSERT INTO campaigns (client_id, name, status, landing_page, li_at_cookie, jsession_cookie, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	return r.DB.QueryRow(query, c.ClientID, c.Name, c.Status, c.LandingPage, c.LiAtCookie, c.JSession, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `
        SELECT id, client_id, name, status, landing_page, li_at_cookie, jsession_cookie, created_at, updated_at
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.ClientID, &c.Name, &c.Status, &c.LandingPage, &c.LiAtCookie, &c.JSession, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `SELECT id, client_id, name, status, landing_page, li_at_cookie, jsession_cookie, created_at, updated_at FROM campaigns WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(&c.ID, &c.ClientID, &c.Name, &c.Status, &c.LandingPage, &c.LiAtCookie, &c.JSession, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}

	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	countArgs := []interface{}{}
	if status != "" {
		countQuery += " AND status=$1"
		countArgs = append(countArgs, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *CampaignRepository) UpdateStatus(campaignID int, status string) error {
	query := `UPDATE campaigns SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, time.Now(), campaignID)
	return err
}

func (r *CampaignRepository) UpdateCookies(campaignID int, cookies model.CampaignCookies) error {
	query := `UPDATE campaigns SET li_at_cookie=$1, jsession_cookie=$2, updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, cookies.LiAt, cookies.JSession, campaignID)
	return err
}

func (r *CampaignRepository) GetCookies(campaignID int) (model.CampaignCookies, error) {
	query := `SELECT li_at_cookie, jsession_cookie FROM campaigns WHERE id=$1`
	var cookies model.CampaignCookies
	err := r.DB.QueryRow(query, campaignID).Scan(&cookies.LiAt, &cookies.JSession)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.CampaignCookies{}, appErrors.NewCampaignNotFound(campaignID)
		}
		return model.CampaignCookies{}, err
	}
	if cookies.LiAt == "" {
		return model.CampaignCookies{}, appErrors.NewNotFound("cookies for campaign", campaignID)
	}
	return cookies, nil
}

func (r *CampaignRepository) GetStats(campaignID int) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM scheduled_messages WHERE campaign_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"pending": 0, "queued": 0, "sent": 0, "failed": 0}
	total := 0
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		if _, ok := stats[status]; ok {
			stats[status] = count
		}
		total += count
	}
	stats["total"] = total
	return stats, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
