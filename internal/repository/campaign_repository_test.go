package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	appErrors "github.com/leadpilot/leadpilot-backend/internal/errors"
	"github.com/leadpilot/leadpilot-backend/internal/model"
)

func setupMock(t *testing.T) (*CampaignRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &CampaignRepository{DB: db}, mock
}

func TestCampaignGetByID(t *testing.T) {
	repo, mock := setupMock(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "client_id", "name", "status", "landing_page", "li_at_cookie", "jsession_cookie", "created_at", "updated_at"}).
		AddRow(7, 2, "Q3 outbound", "active", "https://pages.example/q3", "liat", "js", now, nil)
	mock.ExpectQuery("SELECT id, client_id, name, status").WithArgs(7).WillReturnRows(rows)

	c, err := repo.GetByID(7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if c.Name != "Q3 outbound" || c.ClientID != 2 || c.Status != "active" {
		t.Errorf("GetByID = %+v", c)
	}
}

func TestCampaignGetByIDNotFound(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery("SELECT id, client_id, name, status").WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(99)
	var notFound *appErrors.ErrCampaignNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("GetByID error = %v, want ErrCampaignNotFound", err)
	}
}

func TestCampaignGetCookies(t *testing.T) {
	repo, mock := setupMock(t)

	rows := sqlmock.NewRows([]string{"li_at_cookie", "jsession_cookie"}).AddRow("liat-value", "js-value")
	mock.ExpectQuery("SELECT li_at_cookie, jsession_cookie").WithArgs(3).WillReturnRows(rows)

	cookies, err := repo.GetCookies(3)
	if err != nil {
		t.Fatalf("GetCookies: %v", err)
	}
	if cookies != (model.CampaignCookies{LiAt: "liat-value", JSession: "js-value"}) {
		t.Errorf("GetCookies = %+v", cookies)
	}
}

func TestCampaignGetCookiesMissing(t *testing.T) {
	repo, mock := setupMock(t)

	rows := sqlmock.NewRows([]string{"li_at_cookie", "jsession_cookie"}).AddRow("", "")
	mock.ExpectQuery("SELECT li_at_cookie, jsession_cookie").WithArgs(3).WillReturnRows(rows)

	_, err := repo.GetCookies(3)
	var notFound *appErrors.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("GetCookies error = %v, want ErrNotFound", err)
	}
}

func TestCampaignGetStats(t *testing.T) {
	repo, mock := setupMock(t)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("pending", 4).
		AddRow("sent", 10).
		AddRow("failed", 1)
	mock.ExpectQuery("SELECT status, COUNT").WithArgs(7).WillReturnRows(rows)

	stats, err := repo.GetStats(7)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats["pending"] != 4 || stats["sent"] != 10 || stats["failed"] != 1 || stats["total"] != 15 {
		t.Errorf("GetStats = %v", stats)
	}
	if stats["queued"] != 0 {
		t.Errorf("missing statuses should default to 0, got %v", stats)
	}
}
