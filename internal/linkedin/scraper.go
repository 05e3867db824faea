package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	appErrors "github.com/leadpilot/leadpilot-backend/internal/errors"
	"github.com/leadpilot/leadpilot-backend/internal/model"
)

// ProfileScraper runs a Sales Navigator search and returns the raw
// profiles it found. The heavy lifting (headless browser, selectors)
// lives in a separate automation service; this is only the client.
type ProfileScraper interface {
	ScrapeProfiles(ctx context.Context, searchURL string, cookies model.CampaignCookies) ([]ScrapedProfile, error)
}

// ScrapedProfile is one raw result row from the automation service.
type ScrapedProfile struct {
	ProfileURL string `json:"profile_url"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Company    string `json:"company"`
	Title      string `json:"title"`
	Location   string `json:"location"`
}

// HTTPScraper talks to the browser-automation service over HTTP.
type HTTPScraper struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPScraper(baseURL string) *HTTPScraper {
	return &HTTPScraper{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

func (s *HTTPScraper) ScrapeProfiles(ctx context.Context, searchURL string, cookies model.CampaignCookies) ([]ScrapedProfile, error) {
	payload, err := json.Marshal(map[string]string{
		"search_url": searchURL,
		"li_at":      cookies.LiAt,
		"jsession":   cookies.JSession,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/scrape", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, appErrors.NewExternalService("scraper", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.NewExternalService("scraper", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body struct {
		Profiles []ScrapedProfile `json:"profiles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, appErrors.NewExternalService("scraper", fmt.Errorf("bad response shape: %w", err))
	}
	return body.Profiles, nil
}

var _ ProfileScraper = (*HTTPScraper)(nil)
