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

// CookieChecker verifies that a campaign's stored session cookies still
// authenticate against Sales Navigator.
type CookieChecker interface {
	Validate(ctx context.Context, cookies model.CampaignCookies) (bool, error)
}

type HTTPCookieChecker struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPCookieChecker(baseURL string) *HTTPCookieChecker {
	return &HTTPCookieChecker{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: time.Minute},
	}
}

func (c *HTTPCookieChecker) Validate(ctx context.Context, cookies model.CampaignCookies) (bool, error) {
	payload, err := json.Marshal(map[string]string{
		"li_at":    cookies.LiAt,
		"jsession": cookies.JSession,
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/validate-cookies", bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return false, appErrors.NewExternalService("cookie check", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, appErrors.NewExternalService("cookie check", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, appErrors.NewExternalService("cookie check", fmt.Errorf("bad response shape: %w", err))
	}
	return body.Valid, nil
}

var _ CookieChecker = (*HTTPCookieChecker)(nil)
