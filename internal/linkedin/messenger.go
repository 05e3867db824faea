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

// Messenger delivers one already-composed message to a profile URL.
type Messenger interface {
	SendMessage(ctx context.Context, profileURL, subject, content string, cookies model.CampaignCookies) (*SendResult, error)
}

type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HTTPMessenger calls the automation service's send endpoint.
type HTTPMessenger struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPMessenger(baseURL string) *HTTPMessenger {
	return &HTTPMessenger{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

func (m *HTTPMessenger) SendMessage(ctx context.Context, profileURL, subject, content string, cookies model.CampaignCookies) (*SendResult, error) {
	payload, err := json.Marshal(map[string]string{
		"profile_url": profileURL,
		"subject":     subject,
		"message":     content,
		"li_at":       cookies.LiAt,
		"jsession":    cookies.JSession,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/send-message", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return nil, appErrors.NewExternalService("messenger", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.NewExternalService("messenger", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var result SendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, appErrors.NewExternalService("messenger", fmt.Errorf("bad response shape: %w", err))
	}
	return &result, nil
}

var _ Messenger = (*HTTPMessenger)(nil)
