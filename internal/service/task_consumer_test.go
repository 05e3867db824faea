package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	appErrors "github.com/leadpilot/leadpilot-backend/internal/errors"
	"github.com/leadpilot/leadpilot-backend/internal/linkedin"
	"github.com/leadpilot/leadpilot-backend/internal/model"
)

// ---- fakes ----

type fakeQueue struct {
	tasks  []*model.OutreachTask
	popErr error
}

func (q *fakeQueue) Push(ctx context.Context, task *model.OutreachTask) error {
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *fakeQueue) Pop(ctx context.Context) (*model.OutreachTask, error) {
	if q.popErr != nil {
		err := q.popErr
		q.popErr = nil
		return nil, err
	}
	if len(q.tasks) == 0 {
		return nil, nil
	}
	t := q.tasks[0]
	q.tasks = q.tasks[1:]
	return t, nil
}

type fakeCampaignRepo struct {
	campaigns map[int]*model.Campaign
	cookies   map[int]model.CampaignCookies
	statuses  map[int]string
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{
		campaigns: map[int]*model.Campaign{},
		cookies:   map[int]model.CampaignCookies{},
		statuses:  map[int]string{},
	}
}

func (r *fakeCampaignRepo) Create(c *model.Campaign) error { r.campaigns[c.ID] = c; return nil }
func (r *fakeCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	return c, nil
}
func (r *fakeCampaignRepo) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	return nil, 0, nil
}
func (r *fakeCampaignRepo) UpdateStatus(id int, status string) error {
	r.statuses[id] = status
	return nil
}
func (r *fakeCampaignRepo) UpdateCookies(id int, cookies model.CampaignCookies) error {
	r.cookies[id] = cookies
	return nil
}
func (r *fakeCampaignRepo) GetCookies(id int) (model.CampaignCookies, error) {
	c, ok := r.cookies[id]
	if !ok {
		return model.CampaignCookies{}, appErrors.NewNotFound("cookies for campaign", id)
	}
	return c, nil
}
func (r *fakeCampaignRepo) GetStats(id int) (map[string]int, error) { return nil, nil }

type fakeLeadRepo struct {
	leads  map[int]*model.Lead
	byURL  map[string]bool
	nextID int
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: map[int]*model.Lead{}, byURL: map[string]bool{}, nextID: 1}
}

func (r *fakeLeadRepo) Create(l *model.Lead) error {
	l.ID = r.nextID
	r.nextID++
	r.leads[l.ID] = l
	r.byURL[l.ProfileURL] = true
	return nil
}
func (r *fakeLeadRepo) GetByID(id int) (*model.Lead, error) { return r.leads[id], nil }
func (r *fakeLeadRepo) ListByCampaign(campaignID int) ([]model.Lead, error) { return nil, nil }
func (r *fakeLeadRepo) ExistsByProfileURL(clientID int, url string) (bool, error) {
	return r.byURL[url], nil
}

type fakeSearchURLRepo struct {
	urls     map[int]*model.SearchURL
	statuses []string
}

func (r *fakeSearchURLRepo) Create(s *model.SearchURL) error { r.urls[s.ID] = s; return nil }
func (r *fakeSearchURLRepo) GetByID(id int) (*model.SearchURL, error) { return r.urls[id], nil }
func (r *fakeSearchURLRepo) ListByCampaign(campaignID int) ([]model.SearchURL, error) {
	return nil, nil
}
func (r *fakeSearchURLRepo) UpdateStatus(id int, status string) error {
	r.statuses = append(r.statuses, status)
	if s, ok := r.urls[id]; ok {
		s.Status = status
	}
	return nil
}
func (r *fakeSearchURLRepo) SetResult(id int, status string, leadsFound int) error {
	r.statuses = append(r.statuses, status)
	if s, ok := r.urls[id]; ok {
		s.Status = status
		s.LeadsFound = leadsFound
	}
	return nil
}

type fakeScraper struct {
	profiles []linkedin.ScrapedProfile
	err      error
}

func (s *fakeScraper) ScrapeProfiles(ctx context.Context, url string, cookies model.CampaignCookies) ([]linkedin.ScrapedProfile, error) {
	return s.profiles, s.err
}

type fakeChecker struct {
	valid bool
	err   error
}

func (c *fakeChecker) Validate(ctx context.Context, cookies model.CampaignCookies) (bool, error) {
	return c.valid, c.err
}

type fakeMessenger struct {
	result *linkedin.SendResult
	err    error
	sentTo string
	body   string
}

func (m *fakeMessenger) SendMessage(ctx context.Context, profileURL, subject, content string, cookies model.CampaignCookies) (*linkedin.SendResult, error) {
	m.sentTo = profileURL
	m.body = content
	return m.result, m.err
}

func newConsumer() (*TaskConsumer, *fakeQueue, *fakeCampaignRepo, *fakeLeadRepo, *fakeSearchURLRepo) {
	q := &fakeQueue{}
	campaigns := newFakeCampaignRepo()
	leads := newFakeLeadRepo()
	urls := &fakeSearchURLRepo{urls: map[int]*model.SearchURL{}}

	c := &TaskConsumer{
		Queue:         q,
		CampaignRepo:  campaigns,
		LeadRepo:      leads,
		SearchURLRepo: urls,
	}
	return c, q, campaigns, leads, urls
}

// ---- tests ----

func TestProcessNextEmptyQueue(t *testing.T) {
	c, _, _, _, _ := newConsumer()

	result, err := c.ProcessNext(context.Background())
	if err != nil {
		t.Fatalf("ProcessNext: %v", err)
	}
	if result.Processed {
		t.Error("empty queue should report processed=false")
	}
}

func TestProcessNextUnknownType(t *testing.T) {
	c, q, _, _, _ := newConsumer()
	q.Push(context.Background(), &model.OutreachTask{ID: "t1", Type: "not-registered", CampaignID: 1})

	_, err := c.ProcessNext(context.Background())
	var unknown *appErrors.ErrUnknownTaskType
	if !errors.As(err, &unknown) {
		t.Fatalf("ProcessNext error = %v, want ErrUnknownTaskType", err)
	}

	// The consumer survives: the next call sees an empty queue.
	result, err := c.ProcessNext(context.Background())
	if err != nil || result.Processed {
		t.Errorf("consumer should keep working after an unknown type, got (%+v, %v)", result, err)
	}
}

func TestProcessNextMissingCampaignID(t *testing.T) {
	c, q, _, _, _ := newConsumer()
	q.Push(context.Background(), &model.OutreachTask{ID: "t1", Type: model.TaskCookieValidation})

	_, err := c.ProcessNext(context.Background())
	var validation *appErrors.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("ProcessNext error = %v, want ErrValidation", err)
	}
}

func TestProcessNextCorruptPayloadIsTerminal(t *testing.T) {
	c, q, _, _, _ := newConsumer()
	q.popErr = fmt.Errorf("failed to parse task payload")

	if _, err := c.ProcessNext(context.Background()); err == nil {
		t.Fatal("corrupt payload should surface an error")
	}

	// Nothing was re-enqueued.
	result, err := c.ProcessNext(context.Background())
	if err != nil || result.Processed {
		t.Errorf("queue should be empty after terminal failure, got (%+v, %v)", result, err)
	}
}

func TestScrapeTaskStoresNewLeadsOnly(t *testing.T) {
	c, q, campaigns, leads, urls := newConsumer()

	campaigns.campaigns[5] = &model.Campaign{ID: 5, ClientID: 9}
	campaigns.cookies[5] = model.CampaignCookies{LiAt: "a", JSession: "b"}
	urls.urls[3] = &model.SearchURL{ID: 3, CampaignID: 5, URL: "https://linkedin.com/sales/search/x", Status: "pending"}

	// One of the three profiles is already known for this client.
	leads.byURL["https://linkedin.com/in/known"] = true
	c.Scraper = &fakeScraper{profiles: []linkedin.ScrapedProfile{
		{ProfileURL: "https://linkedin.com/in/alice", FirstName: "Alice", Company: "Acme"},
		{ProfileURL: "https://linkedin.com/in/known", FirstName: "Bob"},
		{ProfileURL: "https://linkedin.com/in/carol", FirstName: "Carol"},
	}}

	q.Push(context.Background(), &model.OutreachTask{ID: "t1", Type: model.TaskScrapeProfiles, CampaignID: 5, SearchURLID: 3})

	result, err := c.ProcessNext(context.Background())
	if err != nil {
		t.Fatalf("ProcessNext: %v", err)
	}
	if !result.Processed {
		t.Error("scrape task should be processed")
	}
	if len(leads.leads) != 2 {
		t.Errorf("stored %d leads, want 2", len(leads.leads))
	}
	if urls.urls[3].Status != "completed" || urls.urls[3].LeadsFound != 2 {
		t.Errorf("search URL = %+v, want completed with 2 leads", urls.urls[3])
	}
	// pending -> in_progress -> completed
	if len(urls.statuses) != 2 || urls.statuses[0] != "in_progress" || urls.statuses[1] != "completed" {
		t.Errorf("status transitions = %v", urls.statuses)
	}
}

func TestScrapeTaskFailureMarksSearchURL(t *testing.T) {
	c, q, campaigns, _, urls := newConsumer()

	campaigns.campaigns[5] = &model.Campaign{ID: 5, ClientID: 9}
	campaigns.cookies[5] = model.CampaignCookies{LiAt: "a"}
	urls.urls[3] = &model.SearchURL{ID: 3, CampaignID: 5, URL: "u", Status: "pending"}
	c.Scraper = &fakeScraper{err: appErrors.NewExternalService("scraper", fmt.Errorf("timeout"))}

	q.Push(context.Background(), &model.OutreachTask{ID: "t1", Type: model.TaskScrapeProfiles, CampaignID: 5, SearchURLID: 3})

	_, err := c.ProcessNext(context.Background())
	var external *appErrors.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("ProcessNext error = %v, want ErrExternalService", err)
	}
	if urls.urls[3].Status != "failed" {
		t.Errorf("search URL status = %s, want failed", urls.urls[3].Status)
	}
}

func TestCookieValidationUpdatesCampaignStatus(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		valid      bool
		wantStatus string
	}{
		{true, "active"},
		{false, "cookies_invalid"},
	} {
		c, q, campaigns, _, _ := newConsumer()
		campaigns.campaigns[2] = &model.Campaign{ID: 2}
		campaigns.cookies[2] = model.CampaignCookies{LiAt: "x"}
		c.Checker = &fakeChecker{valid: tc.valid}

		q.Push(ctx, &model.OutreachTask{ID: "t", Type: model.TaskCookieValidation, CampaignID: 2})

		if _, err := c.ProcessNext(ctx); err != nil {
			t.Fatalf("ProcessNext: %v", err)
		}
		if campaigns.statuses[2] != tc.wantStatus {
			t.Errorf("campaign status = %s, want %s", campaigns.statuses[2], tc.wantStatus)
		}
	}
}

func TestSendMessageTask(t *testing.T) {
	c, q, campaigns, leads, _ := newConsumer()

	campaigns.campaigns[4] = &model.Campaign{ID: 4, LandingPage: "https://pages.example/acme"}
	campaigns.cookies[4] = model.CampaignCookies{LiAt: "x"}
	leads.leads[8] = &model.Lead{ID: 8, ProfileURL: "https://linkedin.com/in/dora", FirstName: "Dora", Company: "Acme"}

	m := &fakeMessenger{result: &linkedin.SendResult{Success: true, MessageID: "m-1"}}
	c.Messenger = m

	q.Push(context.Background(), &model.OutreachTask{
		ID: "t", Type: model.TaskSendMessages, CampaignID: 4, LeadID: 8,
		Subject: "Hi {{first_name}}",
		Message: "Saw {{company_name}} — take a look: {{landingpage}}",
	})

	result, err := c.ProcessNext(context.Background())
	if err != nil {
		t.Fatalf("ProcessNext: %v", err)
	}
	if !result.Processed {
		t.Error("send task should be processed")
	}
	if m.sentTo != "https://linkedin.com/in/dora" {
		t.Errorf("sent to %s", m.sentTo)
	}
	if m.body != "Saw Acme — take a look: https://pages.example/acme" {
		t.Errorf("resolved body = %q", m.body)
	}
}

func TestSendMessageTaskDeliveryFailure(t *testing.T) {
	c, q, campaigns, leads, _ := newConsumer()

	campaigns.campaigns[4] = &model.Campaign{ID: 4}
	campaigns.cookies[4] = model.CampaignCookies{LiAt: "x"}
	leads.leads[8] = &model.Lead{ID: 8, ProfileURL: "u"}
	c.Messenger = &fakeMessenger{result: &linkedin.SendResult{Success: false, Error: "recipient unreachable"}}

	q.Push(context.Background(), &model.OutreachTask{ID: "t", Type: model.TaskSendMessages, CampaignID: 4, LeadID: 8, Message: "hi"})

	_, err := c.ProcessNext(context.Background())
	var external *appErrors.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("ProcessNext error = %v, want ErrExternalService", err)
	}
}

func TestResolveMarkersEmptyValues(t *testing.T) {
	got := ResolveMarkers("Hi {{first_name}} at {{company_name}}", map[string]string{
		"first_name":   "Ann",
		"company_name": "",
	})
	want := "Hi Ann at <unknown>"
	if got != want {
		t.Errorf("ResolveMarkers = %q, want %q", got, want)
	}
}
