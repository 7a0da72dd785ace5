package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/marketjoys/AutomatedResponder/internal/apperrors"
	"github.com/marketjoys/AutomatedResponder/internal/model"
	"github.com/marketjoys/AutomatedResponder/internal/provider"
	"github.com/marketjoys/AutomatedResponder/internal/queue"
	"github.com/marketjoys/AutomatedResponder/internal/service"
)

// In-memory fakes shared by the service tests.

type memCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[string]*model.Campaign
}

func newMemCampaignRepo() *memCampaignRepo {
	return &memCampaignRepo{campaigns: map[string]*model.Campaign{}}
}

func (m *memCampaignRepo) put(c *model.Campaign) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.campaigns[c.ID] = c
}

func (m *memCampaignRepo) statusOf(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.campaigns[id].Status
}

func (m *memCampaignRepo) prospectCountOf(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.campaigns[id].ProspectCount
}

func (m *memCampaignRepo) Create(c *model.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = fmt.Sprintf("camp-%d", len(m.campaigns)+1)
	}
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.CampaignStatusDraft
	}
	m.campaigns[c.ID] = c
	return nil
}

func (m *memCampaignRepo) GetByID(id string) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return nil, apperrors.NewCampaignNotFound(id)
	}
	cp := *c
	return &cp, nil
}

func (m *memCampaignRepo) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []*model.Campaign{}
	for _, c := range m.campaigns {
		cp := *c
		all = append(all, &cp)
	}
	return all, len(all), nil
}

func (m *memCampaignRepo) MarkActive(id string, prospectCount int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok || c.Status == model.CampaignStatusActive {
		return false, nil
	}
	c.Status = model.CampaignStatusActive
	c.ProspectCount = prospectCount
	now := time.Now()
	c.UpdatedAt = &now
	return true, nil
}

func (m *memCampaignRepo) MarkCompleted(id string) error {
	return m.UpdateStatus(id, model.CampaignStatusCompleted)
}

func (m *memCampaignRepo) UpdateStatus(id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.campaigns[id]; ok {
		c.Status = status
	}
	return nil
}

type memTemplateRepo struct {
	mu        sync.Mutex
	templates map[string]*model.Template
}

func newMemTemplateRepo() *memTemplateRepo {
	return &memTemplateRepo{templates: map[string]*model.Template{}}
}

func (m *memTemplateRepo) put(t *model.Template) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[t.ID] = t
}

func (m *memTemplateRepo) Create(t *model.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = fmt.Sprintf("tpl-%d", len(m.templates)+1)
	}
	m.templates[t.ID] = t
	return nil
}

func (m *memTemplateRepo) GetByID(id string) (*model.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, apperrors.NewTemplateNotFound(id)
	}
	return t, nil
}

func (m *memTemplateRepo) ListTemplates() ([]*model.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Template{}
	for _, t := range m.templates {
		out = append(out, t)
	}
	return out, nil
}

type memProspectRepo struct {
	mu          sync.Mutex
	prospects   map[string]*model.Prospect
	lists       map[string][]string
	listErr     map[string]error
	lastContact map[string]time.Time
	contactErr  error
}

func newMemProspectRepo() *memProspectRepo {
	return &memProspectRepo{
		prospects:   map[string]*model.Prospect{},
		lists:       map[string][]string{},
		listErr:     map[string]error{},
		lastContact: map[string]time.Time{},
	}
}

func (m *memProspectRepo) add(listID string, p *model.Prospect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prospects[p.ID] = p
	m.lists[listID] = append(m.lists[listID], p.ID)
}

func (m *memProspectRepo) failList(listID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr[listID] = err
}

func (m *memProspectRepo) lastContactOf(id string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.lastContact[id]
	return at, ok
}

func (m *memProspectRepo) Create(p *model.Prospect) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = fmt.Sprintf("pros-%d", len(m.prospects)+1)
	}
	m.prospects[p.ID] = p
	return nil
}

func (m *memProspectRepo) GetByID(id string) (*model.Prospect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prospects[id]
	if !ok {
		return nil, apperrors.NewProspectNotFound(id)
	}
	return p, nil
}

func (m *memProspectRepo) GetByListID(listID string) ([]*model.Prospect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.listErr[listID]; err != nil {
		return nil, err
	}
	out := []*model.Prospect{}
	for _, id := range m.lists[listID] {
		out = append(out, m.prospects[id])
	}
	return out, nil
}

func (m *memProspectRepo) UpdateLastContacted(id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.contactErr != nil {
		return m.contactErr
	}
	m.lastContact[id] = at
	return nil
}

func (m *memProspectRepo) AddToList(listID, prospectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[listID] = append(m.lists[listID], prospectID)
	return nil
}

type memMessageRepo struct {
	mu        sync.Mutex
	messages  []*model.EmailMessage
	createErr error
}

func (m *memMessageRepo) Create(msg *model.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if msg.ID == "" {
		msg.ID = fmt.Sprintf("msg-%d", len(m.messages)+1)
	}
	msg.CreatedAt = time.Now()
	cp := *msg
	m.messages = append(m.messages, &cp)
	return nil
}

func (m *memMessageRepo) ListByCampaign(campaignID, status string) ([]*model.EmailMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.EmailMessage{}
	for _, msg := range m.messages {
		if msg.CampaignID != campaignID {
			continue
		}
		if status != "" && msg.Status != status {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func (m *memMessageRepo) StatsByCampaign(campaignID string) (map[string]int, error) {
	msgs, err := m.ListByCampaign(campaignID, "")
	if err != nil {
		return nil, err
	}
	stats := map[string]int{"total": 0, model.MessageStatusSent: 0, model.MessageStatusFailed: 0}
	for _, msg := range msgs {
		stats[msg.Status]++
	}
	stats["total"] = stats[model.MessageStatusSent] + stats[model.MessageStatusFailed]
	return stats, nil
}

// scriptedSender succeeds unless told to fail or panic for an address.
type scriptedSender struct {
	mu       sync.Mutex
	sent     []string
	failFor  map[string]bool
	panicFor map[string]bool
}

func newScriptedSender() *scriptedSender {
	return &scriptedSender{failFor: map[string]bool{}, panicFor: map[string]bool{}}
}

func (s *scriptedSender) Name() string { return "scripted" }

func (s *scriptedSender) Send(ctx context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panicFor[to] {
		panic("sender exploded on " + to)
	}
	if s.failFor[to] {
		return errors.New("delivery refused")
	}
	s.sent = append(s.sent, to)
	return nil
}

// fixedSource hands out one sender, or ErrNoDefaultProvider when nil.
type fixedSource struct {
	sender provider.Sender
}

func (f *fixedSource) Default() (provider.Sender, error) {
	if f.sender == nil {
		return nil, apperrors.ErrNoDefaultProvider
	}
	return f.sender, nil
}

// sendEnv wires a campaign service and dispatcher over the fakes. drain
// stops the task queue and waits for enqueued runs to finish.
type sendEnv struct {
	campaigns *memCampaignRepo
	templates *memTemplateRepo
	prospects *memProspectRepo
	messages  *memMessageRepo
	tasks     *queue.TaskQueue
	source    *fixedSource
	svc       *service.CampaignService

	stopOnce sync.Once
}

func newSendEnv(t *testing.T, sender provider.Sender) *sendEnv {
	t.Helper()

	env := &sendEnv{
		campaigns: newMemCampaignRepo(),
		templates: newMemTemplateRepo(),
		prospects: newMemProspectRepo(),
		messages:  &memMessageRepo{},
		source:    &fixedSource{sender: sender},
	}

	env.tasks = queue.NewTaskQueue(8, 1, zap.NewNop())
	env.tasks.Start()
	t.Cleanup(env.drain)

	dispatcher := &service.Dispatcher{
		CampaignRepo: env.campaigns,
		ProspectRepo: env.prospects,
		MessageRepo:  env.messages,
		Providers:    env.source,
		Tasks:        env.tasks,
		Log:          zap.NewNop(),
		SendDelay:    time.Millisecond,
	}
	env.svc = &service.CampaignService{
		CampaignRepo: env.campaigns,
		TemplateRepo: env.templates,
		ProspectRepo: env.prospects,
		MessageRepo:  env.messages,
		Dispatcher:   dispatcher,
		Log:          zap.NewNop(),
	}
	return env
}

func (e *sendEnv) drain() {
	e.stopOnce.Do(e.tasks.Stop)
}

func (e *sendEnv) seedTemplate(id, subject, content string) *model.Template {
	tpl := &model.Template{ID: id, Name: "Template " + id, Subject: subject, Content: content}
	e.templates.put(tpl)
	return tpl
}

func (e *sendEnv) seedCampaign(id, templateID string, listIDs []string, maxEmails int) *model.Campaign {
	c := &model.Campaign{
		ID:         id,
		Name:       "Campaign " + id,
		TemplateID: templateID,
		ListIDs:    listIDs,
		MaxEmails:  maxEmails,
		Status:     model.CampaignStatusDraft,
		CreatedAt:  time.Now(),
	}
	e.campaigns.put(c)
	return c
}

func (e *sendEnv) seedProspect(listID, id, email, firstName string) *model.Prospect {
	p := &model.Prospect{ID: id, Email: email, FirstName: firstName}
	e.prospects.add(listID, p)
	return p
}
