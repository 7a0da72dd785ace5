// internal/service/campaign_service.go
package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marketjoys/AutomatedResponder/internal/apperrors"
	"github.com/marketjoys/AutomatedResponder/internal/model"
	"github.com/marketjoys/AutomatedResponder/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	TemplateRepo repository.TemplateRepositoryInterface
	ProspectRepo repository.ProspectRepositoryInterface
	MessageRepo  repository.EmailMessageRepositoryInterface
	Dispatcher   *Dispatcher
	Log          *zap.Logger
}

// Result struct for StartSend
type SendResult struct {
	CampaignID     string `json:"campaign_id"`
	Status         string `json:"status"`
	TotalProspects int    `json:"total_prospects"`
	Message        string `json:"message"`
}

type CampaignDetails struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	TemplateID    string         `json:"template_id"`
	ListIDs       []string       `json:"list_ids"`
	MaxEmails     int            `json:"max_emails"`
	Status        string         `json:"status"`
	ProspectCount int            `json:"prospect_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at"`
	Stats         map[string]int `json:"stats"`
}

type PreviewResult struct {
	Subject    string `json:"subject"`
	Content    string `json:"content"`
	ProspectID string `json:"prospect_id"`
}

func (s *CampaignService) CreateCampaign(name, templateID string, listIDs []string, maxEmails int) (*model.Campaign, error) {
	if maxEmails <= 0 {
		maxEmails = model.DefaultMaxEmails
	}

	c := &model.Campaign{
		Name:       name,
		TemplateID: templateID,
		ListIDs:    listIDs,
		MaxEmails:  maxEmails,
		Status:     model.CampaignStatusDraft,
	}
	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(page, pageSize int, status string) ([]model.Campaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}

// GetCampaignDetails fetches a campaign together with its outcome stats.
func (s *CampaignService) GetCampaignDetails(id string) (*CampaignDetails, error) {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	stats, err := s.MessageRepo.StatsByCampaign(id)
	if err != nil {
		return nil, err
	}

	return &CampaignDetails{
		ID:            campaign.ID,
		Name:          campaign.Name,
		TemplateID:    campaign.TemplateID,
		ListIDs:       campaign.ListIDs,
		MaxEmails:     campaign.MaxEmails,
		Status:        campaign.Status,
		ProspectCount: campaign.ProspectCount,
		CreatedAt:     campaign.CreatedAt,
		UpdatedAt:     campaign.UpdatedAt,
		Stats:         stats,
	}, nil
}

// ListMessages returns a campaign's outcome records, oldest first,
// optionally filtered by status.
func (s *CampaignService) ListMessages(campaignID, status string) ([]*model.EmailMessage, error) {
	if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
		return nil, err
	}
	return s.MessageRepo.ListByCampaign(campaignID, status)
}

func (s *CampaignService) RenderPreview(campaignID, prospectID string, overrideTemplate *string) (*PreviewResult, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	template, err := s.TemplateRepo.GetByID(campaign.TemplateID)
	if err != nil {
		return nil, err
	}

	prospect, err := s.ProspectRepo.GetByID(prospectID)
	if err != nil {
		return nil, err
	}

	contentTemplate := template.Content
	if overrideTemplate != nil && strings.TrimSpace(*overrideTemplate) != "" {
		contentTemplate = *overrideTemplate
	}

	data := prospect.RenderContext()
	return &PreviewResult{
		Subject:    RenderTemplate(template.Subject, data),
		Content:    RenderTemplate(contentTemplate, data),
		ProspectID: prospect.ID,
	}, nil
}

// StartSend resolves the audience, flips the campaign to active and hands
// the run to the dispatcher. The run itself happens in the background; the
// returned result describes what was scheduled.
func (s *CampaignService) StartSend(campaignID string, maxOverride *int) (*SendResult, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	template, err := s.TemplateRepo.GetByID(campaign.TemplateID)
	if err != nil {
		return nil, err
	}

	maxEmails := campaign.MaxEmails
	if maxOverride != nil {
		maxEmails = *maxOverride
	}
	if maxEmails < 0 {
		maxEmails = 0
	}

	audience, err := s.BuildAudience(campaign.ListIDs, maxEmails)
	if err != nil {
		return nil, err
	}

	ok, err := s.CampaignRepo.MarkActive(campaign.ID, len(audience))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrCampaignAlreadyActive
	}

	if _, err := s.Dispatcher.Dispatch(campaign, template, audience); err != nil {
		// Hand the campaign back so a later trigger can pick it up.
		if restoreErr := s.CampaignRepo.UpdateStatus(campaign.ID, campaign.Status); restoreErr != nil {
			s.Log.Error("restore campaign status",
				zap.String("campaign_id", campaign.ID),
				zap.Error(restoreErr),
			)
		}
		return nil, err
	}

	return &SendResult{
		CampaignID:     campaign.ID,
		Status:         model.CampaignStatusActive,
		TotalProspects: len(audience),
		Message:        fmt.Sprintf("Campaign started. Sending to %d prospects", len(audience)),
	}, nil
}
