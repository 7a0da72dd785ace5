// internal/model/campaign.go
package model

import "time"

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
)

// DefaultMaxEmails caps the audience when a campaign does not set its own limit.
const DefaultMaxEmails = 100

type Campaign struct {
	ID            string     `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	TemplateID    string     `db:"template_id" json:"template_id"`
	ListIDs       []string   `db:"list_ids" json:"list_ids"`
	MaxEmails     int        `db:"max_emails" json:"max_emails"`
	Status        string     `db:"status" json:"status"` // draft, active, completed
	ProspectCount int        `db:"prospect_count" json:"prospect_count"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
