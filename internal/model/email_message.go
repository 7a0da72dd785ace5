// internal/model/email_message.go
package model

import "time"

const (
	MessageStatusSent   = "sent"
	MessageStatusFailed = "failed"
)

// EmailMessage is the audit record of a single send attempt. Rows are written
// once by the dispatcher and never updated; SentAt is set only on success.
type EmailMessage struct {
	ID         string     `db:"id" json:"id"`
	ProspectID string     `db:"prospect_id" json:"prospect_id"`
	CampaignID string     `db:"campaign_id" json:"campaign_id"`
	Subject    string     `db:"subject" json:"subject"`
	Content    string     `db:"content" json:"content"`
	Status     string     `db:"status" json:"status"` // sent, failed
	SentAt     *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
