package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/marketjoys/AutomatedResponder/internal/model"
)

type EmailMessageRepositoryInterface interface {
	Create(m *model.EmailMessage) error
	ListByCampaign(campaignID, status string) ([]*model.EmailMessage, error)
	StatsByCampaign(campaignID string) (map[string]int, error)
}

type EmailMessageRepository struct {
	DB *sql.DB
}

// Create inserts an outcome record. Records are append-only; there is no
// update path for them anywhere in the codebase.
func (r *EmailMessageRepository) Create(m *model.EmailMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO email_messages (id, prospect_id, campaign_id, subject, content, status, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.Exec(query, m.ID, m.ProspectID, m.CampaignID, m.Subject, m.Content, m.Status, m.SentAt, m.CreatedAt)
	return err
}

func (r *EmailMessageRepository) ListByCampaign(campaignID, status string) ([]*model.EmailMessage, error) {
	messages := []*model.EmailMessage{}
	query := `
		SELECT id, prospect_id, campaign_id, subject, content, status, sent_at, created_at
		FROM email_messages WHERE campaign_id=$1
	`
	args := []interface{}{campaignID}
	if status != "" {
		query += " AND status=$2"
		args = append(args, status)
	}
	query += " ORDER BY created_at"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		m := &model.EmailMessage{}
		if err := rows.Scan(
			&m.ID, &m.ProspectID, &m.CampaignID, &m.Subject, &m.Content,
			&m.Status, &m.SentAt, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *EmailMessageRepository) StatsByCampaign(campaignID string) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM email_messages WHERE campaign_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"total": 0, model.MessageStatusSent: 0, model.MessageStatusFailed: 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	stats["total"] = stats[model.MessageStatusSent] + stats[model.MessageStatusFailed]
	return stats, nil
}
