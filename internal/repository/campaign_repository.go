package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/marketjoys/AutomatedResponder/internal/apperrors"
	"github.com/marketjoys/AutomatedResponder/internal/model"
)

type CampaignRepositoryInterface interface {
	// Campaign CRUD
	Create(c *model.Campaign) error
	GetByID(id string) (*model.Campaign, error)
	ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error)

	// Status transitions
	MarkActive(id string, prospectCount int) (bool, error)
	MarkCompleted(id string) error
	UpdateStatus(id, status string) error
}

type CampaignRepository struct {
	DB *sql.DB
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()
	if c.Status == "" {
		c.Status = model.CampaignStatusDraft
	}
	query := `
		INSERT INTO campaigns (id, name, template_id, list_ids, max_emails, status, prospect_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.Exec(query, c.ID, c.Name, c.TemplateID, pq.Array(c.ListIDs), c.MaxEmails, c.Status, c.ProspectCount, c.CreatedAt)
	return err
}

func (r *CampaignRepository) GetByID(id string) (*model.Campaign, error) {
	query := `
		SELECT id, name, template_id, list_ids, max_emails, status, prospect_count, created_at, updated_at
		FROM campaigns WHERE id=$1
	`
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.TemplateID, pq.Array(&c.ListIDs), &c.MaxEmails,
		&c.Status, &c.ProspectCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `
		SELECT id, name, template_id, list_ids, max_emails, status, prospect_count, created_at, updated_at
		FROM campaigns WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.TemplateID, pq.Array(&c.ListIDs), &c.MaxEmails,
			&c.Status, &c.ProspectCount, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}

	// Count total
	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	argsCount := []interface{}{}
	if status != "" {
		countQuery += " AND status=$1"
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// MarkActive flips a campaign to active and records the resolved audience
// size. The update is conditional on the campaign not already being active,
// so a second concurrent trigger finds zero rows updated and reports false.
func (r *CampaignRepository) MarkActive(id string, prospectCount int) (bool, error) {
	query := `
		UPDATE campaigns
		SET status=$1, prospect_count=$2, updated_at=NOW()
		WHERE id=$3 AND status <> $1
	`
	res, err := r.DB.Exec(query, model.CampaignStatusActive, prospectCount, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CampaignRepository) MarkCompleted(id string) error {
	return r.UpdateStatus(id, model.CampaignStatusCompleted)
}

func (r *CampaignRepository) UpdateStatus(id, status string) error {
	query := `UPDATE campaigns SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, time.Now().UTC(), id)
	return err
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
