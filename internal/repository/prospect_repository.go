package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/marketjoys/AutomatedResponder/internal/apperrors"
	"github.com/marketjoys/AutomatedResponder/internal/model"
)

type ProspectRepositoryInterface interface {
	Create(p *model.Prospect) error
	GetByID(id string) (*model.Prospect, error)
	GetByListID(listID string) ([]*model.Prospect, error)
	UpdateLastContacted(id string, at time.Time) error
	AddToList(listID, prospectID string) error
}

type ProspectRepository struct {
	DB *sql.DB
}

func (r *ProspectRepository) Create(p *model.Prospect) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO prospects (id, email, first_name, last_name, company, job_title, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.Exec(query, p.ID, p.Email, p.FirstName, p.LastName, p.Company, p.JobTitle, p.Location, p.CreatedAt)
	return err
}

func (r *ProspectRepository) GetByID(id string) (*model.Prospect, error) {
	query := `
		SELECT id, email, first_name, last_name, company, job_title, location, last_contacted_at, created_at
		FROM prospects WHERE id=$1
	`
	var p model.Prospect
	err := r.DB.QueryRow(query, id).Scan(
		&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.Company,
		&p.JobTitle, &p.Location, &p.LastContactedAt, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewProspectNotFound(id)
		}
		return nil, err
	}
	return &p, nil
}

// GetByListID returns the members of a list in the order they were added.
// An unknown list yields an empty slice, not an error.
func (r *ProspectRepository) GetByListID(listID string) ([]*model.Prospect, error) {
	prospects := []*model.Prospect{}
	query := `
		SELECT p.id, p.email, p.first_name, p.last_name, p.company, p.job_title, p.location, p.last_contacted_at, p.created_at
		FROM prospects p
		JOIN prospect_list_members m ON m.prospect_id = p.id
		WHERE m.list_id = $1
		ORDER BY m.position
	`
	rows, err := r.DB.Query(query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p := &model.Prospect{}
		if err := rows.Scan(
			&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.Company,
			&p.JobTitle, &p.Location, &p.LastContactedAt, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		prospects = append(prospects, p)
	}
	return prospects, nil
}

func (r *ProspectRepository) UpdateLastContacted(id string, at time.Time) error {
	query := `UPDATE prospects SET last_contacted_at=$1 WHERE id=$2`
	_, err := r.DB.Exec(query, at, id)
	return err
}

func (r *ProspectRepository) AddToList(listID, prospectID string) error {
	query := `
		INSERT INTO prospect_list_members (list_id, prospect_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.DB.Exec(query, listID, prospectID)
	return err
}
