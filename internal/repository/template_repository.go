package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/marketjoys/AutomatedResponder/internal/apperrors"
	"github.com/marketjoys/AutomatedResponder/internal/model"
)

type TemplateRepositoryInterface interface {
	Create(t *model.Template) error
	GetByID(id string) (*model.Template, error)
	ListTemplates() ([]*model.Template, error)
}

type TemplateRepository struct {
	DB *sql.DB
}

func (r *TemplateRepository) Create(t *model.Template) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO templates (id, name, subject, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.Exec(query, t.ID, t.Name, t.Subject, t.Content, t.CreatedAt)
	return err
}

func (r *TemplateRepository) GetByID(id string) (*model.Template, error) {
	query := `SELECT id, name, subject, content, created_at FROM templates WHERE id=$1`
	var t model.Template
	err := r.DB.QueryRow(query, id).Scan(&t.ID, &t.Name, &t.Subject, &t.Content, &t.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewTemplateNotFound(id)
		}
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) ListTemplates() ([]*model.Template, error) {
	templates := []*model.Template{}
	query := `SELECT id, name, subject, content, created_at FROM templates ORDER BY created_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		t := &model.Template{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Content, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}
