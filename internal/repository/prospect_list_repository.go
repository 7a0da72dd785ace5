package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/marketjoys/AutomatedResponder/internal/apperrors"
	"github.com/marketjoys/AutomatedResponder/internal/model"
)

type ProspectListRepositoryInterface interface {
	Create(l *model.ProspectList) error
	GetByID(id string) (*model.ProspectList, error)
	ListLists() ([]*model.ProspectList, error)
}

type ProspectListRepository struct {
	DB *sql.DB
}

func (r *ProspectListRepository) Create(l *model.ProspectList) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO prospect_lists (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.Exec(query, l.ID, l.Name, l.Description, l.CreatedAt)
	return err
}

func (r *ProspectListRepository) GetByID(id string) (*model.ProspectList, error) {
	query := `SELECT id, name, description, created_at FROM prospect_lists WHERE id=$1`
	var l model.ProspectList
	err := r.DB.QueryRow(query, id).Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewListNotFound(id)
		}
		return nil, err
	}
	return &l, nil
}

func (r *ProspectListRepository) ListLists() ([]*model.ProspectList, error) {
	lists := []*model.ProspectList{}
	query := `SELECT id, name, description, created_at FROM prospect_lists ORDER BY created_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		l := &model.ProspectList{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, nil
}
