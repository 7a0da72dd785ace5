// internal/controller/prospect_list_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/marketjoys/AutomatedResponder/internal/model"
	"github.com/marketjoys/AutomatedResponder/internal/repository"
)

type ProspectListController struct {
	ListRepo     repository.ProspectListRepositoryInterface
	ProspectRepo repository.ProspectRepositoryInterface
}

func (c *ProspectListController) CreateList(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	list := &model.ProspectList{
		Name:        body.Name,
		Description: body.Description,
	}
	if err := c.ListRepo.Create(list); err != nil {
		http.Error(w, "failed to create list: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (c *ProspectListController) ListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := c.ListRepo.ListLists()
	if err != nil {
		http.Error(w, "failed to fetch lists: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lists)
}

// AddProspect creates a prospect and places it at the end of the list.
func (c *ProspectListController) AddProspect(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(listID); err != nil {
		http.Error(w, "invalid list id", http.StatusBadRequest)
		return
	}

	var body struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Company   string `json:"company"`
		JobTitle  string `json:"job_title"`
		Location  string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Email) == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	if _, err := c.ListRepo.GetByID(listID); err != nil {
		writeServiceError(w, err)
		return
	}

	prospect := &model.Prospect{
		Email:     body.Email,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Company:   body.Company,
		JobTitle:  body.JobTitle,
		Location:  body.Location,
	}
	if err := c.ProspectRepo.Create(prospect); err != nil {
		http.Error(w, "failed to create prospect: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := c.ProspectRepo.AddToList(listID, prospect.ID); err != nil {
		http.Error(w, "failed to add prospect to list: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prospect)
}

func (c *ProspectListController) ListProspects(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(listID); err != nil {
		http.Error(w, "invalid list id", http.StatusBadRequest)
		return
	}

	if _, err := c.ListRepo.GetByID(listID); err != nil {
		writeServiceError(w, err)
		return
	}

	prospects, err := c.ProspectRepo.GetByListID(listID)
	if err != nil {
		http.Error(w, "failed to fetch prospects: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prospects)
}
