// internal/controller/template_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/marketjoys/AutomatedResponder/internal/model"
	"github.com/marketjoys/AutomatedResponder/internal/repository"
)

type TemplateController struct {
	TemplateRepo repository.TemplateRepositoryInterface
}

func (c *TemplateController) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Subject string `json:"subject"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Subject) == "" || strings.TrimSpace(body.Content) == "" {
		http.Error(w, "name, subject and content are required", http.StatusBadRequest)
		return
	}

	template := &model.Template{
		Name:    body.Name,
		Subject: body.Subject,
		Content: body.Content,
	}
	if err := c.TemplateRepo.Create(template); err != nil {
		http.Error(w, "failed to create template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(template)
}

func (c *TemplateController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := c.TemplateRepo.ListTemplates()
	if err != nil {
		http.Error(w, "failed to fetch templates: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(templates)
}
