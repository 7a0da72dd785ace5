// internal/model/prospect.go
package model

import "time"

type Prospect struct {
	ID              string     `db:"id" json:"id"`
	Email           string     `db:"email" json:"email"`
	FirstName       string     `db:"first_name" json:"first_name"`
	LastName        string     `db:"last_name" json:"last_name"`
	Company         string     `db:"company" json:"company"`
	JobTitle        string     `db:"job_title" json:"job_title"`
	Location        string     `db:"location" json:"location"`
	LastContactedAt *time.Time `db:"last_contacted_at" json:"last_contacted_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// RenderContext returns the profile fields available to template placeholders.
func (p *Prospect) RenderContext() map[string]string {
	return map[string]string{
		"email":      p.Email,
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"company":    p.Company,
		"job_title":  p.JobTitle,
		"location":   p.Location,
	}
}
