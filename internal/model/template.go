// internal/model/template.go
package model

import "time"

// Template holds the subject and body patterns personalized per prospect.
// Placeholders use the {field_name} form, e.g. "Hi {first_name}".
type Template struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Subject   string    `db:"subject" json:"subject"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
