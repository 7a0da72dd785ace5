// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrCampaignAlreadyActive is returned when a send is triggered for a
	// campaign that already has a dispatch run in flight.
	ErrCampaignAlreadyActive = errors.New("campaign already has a send in flight")

	// ErrNoDefaultProvider is returned by the provider registry when no
	// default delivery provider is configured.
	ErrNoDefaultProvider = errors.New("no default email provider configured")

	// ErrQueueFull is returned when the dispatch queue cannot accept
	// another background run.
	ErrQueueFull = errors.New("dispatch queue is full")

	// ErrAudienceResolve wraps storage failures while resolving a
	// campaign's recipient lists.
	ErrAudienceResolve = errors.New("audience resolution failed")
)

type ErrCampaignNotFound struct {
	ID string
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign %s not found", e.ID)
}

func NewCampaignNotFound(id string) error {
	return &ErrCampaignNotFound{ID: id}
}

type ErrTemplateNotFound struct {
	ID string
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template %s not found", e.ID)
}

func NewTemplateNotFound(id string) error {
	return &ErrTemplateNotFound{ID: id}
}

type ErrProspectNotFound struct {
	ID string
}

func (e *ErrProspectNotFound) Error() string {
	return fmt.Sprintf("prospect %s not found", e.ID)
}

func NewProspectNotFound(id string) error {
	return &ErrProspectNotFound{ID: id}
}

type ErrListNotFound struct {
	ID string
}

func (e *ErrListNotFound) Error() string {
	return fmt.Sprintf("prospect list %s not found", e.ID)
}

func NewListNotFound(id string) error {
	return &ErrListNotFound{ID: id}
}

// IsNotFound reports whether err is any of the typed not-found errors.
func IsNotFound(err error) bool {
	var campaign *ErrCampaignNotFound
	var template *ErrTemplateNotFound
	var prospect *ErrProspectNotFound
	var list *ErrListNotFound

	return errors.As(err, &campaign) ||
		errors.As(err, &template) ||
		errors.As(err, &prospect) ||
		errors.As(err, &list)
}
