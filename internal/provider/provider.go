// internal/provider/provider.go
package provider

import (
	"context"

	"github.com/marketjoys/AutomatedResponder/internal/apperrors"
)

// Sender delivers one rendered email.
type Sender interface {
	Name() string
	Send(ctx context.Context, to, subject, body string) error
}

// DefaultSource resolves the sender a dispatch run should use.
type DefaultSource interface {
	Default() (Sender, error)
}

// Registry holds the configured senders keyed by name.
type Registry struct {
	senders     map[string]Sender
	defaultName string
}

func NewRegistry(defaultName string, senders ...Sender) *Registry {
	m := make(map[string]Sender, len(senders))
	for _, s := range senders {
		m[s.Name()] = s
	}
	return &Registry{senders: m, defaultName: defaultName}
}

// Default returns the configured default sender, or ErrNoDefaultProvider
// when the name is unset or no registered sender carries it.
func (r *Registry) Default() (Sender, error) {
	s, ok := r.senders[r.defaultName]
	if !ok {
		return nil, apperrors.ErrNoDefaultProvider
	}
	return s, nil
}
