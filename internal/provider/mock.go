package provider

import (
	"context"
	"fmt"
	"math/rand"
)

// MockSender simulates delivery for local development. FailRate is the
// probability in [0, 1] that a send reports failure.
type MockSender struct {
	FailRate float64
}

func (m *MockSender) Name() string { return "mock" }

func (m *MockSender) Send(ctx context.Context, to, subject, body string) error {
	if rand.Float64() < m.FailRate {
		return fmt.Errorf("mock delivery to %s failed", to)
	}
	return nil
}
