package provider_test

import (
	"context"
	"testing"

	"github.com/marketjoys/AutomatedResponder/internal/apperrors"
	"github.com/marketjoys/AutomatedResponder/internal/provider"
)

func TestRegistryDefault(t *testing.T) {
	mock := &provider.MockSender{}
	reg := provider.NewRegistry("mock", mock)

	s, err := reg.Default()
	if err != nil {
		t.Fatalf("expected default sender, got %v", err)
	}
	if s.Name() != "mock" {
		t.Errorf("expected mock sender, got %s", s.Name())
	}
}

func TestRegistryUnknownDefault(t *testing.T) {
	reg := provider.NewRegistry("sendgrid", &provider.MockSender{})

	if _, err := reg.Default(); err != apperrors.ErrNoDefaultProvider {
		t.Fatalf("expected ErrNoDefaultProvider, got %v", err)
	}
}

func TestRegistryEmptyDefault(t *testing.T) {
	reg := provider.NewRegistry("")

	if _, err := reg.Default(); err != apperrors.ErrNoDefaultProvider {
		t.Fatalf("expected ErrNoDefaultProvider, got %v", err)
	}
}

func TestMockSenderFailRate(t *testing.T) {
	always := &provider.MockSender{FailRate: 1}
	if err := always.Send(context.Background(), "a@b.com", "s", "b"); err == nil {
		t.Error("FailRate 1 should always fail")
	}

	never := &provider.MockSender{FailRate: 0}
	if err := never.Send(context.Background(), "a@b.com", "s", "b"); err != nil {
		t.Errorf("FailRate 0 should never fail, got %v", err)
	}
}
