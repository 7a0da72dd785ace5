package main

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

func TestFakeProspectFieldsPopulated(t *testing.T) {
	faker := gofakeit.New(1)

	p := fakeProspect(faker)
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		t.Errorf("expected a usable email, got %q", p.Email)
	}
	if p.FirstName == "" || p.LastName == "" {
		t.Error("expected generated names")
	}
	if p.Company == "" || p.JobTitle == "" || p.Location == "" {
		t.Error("expected generated profile fields")
	}
}

func TestFakeListFieldsPopulated(t *testing.T) {
	faker := gofakeit.New(1)

	l := fakeList(faker)
	if !strings.HasSuffix(l.Name, " Leads") {
		t.Errorf("unexpected list name: %q", l.Name)
	}
	if l.Description == "" {
		t.Error("expected a generated description")
	}
}
