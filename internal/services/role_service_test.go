package services

import (
	"context"
	"errors"
	"testing"

	"github.com/surveyhub/survey-service/internal/models"
)

func TestRoleCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a new role with its description", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewRoleService(repo, testLogger())

		role, err := svc.Create(ctx, "moderator", "may review flagged surveys")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if role.ID == 0 {
			t.Error("expected the role to be persisted")
		}
		if role.Description != "may review flagged surveys" {
			t.Errorf("description = %q", role.Description)
		}

		got, err := svc.GetByName(ctx, "moderator")
		if err != nil {
			t.Fatalf("GetByName: %v", err)
		}
		if got.ID != role.ID {
			t.Error("GetByName returned a different role")
		}
	})

	t.Run("duplicate names are conflicts", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewRoleService(repo, testLogger())

		if _, err := svc.Create(ctx, "moderator", ""); err != nil {
			t.Fatalf("first Create: %v", err)
		}

		var conflict *ConflictError
		if _, err := svc.Create(ctx, "moderator", "second attempt"); !errors.As(err, &conflict) {
			t.Errorf("expected ConflictError, got %v", err)
		}
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewRoleService(repo, testLogger())

		var businessErr *BusinessRuleError
		if _, err := svc.Create(ctx, "", "no name"); !errors.As(err, &businessErr) {
			t.Errorf("expected BusinessRuleError, got %v", err)
		}
	})
}

func TestRoleSeedingIsIdempotent(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	svc := NewRoleService(repo, testLogger())

	for i := 0; i < 2; i++ {
		if err := svc.EnsureDefaultRoles(ctx); err != nil {
			t.Fatalf("EnsureDefaultRoles: %v", err)
		}
	}

	roles, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(roles) != 3 {
		t.Fatalf("got %d roles, want 3", len(roles))
	}

	want := map[models.RoleName]bool{
		models.RoleAdmin:      false,
		models.RoleCreator:    false,
		models.RoleRespondent: false,
	}
	for _, role := range roles {
		want[role.Name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("role %s was not seeded", name)
		}
	}
}
