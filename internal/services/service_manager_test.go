package services

import (
	"context"
	"testing"

	"github.com/surveyhub/survey-service/internal/events"
	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/validator"
)

func newTestServiceManager() ServiceManager {
	repo := newFakeRepository()
	logger := testLogger()
	return NewServiceManager(repo, events.NewMockEventPublisher(logger), logger, validator.New(), testTokenConfig())
}

func TestServiceManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	sm := newTestServiceManager()

	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	// Initialization is idempotent.
	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}

	if sm.Auth() == nil || sm.Token() == nil || sm.Account() == nil || sm.Role() == nil ||
		sm.Category() == nil || sm.Survey() == nil || sm.Question() == nil ||
		sm.Result() == nil || sm.Export() == nil {
		t.Error("expected every service to be wired")
	}

	if err := sm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck: %v", err)
	}

	if err := sm.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := sm.HealthCheck(ctx); err == nil {
		t.Error("expected health check to fail after shutdown")
	}
}

func TestServiceManagerSeedsDefaultRoles(t *testing.T) {
	ctx := context.Background()
	sm := newTestServiceManager()

	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	roles, err := sm.Role().List(ctx)
	if err != nil {
		t.Fatalf("List roles: %v", err)
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
			t.Errorf("role %q was not seeded", name)
		}
	}
}

func TestServiceManagerPanicsBeforeInitialize(t *testing.T) {
	sm := newTestServiceManager()

	defer func() {
		if recover() == nil {
			t.Error("expected a panic when accessing services before Initialize")
		}
	}()

	_ = sm.Auth()
}
