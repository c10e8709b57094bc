package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/validator"
)

func newAccountService(repo *fakeRepository) AccountService {
	return NewAccountService(repo, testLogger(), validator.New())
}

func seedAccount(t *testing.T, repo *fakeRepository, username string, active bool) *models.Account {
	t.Helper()
	account := &models.Account{
		FirstName: "Test",
		LastName:  "Account",
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hash",
		IsActive:  active,
	}
	if err := repo.Account().Create(context.Background(), nil, account); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

func TestAccountUpdate(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	svc := newAccountService(repo)
	account := seedAccount(t, repo, "ada", true)

	newPassword := "a-new-password"
	firstName := "Augusta"
	updated, err := svc.Update(ctx, account.ID, &UpdateAccountRequest{
		FirstName: &firstName,
		Password:  &newPassword,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.FirstName != "Augusta" {
		t.Errorf("first name = %q", updated.FirstName)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(newPassword)); err != nil {
		t.Errorf("password not rehashed: %v", err)
	}
}

func TestAccountDeactivate(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	svc := newAccountService(repo)
	account := seedAccount(t, repo, "ada", true)

	if err := svc.Deactivate(ctx, account.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	var notFound *NotFoundError
	if _, err := svc.GetByID(ctx, account.ID); !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError after deactivation, got %v", err)
	}

	var conflict *ConflictError
	if err := svc.Deactivate(ctx, account.ID); !errors.As(err, &conflict) {
		t.Errorf("expected ConflictError on second deactivation, got %v", err)
	}
}

func TestGetRespondentsBySurvey(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	svc := newAccountService(repo)

	survey := &models.Survey{Title: "s", AccountID: 1, IsActive: true}
	if err := repo.Survey().Create(ctx, nil, survey); err != nil {
		t.Fatalf("create survey: %v", err)
	}

	active := seedAccount(t, repo, "active", true)
	inactive := seedAccount(t, repo, "inactive", false)

	for _, accountID := range []uint{active.ID, inactive.ID} {
		result := &models.Result{SurveyID: survey.ID, AccountID: accountID, StartedAt: time.Now()}
		if err := repo.Result().Create(ctx, nil, result); err != nil {
			t.Fatalf("create result: %v", err)
		}
	}
	// A second attempt by the same account must not duplicate the respondent.
	if err := repo.Result().Create(ctx, nil, &models.Result{SurveyID: survey.ID, AccountID: active.ID, StartedAt: time.Now()}); err != nil {
		t.Fatalf("create result: %v", err)
	}

	respondents, total, err := svc.GetRespondentsBySurvey(ctx, survey.ID, ListOptions{})
	if err != nil {
		t.Fatalf("GetRespondentsBySurvey: %v", err)
	}
	if total != 1 || len(respondents) != 1 {
		t.Fatalf("got %d respondents (total %d), want 1", len(respondents), total)
	}
	if respondents[0].Username != "active" {
		t.Errorf("respondent = %q, want the active account", respondents[0].Username)
	}
}
