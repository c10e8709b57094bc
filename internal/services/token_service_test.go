package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/surveyhub/survey-service/internal/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	repo := newFakeRepository()
	tokens := NewTokenService(repo, testLogger(), testTokenConfig())

	account := &models.Account{
		ID:       42,
		Username: "ada.lovelace",
		Roles:    []models.Role{{Name: models.RoleCreator}},
	}

	signed, err := tokens.GenerateAccessToken(account)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := tokens.ValidateAccessToken(signed)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.AccountID != 42 {
		t.Errorf("account id = %d, want 42", claims.AccountID)
	}
	if claims.Username != "ada.lovelace" {
		t.Errorf("username = %q", claims.Username)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != string(models.RoleCreator) {
		t.Errorf("roles = %v", claims.Roles)
	}
}

func TestAccessTokenSubjectIsUsername(t *testing.T) {
	repo := newFakeRepository()
	tokens := NewTokenService(repo, testLogger(), testTokenConfig())

	signed, err := tokens.GenerateAccessToken(&models.Account{
		ID:       42,
		Username: "ada.lovelace",
	})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(signed, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		t.Fatalf("GetSubject: %v", err)
	}
	if sub != "ada.lovelace" {
		t.Errorf("sub = %q, want the username", sub)
	}
}

func TestValidateAccessTokenRejectsBadInput(t *testing.T) {
	repo := newFakeRepository()
	tokens := NewTokenService(repo, testLogger(), testTokenConfig())

	t.Run("garbage token", func(t *testing.T) {
		if _, err := tokens.ValidateAccessToken("not-a-jwt"); err == nil {
			t.Error("expected an error for a malformed token")
		}
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewTokenService(repo, testLogger(), TokenConfig{
			Secret:          "different-secret",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
		})

		signed, err := other.GenerateAccessToken(&models.Account{ID: 1, Username: "x"})
		if err != nil {
			t.Fatalf("GenerateAccessToken: %v", err)
		}
		if _, err := tokens.ValidateAccessToken(signed); err == nil {
			t.Error("expected an error for a token signed with another key")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived := NewTokenService(repo, testLogger(), TokenConfig{
			Secret:          "test-secret",
			AccessTokenTTL:  -time.Minute,
			RefreshTokenTTL: time.Hour,
		})

		signed, err := shortLived.GenerateAccessToken(&models.Account{ID: 1, Username: "x"})
		if err != nil {
			t.Fatalf("GenerateAccessToken: %v", err)
		}
		if _, err := tokens.ValidateAccessToken(signed); err == nil {
			t.Error("expected an error for an expired token")
		}
	})
}

func TestGetOrCreateRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses the live token", func(t *testing.T) {
		repo := newFakeRepository()
		tokens := NewTokenService(repo, testLogger(), testTokenConfig())

		first, err := tokens.GetOrCreateRefreshToken(ctx, 7)
		if err != nil {
			t.Fatalf("GetOrCreateRefreshToken: %v", err)
		}
		second, err := tokens.GetOrCreateRefreshToken(ctx, 7)
		if err != nil {
			t.Fatalf("GetOrCreateRefreshToken: %v", err)
		}
		if first.Token != second.Token {
			t.Error("expected the same token while still live")
		}
	})

	t.Run("replaces an expired token", func(t *testing.T) {
		repo := newFakeRepository()
		tokens := NewTokenService(repo, testLogger(), testTokenConfig())

		first, err := tokens.GetOrCreateRefreshToken(ctx, 7)
		if err != nil {
			t.Fatalf("GetOrCreateRefreshToken: %v", err)
		}
		repo.refreshTokens[first.Token].ExpiresAt = time.Now().Add(-time.Minute)

		second, err := tokens.GetOrCreateRefreshToken(ctx, 7)
		if err != nil {
			t.Fatalf("GetOrCreateRefreshToken: %v", err)
		}
		if second.Token == first.Token {
			t.Error("expected a fresh token after expiry")
		}
		if _, ok := repo.refreshTokens[first.Token]; ok {
			t.Error("expected the expired token to be removed")
		}
		if len(repo.refreshTokens) != 1 {
			t.Errorf("expected one token per account, got %d", len(repo.refreshTokens))
		}
	})
}
