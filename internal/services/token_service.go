package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
)

// TokenConfig holds signing material and lifetimes for issued tokens
type TokenConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type tokenService struct {
	repo   repositories.Repository
	logger *slog.Logger
	config TokenConfig
}

func NewTokenService(repo repositories.Repository, logger *slog.Logger, config TokenConfig) TokenService {
	return &tokenService{
		repo:   repo,
		logger: logger,
		config: config,
	}
}

// GenerateAccessToken issues a signed HS256 JWT carrying the username as
// subject
func (s *tokenService) GenerateAccessToken(account *models.Account) (string, error) {
	roles := make([]string, len(account.Roles))
	for i, r := range account.Roles {
		roles[i] = string(r.Name)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        account.Username,
		"account_id": account.ID,
		"roles":      roles,
		"iat":        now.Unix(),
		"exp":        now.Add(s.config.AccessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken parses and verifies a JWT, returning its claims
func (s *tokenService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid access token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("invalid access token subject: %w", err)
	}

	rawID, ok := claims["account_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid access token account id")
	}

	out := &TokenClaims{
		AccountID: uint(rawID),
		Username:  sub,
	}
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				out.Roles = append(out.Roles, role)
			}
		}
	}

	return out, nil
}

// GetOrCreateRefreshToken returns the account's live refresh token, replacing
// it when missing or expired. Each account holds at most one refresh token.
func (s *tokenService) GetOrCreateRefreshToken(ctx context.Context, accountID uint) (*models.RefreshToken, error) {
	existing, err := s.repo.RefreshToken().GetByAccount(ctx, nil, accountID)
	if err == nil {
		if existing.ExpiresAt.After(time.Now()) {
			return existing, nil
		}
		if err := s.repo.RefreshToken().Delete(ctx, nil, existing.Token); err != nil {
			return nil, err
		}
	} else if !repositories.IsNotFoundError(err) {
		return nil, err
	}

	rt := &models.RefreshToken{
		AccountID: accountID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.config.RefreshTokenTTL),
	}
	if err := s.repo.RefreshToken().Create(ctx, nil, rt); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Refresh token issued", "account_id", accountID)

	return rt, nil
}

// VerifyRefreshToken checks that the token exists and has not expired.
// Expired tokens are removed as part of verification.
func (s *tokenService) VerifyRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, err := s.repo.RefreshToken().GetByToken(ctx, nil, token)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}

	if !rt.ExpiresAt.After(time.Now()) {
		if _, err := s.repo.RefreshToken().DeleteIfExpired(ctx, nil, token); err != nil {
			s.logger.WarnContext(ctx, "Failed to remove expired refresh token", "error", err)
		}
		return nil, ErrRefreshTokenExpired
	}

	return rt, nil
}
