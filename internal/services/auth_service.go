package services

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/surveyhub/survey-service/internal/events"
	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
	"github.com/surveyhub/survey-service/internal/validator"
)

type authService struct {
	repo           repositories.Repository
	tokens         TokenService
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewAuthService(repo repositories.Repository, tokens TokenService, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		repo:           repo,
		tokens:         tokens,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
	}
}

// Register creates a new account with the given role and issues a token pair
func (s *authService) Register(ctx context.Context, req *RegisterRequest, role models.RoleName) (*models.Account, *models.TokenPair, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, nil, NewBusinessRuleError("invalid registration request", errs)
	}

	if taken, err := s.repo.Account().ExistsByEmail(ctx, nil, req.Email); err != nil {
		return nil, nil, err
	} else if taken {
		return nil, nil, ErrEmailTaken
	}

	if taken, err := s.repo.Account().ExistsByUsername(ctx, nil, req.Username); err != nil {
		return nil, nil, err
	} else if taken {
		return nil, nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	var account *models.Account
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		roleModel, err := txRepo.Role().GetByName(ctx, nil, role)
		if err != nil {
			return err
		}

		account = &models.Account{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Username:    req.Username,
			Email:       req.Email,
			Password:    string(hash),
			Description: req.Description,
			IsActive:    true,
			Roles:       []models.Role{*roleModel},
		}
		return txRepo.Account().Create(ctx, nil, account)
	})
	if err != nil {
		// Concurrent registrations can slip past the existence checks; the
		// unique indexes are the source of truth.
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, nil, ErrEmailTaken
		case errors.Is(err, repositories.ErrDuplicateUsername):
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, err
	}

	pair, err := s.issueTokenPair(ctx, account)
	if err != nil {
		return nil, nil, err
	}

	s.publishRegistered(ctx, account)
	s.logger.InfoContext(ctx, "Account registered",
		"account_id", account.ID,
		"role", string(role))

	return account, pair, nil
}

// Login verifies credentials against the stored bcrypt hash
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.Account, *models.TokenPair, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, nil, NewBusinessRuleError("invalid login request", errs)
	}

	account, err := s.repo.Account().GetActiveByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, account)
	if err != nil {
		return nil, nil, err
	}

	s.logger.InfoContext(ctx, "Account logged in", "account_id", account.ID)

	return account, pair, nil
}

// Refresh exchanges a live refresh token for a fresh access token. The
// refresh token itself is not rotated.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	rt, err := s.tokens.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.Account().GetActiveByID(ctx, nil, rt.AccountID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundErrorWithHint("account", rt.AccountID, "account is inactive or missing")
		}
		return nil, err
	}

	access, err := s.tokens.GenerateAccessToken(account)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: rt.Token,
	}, nil
}

func (s *authService) issueTokenPair(ctx context.Context, account *models.Account) (*models.TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(account)
	if err != nil {
		return nil, err
	}

	rt, err := s.tokens.GetOrCreateRefreshToken(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: rt.Token,
	}, nil
}

func (s *authService) publishRegistered(ctx context.Context, account *models.Account) {
	roles := make([]string, len(account.Roles))
	for i, r := range account.Roles {
		roles[i] = string(r.Name)
	}

	event := events.NewEvent(events.AccountRegistered, events.AccountRegisteredEvent{
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Roles:     roles,
	})
	if err := s.eventPublisher.Publish(ctx, events.AccountRegistered, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish registration event",
			"error", err,
			"account_id", account.ID)
	}
}
