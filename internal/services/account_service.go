package services

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
	"github.com/surveyhub/survey-service/internal/validator"
)

type accountService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAccountService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) AccountService {
	return &accountService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// GetByID returns an active account
func (s *accountService) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.repo.Account().GetActiveByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("account", id)
		}
		return nil, err
	}
	return account, nil
}

// Update applies partial changes to the account's own profile
func (s *accountService) Update(ctx context.Context, id uint, req *UpdateAccountRequest) (*models.Account, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid account update", errs)
	}

	account, err := s.repo.Account().GetActiveByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("account", id)
		}
		return nil, err
	}

	if req.FirstName != nil {
		account.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		account.LastName = *req.LastName
	}
	if req.Description != nil {
		account.Description = req.Description
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.Password = string(hash)
	}

	if err := s.repo.Account().Update(ctx, nil, account); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Account updated", "account_id", id)

	return account, nil
}

// Deactivate soft deletes the account. Deactivating twice is a conflict.
func (s *accountService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.repo.Account().GetByID(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("account", id)
		}
		return err
	}

	deactivated, err := s.repo.Account().SoftDelete(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deactivated {
		return NewConflictError("account", id, "account is already deactivated")
	}

	s.logger.InfoContext(ctx, "Account deactivated", "account_id", id)

	return nil
}

// GetRespondentsBySurvey lists the active accounts that answered an active survey
func (s *accountService) GetRespondentsBySurvey(ctx context.Context, surveyID uint, opts ListOptions) ([]*models.AccountSummary, int64, error) {
	if _, err := s.repo.Survey().GetActiveByID(ctx, nil, surveyID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, 0, NewNotFoundError("survey", surveyID)
		}
		return nil, 0, err
	}

	accounts, total, err := s.repo.Account().GetRespondentsBySurvey(ctx, nil, surveyID, true, true, opts.Limit(), opts.Offset())
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*models.AccountSummary, len(accounts))
	for i, a := range accounts {
		summaries[i] = a.Summary()
	}

	return summaries, total, nil
}
