package services

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/surveyhub/survey-service/internal/events"
	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
	"github.com/surveyhub/survey-service/internal/validator"
)

type surveyService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewSurveyService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) SurveyService {
	return &surveyService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
	}
}

// Create stores a new survey owned by the calling account. Restricted
// surveys get their password hashed before storage.
func (s *surveyService) Create(ctx context.Context, accountID uint, req *CreateSurveyRequest) (*models.Survey, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid survey request", errs)
	}
	if errs := s.validator.GetBusinessValidator().ValidateSurveyAccess(req.HasRestrictedAccess, req.Password); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid survey access configuration", errs)
	}

	if req.CategoryID != nil {
		if _, err := s.repo.Category().GetActiveByID(ctx, nil, *req.CategoryID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, NewNotFoundError("category", *req.CategoryID)
			}
			return nil, err
		}
	}

	password := ""
	if req.HasRestrictedAccess {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		password = string(hash)
	}

	survey := &models.Survey{
		Title:               req.Title,
		Description:         req.Description,
		ImageURL:            req.ImageURL,
		MaxPoints:           req.MaxPoints,
		QuestionCount:       req.QuestionCount,
		TimeLimit:           req.TimeLimit,
		AttemptLimit:        req.AttemptLimit,
		HasRestrictedAccess: req.HasRestrictedAccess,
		Password:            password,
		Status:              req.Status,
		IsActive:            true,
		AccountID:           accountID,
		CategoryID:          req.CategoryID,
	}
	if err := s.repo.Survey().Create(ctx, nil, survey); err != nil {
		return nil, err
	}

	if survey.Status {
		s.publishPublished(ctx, survey)
	}

	s.logger.InfoContext(ctx, "Survey created",
		"survey_id", survey.ID,
		"account_id", accountID)

	return survey, nil
}

// GetByID returns an active survey
func (s *surveyService) GetByID(ctx context.Context, id uint) (*models.Survey, error) {
	survey, err := s.repo.Survey().GetActiveByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("survey", id)
		}
		return nil, err
	}
	return survey, nil
}

// Update applies partial changes; only the owner may update. Opening a
// survey for responses publishes a survey.published event.
func (s *surveyService) Update(ctx context.Context, id uint, accountID uint, req *UpdateSurveyRequest) (*models.Survey, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid survey update", errs)
	}

	survey, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if survey.AccountID != accountID {
		return nil, NewPermissionError(accountID, "update this survey")
	}

	wasOpen := survey.Status

	if req.Title != nil {
		survey.Title = *req.Title
	}
	if req.Description != nil {
		survey.Description = req.Description
	}
	if req.ImageURL != nil {
		survey.ImageURL = req.ImageURL
	}
	if req.MaxPoints != nil {
		survey.MaxPoints = *req.MaxPoints
	}
	if req.QuestionCount != nil {
		survey.QuestionCount = *req.QuestionCount
	}
	if req.TimeLimit != nil {
		survey.TimeLimit = *req.TimeLimit
	}
	if req.AttemptLimit != nil {
		survey.AttemptLimit = *req.AttemptLimit
	}
	if req.HasRestrictedAccess != nil {
		survey.HasRestrictedAccess = *req.HasRestrictedAccess
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		survey.Password = string(hash)
	}
	if req.Status != nil {
		survey.Status = *req.Status
	}
	if req.CategoryID != nil {
		if _, err := s.repo.Category().GetActiveByID(ctx, nil, *req.CategoryID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, NewNotFoundError("category", *req.CategoryID)
			}
			return nil, err
		}
		survey.CategoryID = req.CategoryID
	}

	if errs := s.validator.GetBusinessValidator().ValidateSurveyAccess(survey.HasRestrictedAccess, survey.Password); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid survey access configuration", errs)
	}

	if err := s.repo.Survey().Update(ctx, nil, survey); err != nil {
		return nil, err
	}

	if !wasOpen && survey.Status {
		s.publishPublished(ctx, survey)
	}

	return survey, nil
}

// Delete soft deletes a survey. Deleting twice is a conflict.
func (s *surveyService) Delete(ctx context.Context, id uint, accountID uint) error {
	survey, err := s.repo.Survey().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("survey", id)
		}
		return err
	}

	if survey.AccountID != accountID {
		return NewPermissionError(accountID, "delete this survey")
	}

	deleted, err := s.repo.Survey().SoftDelete(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return NewConflictError("survey", id, "survey is already deleted")
	}

	s.logger.InfoContext(ctx, "Survey deleted", "survey_id", id)

	return nil
}

// List applies the optional filters as a conjunction; a nil filter matches
// everything, including the soft-delete flag.
func (s *surveyService) List(ctx context.Context, filters SurveyListFilters, opts ListOptions) ([]*models.Survey, int64, error) {
	repoFilters := repositories.SurveyFilters{
		CategoryID:          filters.CategoryID,
		Status:              filters.Status,
		HasRestrictedAccess: filters.HasRestrictedAccess,
		AccountID:           filters.AccountID,
		IsActive:            filters.IsActive,
		Limit:               opts.Limit(),
		Offset:              opts.Offset(),
		SortBy:              opts.SortBy,
		SortOrder:           opts.SortOrder,
	}

	return s.repo.Survey().List(ctx, nil, repoFilters)
}

func (s *surveyService) publishPublished(ctx context.Context, survey *models.Survey) {
	event := events.NewEvent(events.SurveyPublished, events.SurveyPublishedEvent{
		SurveyID:   survey.ID,
		AccountID:  survey.AccountID,
		Title:      survey.Title,
		CategoryID: survey.CategoryID,
	})
	if err := s.eventPublisher.Publish(ctx, events.SurveyPublished, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish survey event",
			"error", err,
			"survey_id", survey.ID)
	}
}
