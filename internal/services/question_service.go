package services

import (
	"context"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
	"github.com/surveyhub/survey-service/internal/validator"
)

type questionService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuestionService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// Create adds a question to an active survey owned by the calling account
func (s *questionService) Create(ctx context.Context, accountID uint, req *CreateQuestionRequest) (*models.Question, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid question request", errs)
	}
	if errs := s.validator.GetBusinessValidator().ValidateQuestionPayload(req.Options, req.CorrectAnswers); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid question payload", errs)
	}

	survey, err := s.repo.Survey().GetActiveByID(ctx, nil, req.SurveyID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("survey", req.SurveyID)
		}
		return nil, err
	}

	if survey.AccountID != accountID {
		return nil, NewPermissionError(accountID, "add questions to this survey")
	}

	question := &models.Question{
		SurveyID:       req.SurveyID,
		Content:        req.Content,
		ImageURL:       req.ImageURL,
		Points:         req.Points,
		AnswerCount:    req.AnswerCount,
		Options:        datatypes.JSON(req.Options),
		CorrectAnswers: datatypes.JSON(req.CorrectAnswers),
	}
	if err := s.repo.Question().Create(ctx, nil, question); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Question created",
		"question_id", question.ID,
		"survey_id", req.SurveyID)

	return question, nil
}

// GetByID returns a question belonging to an active survey
func (s *questionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("question", id)
		}
		return nil, err
	}

	if _, err := s.repo.Survey().GetActiveByID(ctx, nil, question.SurveyID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundErrorWithHint("question", id, "survey is no longer available")
		}
		return nil, err
	}

	return question, nil
}

// Update applies partial changes; only the survey owner may update
func (s *questionService) Update(ctx context.Context, id uint, accountID uint, req *UpdateQuestionRequest) (*models.Question, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid question update", errs)
	}

	question, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	survey, err := s.repo.Survey().GetActiveByID(ctx, nil, question.SurveyID)
	if err != nil {
		return nil, err
	}
	if survey.AccountID != accountID {
		return nil, NewPermissionError(accountID, "update questions in this survey")
	}

	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.ImageURL != nil {
		question.ImageURL = req.ImageURL
	}
	if req.Points != nil {
		question.Points = *req.Points
	}
	if req.AnswerCount != nil {
		question.AnswerCount = *req.AnswerCount
	}
	if req.Options != nil {
		question.Options = datatypes.JSON(req.Options)
	}
	if req.CorrectAnswers != nil {
		question.CorrectAnswers = datatypes.JSON(req.CorrectAnswers)
	}

	if errs := s.validator.GetBusinessValidator().ValidateQuestionPayload(
		[]byte(question.Options), []byte(question.CorrectAnswers)); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid question payload", errs)
	}

	if err := s.repo.Question().Update(ctx, nil, question); err != nil {
		return nil, err
	}

	return question, nil
}

// Delete hard deletes a question; only the survey owner may delete
func (s *questionService) Delete(ctx context.Context, id uint, accountID uint) error {
	question, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	survey, err := s.repo.Survey().GetActiveByID(ctx, nil, question.SurveyID)
	if err != nil {
		return err
	}
	if survey.AccountID != accountID {
		return NewPermissionError(accountID, "delete questions in this survey")
	}

	if err := s.repo.Question().Delete(ctx, nil, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Question deleted",
		"question_id", id,
		"survey_id", question.SurveyID)

	return nil
}

// ListBySurvey returns an active survey's questions
func (s *questionService) ListBySurvey(ctx context.Context, surveyID uint, opts ListOptions) ([]*models.Question, int64, error) {
	if _, err := s.repo.Survey().GetActiveByID(ctx, nil, surveyID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, 0, NewNotFoundError("survey", surveyID)
		}
		return nil, 0, err
	}

	return s.repo.Question().ListBySurvey(ctx, nil, surveyID, opts.Limit(), opts.Offset())
}

// CountBySurvey counts an active survey's questions
func (s *questionService) CountBySurvey(ctx context.Context, surveyID uint) (int64, error) {
	if _, err := s.repo.Survey().GetActiveByID(ctx, nil, surveyID); err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, NewNotFoundError("survey", surveyID)
		}
		return 0, err
	}

	return s.repo.Question().CountBySurvey(ctx, nil, surveyID)
}
