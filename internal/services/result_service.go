package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/surveyhub/survey-service/internal/events"
	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
	"github.com/surveyhub/survey-service/internal/validator"
)

type resultService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewResultService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ResultService {
	return &resultService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
	}
}

// Submit grades a respondent's answers against the survey's questions and
// persists the result with its answer rows in one transaction.
func (s *resultService) Submit(ctx context.Context, accountID uint, req *SubmitResultRequest) (*ResultResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid result submission", errs)
	}
	if errs := s.validator.GetBusinessValidator().ValidateResultTiming(req.StartedAt, req.EndedAt); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid result timing", errs)
	}

	survey, err := s.repo.Survey().GetActiveByID(ctx, nil, req.SurveyID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("survey", req.SurveyID)
		}
		return nil, err
	}
	if !survey.Status {
		return nil, ErrSurveyNotOpen
	}

	questions, _, err := s.repo.Question().ListBySurvey(ctx, nil, req.SurveyID, 0, 0)
	if err != nil {
		return nil, err
	}
	questionsByID := make(map[uint]*models.Question, len(questions))
	for _, q := range questions {
		questionsByID[q.ID] = q
	}

	result := &models.Result{
		SurveyID:  req.SurveyID,
		AccountID: accountID,
		StartedAt: req.StartedAt,
		EndedAt:   req.EndedAt,
	}
	if req.EndedAt != nil {
		result.Duration = int(req.EndedAt.Sub(req.StartedAt) / time.Second)
	}

	answers := make([]*models.Answer, 0, len(req.Answers))
	for _, submitted := range req.Answers {
		question, ok := questionsByID[submitted.QuestionID]
		if !ok {
			return nil, NewNotFoundErrorWithHint("question", submitted.QuestionID, "question does not belong to this survey")
		}

		correct, points := gradeAnswer(question, submitted.Answers)
		if correct {
			result.CorrectCount++
		} else {
			result.IncorrectCount++
		}
		result.TotalPoints += points

		answers = append(answers, &models.Answer{
			QuestionID: submitted.QuestionID,
			Text:       strings.Join(submitted.Answers, ";"),
			IsCorrect:  correct,
			Points:     points,
		})
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Result().Create(ctx, nil, result); err != nil {
			return err
		}
		for _, answer := range answers {
			answer.ResultID = result.ID
			if err := txRepo.Answer().Create(ctx, nil, answer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishSubmitted(ctx, result)
	s.logger.InfoContext(ctx, "Result submitted",
		"result_id", result.ID,
		"survey_id", req.SurveyID,
		"account_id", accountID,
		"total_points", result.TotalPoints)

	return &ResultResponse{Result: result, Answers: answers}, nil
}

// gradeAnswer compares the submitted answer set with the question's correct
// answers. Only an exact set match earns the question's points.
func gradeAnswer(question *models.Question, submitted []string) (bool, int) {
	var correct []string
	if err := json.Unmarshal(question.CorrectAnswers, &correct); err != nil {
		return false, 0
	}

	if len(correct) != len(submitted) {
		return false, 0
	}

	a := append([]string(nil), correct...)
	b := append([]string(nil), submitted...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false, 0
		}
	}

	return true, question.Points
}

// GetByID returns a result with its answers
func (s *resultService) GetByID(ctx context.Context, id uint) (*ResultResponse, error) {
	result, err := s.repo.Result().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("result", id)
		}
		return nil, err
	}

	answers, _, err := s.repo.Answer().ListByResult(ctx, nil, id, 0, 0)
	if err != nil {
		return nil, err
	}

	return &ResultResponse{Result: result, Answers: answers}, nil
}

// ListBySurvey returns all results submitted for an active survey
func (s *resultService) ListBySurvey(ctx context.Context, surveyID uint, opts ListOptions) ([]*models.Result, int64, error) {
	if _, err := s.repo.Survey().GetActiveByID(ctx, nil, surveyID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, 0, NewNotFoundError("survey", surveyID)
		}
		return nil, 0, err
	}

	return s.repo.Result().List(ctx, nil, repositories.ResultFilters{
		SurveyID:  &surveyID,
		Limit:     opts.Limit(),
		Offset:    opts.Offset(),
		SortBy:    opts.SortBy,
		SortOrder: opts.SortOrder,
	})
}

// ListByAccount returns an account's own submissions
func (s *resultService) ListByAccount(ctx context.Context, accountID uint, opts ListOptions) ([]*models.Result, int64, error) {
	return s.repo.Result().List(ctx, nil, repositories.ResultFilters{
		AccountID: &accountID,
		Limit:     opts.Limit(),
		Offset:    opts.Offset(),
		SortBy:    opts.SortBy,
		SortOrder: opts.SortOrder,
	})
}

// ListBySurveyAndAccount returns one account's submissions for one survey
func (s *resultService) ListBySurveyAndAccount(ctx context.Context, surveyID, accountID uint, opts ListOptions) ([]*models.Result, int64, error) {
	if _, err := s.repo.Survey().GetActiveByID(ctx, nil, surveyID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, 0, NewNotFoundError("survey", surveyID)
		}
		return nil, 0, err
	}

	return s.repo.Result().List(ctx, nil, repositories.ResultFilters{
		SurveyID:  &surveyID,
		AccountID: &accountID,
		Limit:     opts.Limit(),
		Offset:    opts.Offset(),
		SortBy:    opts.SortBy,
		SortOrder: opts.SortOrder,
	})
}

// GetAnswers returns the answer rows of one result
func (s *resultService) GetAnswers(ctx context.Context, resultID uint, opts ListOptions) ([]*models.Answer, int64, error) {
	if _, err := s.repo.Result().GetByID(ctx, nil, resultID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, 0, NewNotFoundError("result", resultID)
		}
		return nil, 0, err
	}

	return s.repo.Answer().ListByResult(ctx, nil, resultID, opts.Limit(), opts.Offset())
}

func (s *resultService) publishSubmitted(ctx context.Context, result *models.Result) {
	event := events.NewEvent(events.ResultSubmitted, events.ResultSubmittedEvent{
		ResultID:     result.ID,
		SurveyID:     result.SurveyID,
		AccountID:    result.AccountID,
		TotalPoints:  result.TotalPoints,
		CorrectCount: result.CorrectCount,
	})
	if err := s.eventPublisher.Publish(ctx, events.ResultSubmitted, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish result event",
			"error", err,
			"result_id", result.ID)
	}
}
