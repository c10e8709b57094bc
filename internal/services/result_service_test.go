package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/surveyhub/survey-service/internal/events"
	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/validator"
)

type resultFixture struct {
	repo      *fakeRepository
	results   ResultService
	publisher *events.MockEventPublisher
	survey    *models.Survey
}

// seeds an open survey with two questions: q1 single-choice worth 3, q2
// multi-choice worth 5.
func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()

	repo := newFakeRepository()
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	ctx := context.Background()

	survey := &models.Survey{
		Title:         "Go basics",
		AccountID:     1,
		QuestionCount: 2,
		Status:        true,
		IsActive:      true,
	}
	if err := repo.Survey().Create(ctx, nil, survey); err != nil {
		t.Fatalf("create survey: %v", err)
	}

	questions := []*models.Question{
		{
			SurveyID:       survey.ID,
			Content:        "What declares a variable?",
			Points:         3,
			AnswerCount:    3,
			Options:        datatypes.JSON(`["var","let","def"]`),
			CorrectAnswers: datatypes.JSON(`["var"]`),
		},
		{
			SurveyID:       survey.ID,
			Content:        "Which are builtin types?",
			Points:         5,
			AnswerCount:    3,
			Options:        datatypes.JSON(`["int","string","object"]`),
			CorrectAnswers: datatypes.JSON(`["int","string"]`),
		},
	}
	for _, q := range questions {
		if err := repo.Question().Create(ctx, nil, q); err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	return &resultFixture{
		repo:      repo,
		results:   NewResultService(repo, publisher, logger, validator.New()),
		publisher: publisher,
		survey:    survey,
	}
}

func (f *resultFixture) questionIDs() (uint, uint) {
	var ids []uint
	for id := range f.repo.questions {
		ids = append(ids, id)
	}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}
	return ids[0], ids[1]
}

func submission(surveyID uint, answers []SubmitAnswerRequest) *SubmitResultRequest {
	started := time.Now().Add(-10 * time.Minute)
	ended := time.Now()
	return &SubmitResultRequest{
		SurveyID:  surveyID,
		StartedAt: started,
		EndedAt:   &ended,
		Answers:   answers,
	}
}

func TestSubmitResult(t *testing.T) {
	ctx := context.Background()

	t.Run("grades an exact answer set as correct", func(t *testing.T) {
		f := newResultFixture(t)
		q1, q2 := f.questionIDs()

		resp, err := f.results.Submit(ctx, 9, submission(f.survey.ID, []SubmitAnswerRequest{
			{QuestionID: q1, Answers: []string{"var"}},
			{QuestionID: q2, Answers: []string{"string", "int"}}, // order must not matter
		}))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}

		if resp.TotalPoints != 8 {
			t.Errorf("total points = %d, want 8", resp.TotalPoints)
		}
		if resp.CorrectCount != 2 || resp.IncorrectCount != 0 {
			t.Errorf("correct/incorrect = %d/%d, want 2/0", resp.CorrectCount, resp.IncorrectCount)
		}
		if len(resp.Answers) != 2 {
			t.Fatalf("expected 2 stored answers, got %d", len(resp.Answers))
		}
		for _, a := range resp.Answers {
			if a.ResultID != resp.ID {
				t.Error("answer not linked to the result")
			}
		}

		published := f.publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.ResultSubmitted {
			t.Errorf("expected one %s event, got %d events", events.ResultSubmitted, len(published))
		}
	})

	t.Run("partial answer sets earn zero points", func(t *testing.T) {
		f := newResultFixture(t)
		q1, q2 := f.questionIDs()

		resp, err := f.results.Submit(ctx, 9, submission(f.survey.ID, []SubmitAnswerRequest{
			{QuestionID: q1, Answers: []string{"let"}},
			{QuestionID: q2, Answers: []string{"int"}}, // missing "string"
		}))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}

		if resp.TotalPoints != 0 {
			t.Errorf("total points = %d, want 0", resp.TotalPoints)
		}
		if resp.CorrectCount != 0 || resp.IncorrectCount != 2 {
			t.Errorf("correct/incorrect = %d/%d, want 0/2", resp.CorrectCount, resp.IncorrectCount)
		}
	})

	t.Run("non-array answer keys score zero", func(t *testing.T) {
		f := newResultFixture(t)
		q1, q2 := f.questionIDs()

		// Opaque documents may hold any JSON shape; grading only matches
		// string arrays.
		q := f.repo.questions[q1]
		q.CorrectAnswers = datatypes.JSON(`{"answer":"var"}`)

		resp, err := f.results.Submit(ctx, 9, submission(f.survey.ID, []SubmitAnswerRequest{
			{QuestionID: q1, Answers: []string{"var"}},
			{QuestionID: q2, Answers: []string{"int", "string"}},
		}))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}

		if resp.TotalPoints != 5 {
			t.Errorf("total points = %d, want 5", resp.TotalPoints)
		}
		if resp.CorrectCount != 1 || resp.IncorrectCount != 1 {
			t.Errorf("correct/incorrect = %d/%d, want 1/1", resp.CorrectCount, resp.IncorrectCount)
		}
	})

	t.Run("rejects a closed survey", func(t *testing.T) {
		f := newResultFixture(t)
		q1, _ := f.questionIDs()
		f.survey.Status = false

		_, err := f.results.Submit(ctx, 9, submission(f.survey.ID, []SubmitAnswerRequest{
			{QuestionID: q1, Answers: []string{"var"}},
		}))
		if !errors.Is(err, ErrSurveyNotOpen) {
			t.Errorf("expected ErrSurveyNotOpen, got %v", err)
		}
	})

	t.Run("rejects a deleted survey", func(t *testing.T) {
		f := newResultFixture(t)
		q1, _ := f.questionIDs()
		f.survey.IsActive = false

		var notFound *NotFoundError
		_, err := f.results.Submit(ctx, 9, submission(f.survey.ID, []SubmitAnswerRequest{
			{QuestionID: q1, Answers: []string{"var"}},
		}))
		if !errors.As(err, &notFound) {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("rejects answers for foreign questions", func(t *testing.T) {
		f := newResultFixture(t)

		var notFound *NotFoundError
		_, err := f.results.Submit(ctx, 9, submission(f.survey.ID, []SubmitAnswerRequest{
			{QuestionID: 9999, Answers: []string{"var"}},
		}))
		if !errors.As(err, &notFound) {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("rejects an end time before the start time", func(t *testing.T) {
		f := newResultFixture(t)
		q1, _ := f.questionIDs()

		started := time.Now()
		ended := started.Add(-time.Minute)
		req := &SubmitResultRequest{
			SurveyID:  f.survey.ID,
			StartedAt: started,
			EndedAt:   &ended,
			Answers:   []SubmitAnswerRequest{{QuestionID: q1, Answers: []string{"var"}}},
		}

		var businessErr *BusinessRuleError
		if _, err := f.results.Submit(ctx, 9, req); !errors.As(err, &businessErr) {
			t.Errorf("expected BusinessRuleError, got %v", err)
		}
	})
}

func TestResultQueries(t *testing.T) {
	ctx := context.Background()

	f := newResultFixture(t)
	q1, q2 := f.questionIDs()

	for _, accountID := range []uint{10, 11} {
		if _, err := f.results.Submit(ctx, accountID, submission(f.survey.ID, []SubmitAnswerRequest{
			{QuestionID: q1, Answers: []string{"var"}},
			{QuestionID: q2, Answers: []string{"int", "string"}},
		})); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	t.Run("ListBySurvey returns every submission", func(t *testing.T) {
		results, total, err := f.results.ListBySurvey(ctx, f.survey.ID, ListOptions{})
		if err != nil {
			t.Fatalf("ListBySurvey: %v", err)
		}
		if total != 2 || len(results) != 2 {
			t.Errorf("got %d results (total %d), want 2", len(results), total)
		}
	})

	t.Run("ListByAccount filters on the submitter", func(t *testing.T) {
		results, total, err := f.results.ListByAccount(ctx, 10, ListOptions{})
		if err != nil {
			t.Fatalf("ListByAccount: %v", err)
		}
		if total != 1 || len(results) != 1 || results[0].AccountID != 10 {
			t.Errorf("unexpected results: total=%d", total)
		}
	})

	t.Run("ListBySurveyAndAccount applies both filters", func(t *testing.T) {
		results, total, err := f.results.ListBySurveyAndAccount(ctx, f.survey.ID, 11, ListOptions{})
		if err != nil {
			t.Fatalf("ListBySurveyAndAccount: %v", err)
		}
		if total != 1 || len(results) != 1 || results[0].AccountID != 11 {
			t.Errorf("unexpected results: total=%d", total)
		}
	})

	t.Run("GetAnswers returns the stored answer rows", func(t *testing.T) {
		results, _, err := f.results.ListByAccount(ctx, 10, ListOptions{})
		if err != nil {
			t.Fatalf("ListByAccount: %v", err)
		}

		answers, total, err := f.results.GetAnswers(ctx, results[0].ID, ListOptions{})
		if err != nil {
			t.Fatalf("GetAnswers: %v", err)
		}
		if total != 2 || len(answers) != 2 {
			t.Errorf("got %d answers (total %d), want 2", len(answers), total)
		}
	})

	t.Run("GetAnswers rejects an unknown result", func(t *testing.T) {
		var notFound *NotFoundError
		if _, _, err := f.results.GetAnswers(ctx, 9999, ListOptions{}); !errors.As(err, &notFound) {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})
}
