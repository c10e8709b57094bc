package validator

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

// BusinessValidator handles business rule validation beyond struct tags
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator(validate *validator.Validate) *BusinessValidator {
	return &BusinessValidator{validate: validate}
}

// ValidateQuestionPayload checks that the option and correct-answer documents
// are well-formed JSON. The documents are stored opaquely, so any
// syntactically valid JSON is accepted; grading tolerates non-array shapes by
// scoring them zero.
func (bv *BusinessValidator) ValidateQuestionPayload(options, correctAnswers json.RawMessage) ValidationErrors {
	var errors ValidationErrors

	if !json.Valid(options) {
		errors = append(errors, ValidationError{
			Field:   "options",
			Message: "must be well-formed JSON",
			Rule:    "json",
		})
	}

	if !json.Valid(correctAnswers) {
		errors = append(errors, ValidationError{
			Field:   "correct_answers",
			Message: "must be well-formed JSON",
			Rule:    "json",
		})
	}

	return errors
}

// ValidateSurveyAccess checks the restricted-access configuration
func (bv *BusinessValidator) ValidateSurveyAccess(hasRestrictedAccess bool, password string) ValidationErrors {
	var errors ValidationErrors

	if hasRestrictedAccess && password == "" {
		errors = append(errors, ValidationError{
			Field:   "password",
			Message: "restricted surveys require a password",
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateResultTiming checks the start/end timestamps of a submission
func (bv *BusinessValidator) ValidateResultTiming(startedAt time.Time, endedAt *time.Time) ValidationErrors {
	var errors ValidationErrors

	if startedAt.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "started_at",
			Message: "is required",
			Rule:    "business_logic",
		})
	}

	if endedAt != nil && endedAt.Before(startedAt) {
		errors = append(errors, ValidationError{
			Field:   "ended_at",
			Message: "cannot precede started_at",
			Value:   endedAt,
			Rule:    "business_logic",
		})
	}

	return errors
}
