package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrSurveyNotOpen        = errors.New("survey is not accepting responses")
	ErrQuestionLimitReached = errors.New("survey question limit reached")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrUsernameTaken        = errors.New("username is already taken")
)

// NotFoundError reports a missing or inactive entity
type NotFoundError struct {
	Model string
	ID    uint
	Hint  string
}

func (e *NotFoundError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s %d not found: %s", e.Model, e.ID, e.Hint)
	}
	return fmt.Sprintf("%s %d not found", e.Model, e.ID)
}

func NewNotFoundError(model string, id uint) *NotFoundError {
	return &NotFoundError{Model: model, ID: id}
}

func NewNotFoundErrorWithHint(model string, id uint, hint string) *NotFoundError {
	return &NotFoundError{Model: model, ID: id, Hint: hint}
}

// ConflictError reports a state conflict such as duplicate keys or
// double deletion
type ConflictError struct {
	Model string
	ID    uint
	Hint  string
}

func (e *ConflictError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("conflict on %s %d: %s", e.Model, e.ID, e.Hint)
	}
	return fmt.Sprintf("conflict on %s: %s", e.Model, e.Hint)
}

func NewConflictError(model string, id uint, hint string) *ConflictError {
	return &ConflictError{Model: model, ID: id, Hint: hint}
}

// PermissionError reports an authorization failure
type PermissionError struct {
	AccountID uint
	Action    string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("account %d is not allowed to %s", e.AccountID, e.Action)
}

func NewPermissionError(accountID uint, action string) *PermissionError {
	return &PermissionError{AccountID: accountID, Action: action}
}

// BusinessRuleError wraps validation failures surfaced by services
type BusinessRuleError struct {
	Message string
	Details interface{}
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

func NewBusinessRuleError(message string, details interface{}) *BusinessRuleError {
	return &BusinessRuleError{Message: message, Details: details}
}
