package models

import "time"

// ===== RESPONSE ENVELOPES =====

// SuccessResponse is the uniform wrapper around every successful HTTP
// response body.
type SuccessResponse struct {
	Timestamp  time.Time   `json:"timestamp"`
	HTTPCode   int         `json:"httpCode"`
	HTTPStatus string      `json:"httpStatus"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// ErrorResponse is the uniform wrapper around every error response body.
type ErrorResponse struct {
	Timestamp  time.Time   `json:"timestamp"`
	Status     int         `json:"status"`
	HTTPStatus string      `json:"httpStatus"`
	Error      string      `json:"error"`
	Message    string      `json:"message"`
	Path       string      `json:"path"`
	Details    interface{} `json:"details,omitempty"`
}

// ===== PAGINATION =====

type PageResponse struct {
	Content       interface{} `json:"content"`
	TotalElements int64       `json:"total_elements"`
	TotalPages    int         `json:"total_pages"`
	PageNumber    int         `json:"page_number"`
	PageSize      int         `json:"page_size"`
}

// ===== AUTH DTOs =====

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AccountSummary struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary converts an account to its public representation.
func (a *Account) Summary() *AccountSummary {
	roles := make([]string, len(a.Roles))
	for i, r := range a.Roles {
		roles[i] = string(r.Name)
	}
	return &AccountSummary{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Username:  a.Username,
		Email:     a.Email,
		Roles:     roles,
		CreatedAt: a.CreatedAt,
	}
}
