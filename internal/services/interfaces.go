package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/surveyhub/survey-service/internal/models"
)

// ===== SHARED DTOs =====

// ListOptions carries pagination and sorting through the service layer.
// PageNumber is 1-based.
type ListOptions struct {
	PageNumber int    `json:"page_number" validate:"omitempty,min=1"`
	PageSize   int    `json:"page_size" validate:"omitempty,min=1,max=1000"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order" validate:"omitempty,sort_order"`
}

// Limit returns the effective page size
func (o ListOptions) Limit() int {
	if o.PageSize <= 0 {
		return 25
	}
	return o.PageSize
}

// Offset returns the row offset of the requested page
func (o ListOptions) Offset() int {
	page := o.PageNumber
	if page <= 0 {
		page = 1
	}
	return (page - 1) * o.Limit()
}

// Page returns the effective 1-based page number
func (o ListOptions) Page() int {
	if o.PageNumber <= 0 {
		return 1
	}
	return o.PageNumber
}

// ===== AUTH DTOs =====

type RegisterRequest struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	Username    string  `json:"username" validate:"required,username"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ===== ACCOUNT DTOs =====

type UpdateAccountRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	Password    *string `json:"password" validate:"omitempty,min=8,max=72"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// ===== CATEGORY DTOs =====

type CreateCategoryRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=500"`
}

type UpdateCategoryRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=500"`
}

// CategoryListFilters selects one of the supported query shapes: by
// account, by title plus active flag, or all categories. IsActive
// defaults to true except for the title shape, which requires it.
type CategoryListFilters struct {
	AccountID *uint   `json:"account_id"`
	Title     *string `json:"title" validate:"omitempty,max=200"`
	IsActive  *bool   `json:"is_active"`
}

// ===== SURVEY DTOs =====

type CreateSurveyRequest struct {
	Title               string  `json:"title" validate:"required,max=200"`
	Description         *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL            *string `json:"image_url" validate:"omitempty,url,max=500"`
	MaxPoints           int     `json:"max_points" validate:"omitempty,min=0"`
	QuestionCount       int     `json:"question_count" validate:"required,min=1,max=200"`
	TimeLimit           int     `json:"time_limit" validate:"omitempty,min=0"` // seconds, 0 = unlimited
	AttemptLimit        int     `json:"attempt_limit" validate:"omitempty,min=0"`
	HasRestrictedAccess bool    `json:"has_restricted_access"`
	Password            string  `json:"password" validate:"omitempty,max=72"`
	Status              bool    `json:"status"`
	CategoryID          *uint   `json:"category_id"`
}

type UpdateSurveyRequest struct {
	Title               *string `json:"title" validate:"omitempty,max=200"`
	Description         *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL            *string `json:"image_url" validate:"omitempty,url,max=500"`
	MaxPoints           *int    `json:"max_points" validate:"omitempty,min=0"`
	QuestionCount       *int    `json:"question_count" validate:"omitempty,min=1,max=200"`
	TimeLimit           *int    `json:"time_limit" validate:"omitempty,min=0"`
	AttemptLimit        *int    `json:"attempt_limit" validate:"omitempty,min=0"`
	HasRestrictedAccess *bool   `json:"has_restricted_access"`
	Password            *string `json:"password" validate:"omitempty,max=72"`
	Status              *bool   `json:"status"`
	CategoryID          *uint   `json:"category_id"`
}

// SurveyListFilters are combined as a conjunction; nil fields are ignored.
type SurveyListFilters struct {
	CategoryID          *uint `json:"category_id"`
	Status              *bool `json:"status"`
	HasRestrictedAccess *bool `json:"has_restricted_access"`
	AccountID           *uint `json:"account_id"`
	IsActive            *bool `json:"is_active"`
}

// ===== QUESTION DTOs =====

type CreateQuestionRequest struct {
	SurveyID       uint            `json:"survey_id" validate:"required"`
	Content        string          `json:"content" validate:"required,max=2000"`
	ImageURL       *string         `json:"image_url" validate:"omitempty,url,max=500"`
	Points         int             `json:"points" validate:"required,min=1,max=100"`
	AnswerCount    int             `json:"answer_count" validate:"required,min=2,max=10"`
	Options        json.RawMessage `json:"options" validate:"required"`
	CorrectAnswers json.RawMessage `json:"correct_answers" validate:"required"`
}

type UpdateQuestionRequest struct {
	Content        *string         `json:"content" validate:"omitempty,max=2000"`
	ImageURL       *string         `json:"image_url" validate:"omitempty,url,max=500"`
	Points         *int            `json:"points" validate:"omitempty,min=1,max=100"`
	AnswerCount    *int            `json:"answer_count" validate:"omitempty,min=2,max=10"`
	Options        json.RawMessage `json:"options"`
	CorrectAnswers json.RawMessage `json:"correct_answers"`
}

// ===== RESULT DTOs =====

type SubmitAnswerRequest struct {
	QuestionID uint     `json:"question_id" validate:"required"`
	Answers    []string `json:"answers" validate:"required,min=1"`
}

type SubmitResultRequest struct {
	SurveyID  uint                  `json:"survey_id" validate:"required"`
	StartedAt time.Time             `json:"started_at" validate:"required"`
	EndedAt   *time.Time            `json:"ended_at"`
	Answers   []SubmitAnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

type ResultResponse struct {
	*models.Result
	Answers []*models.Answer `json:"answers,omitempty"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest, role models.RoleName) (*models.Account, *models.TokenPair, error)
	Login(ctx context.Context, req *LoginRequest) (*models.Account, *models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

type TokenService interface {
	GenerateAccessToken(account *models.Account) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	GetOrCreateRefreshToken(ctx context.Context, accountID uint) (*models.RefreshToken, error)
	VerifyRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
}

// TokenClaims is the validated content of an access token
type TokenClaims struct {
	AccountID uint     `json:"account_id"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
}

type AccountService interface {
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	Update(ctx context.Context, id uint, req *UpdateAccountRequest) (*models.Account, error)
	Deactivate(ctx context.Context, id uint) error
	GetRespondentsBySurvey(ctx context.Context, surveyID uint, opts ListOptions) ([]*models.AccountSummary, int64, error)
}

type RoleService interface {
	Create(ctx context.Context, name models.RoleName, description string) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
	GetByName(ctx context.Context, name models.RoleName) (*models.Role, error)
	EnsureDefaultRoles(ctx context.Context) error
}

type CategoryService interface {
	Create(ctx context.Context, accountID uint, req *CreateCategoryRequest) (*models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Update(ctx context.Context, id uint, accountID uint, req *UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id uint, accountID uint) error
	List(ctx context.Context, filters CategoryListFilters, opts ListOptions) ([]*models.Category, int64, error)
}

type SurveyService interface {
	Create(ctx context.Context, accountID uint, req *CreateSurveyRequest) (*models.Survey, error)
	GetByID(ctx context.Context, id uint) (*models.Survey, error)
	Update(ctx context.Context, id uint, accountID uint, req *UpdateSurveyRequest) (*models.Survey, error)
	Delete(ctx context.Context, id uint, accountID uint) error
	List(ctx context.Context, filters SurveyListFilters, opts ListOptions) ([]*models.Survey, int64, error)
}

type QuestionService interface {
	Create(ctx context.Context, accountID uint, req *CreateQuestionRequest) (*models.Question, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	Update(ctx context.Context, id uint, accountID uint, req *UpdateQuestionRequest) (*models.Question, error)
	Delete(ctx context.Context, id uint, accountID uint) error
	ListBySurvey(ctx context.Context, surveyID uint, opts ListOptions) ([]*models.Question, int64, error)
	CountBySurvey(ctx context.Context, surveyID uint) (int64, error)
}

type ResultService interface {
	Submit(ctx context.Context, accountID uint, req *SubmitResultRequest) (*ResultResponse, error)
	GetByID(ctx context.Context, id uint) (*ResultResponse, error)
	ListBySurvey(ctx context.Context, surveyID uint, opts ListOptions) ([]*models.Result, int64, error)
	ListByAccount(ctx context.Context, accountID uint, opts ListOptions) ([]*models.Result, int64, error)
	ListBySurveyAndAccount(ctx context.Context, surveyID, accountID uint, opts ListOptions) ([]*models.Result, int64, error)
	GetAnswers(ctx context.Context, resultID uint, opts ListOptions) ([]*models.Answer, int64, error)
}

type ExportService interface {
	ExportSurveyResults(ctx context.Context, surveyID, accountID uint) ([]byte, string, error)
}

// ServiceManager provides access to all services and owns their lifecycle
type ServiceManager interface {
	Auth() AuthService
	Token() TokenService
	Account() AccountService
	Role() RoleService
	Category() CategoryService
	Survey() SurveyService
	Question() QuestionService
	Result() ResultService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
