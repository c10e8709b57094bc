package repositories

import (
	"context"

	"github.com/surveyhub/survey-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

// CategoryFilters are applied as a conjunction of the non-nil fields. The
// category service decides which combination of fields constitutes a valid
// query shape; the repository just applies whatever it is handed.
type CategoryFilters struct {
	AccountID *uint   `json:"account_id"`
	Title     *string `json:"title"` // case-insensitive substring match
	IsActive  *bool   `json:"is_active"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sort_by"`
	SortOrder string  `json:"sort_order"`
}

// SurveyFilters are applied as a conjunction of optional equality predicates;
// a nil field matches everything.
type SurveyFilters struct {
	CategoryID          *uint  `json:"category_id"`
	Status              *bool  `json:"status"`
	HasRestrictedAccess *bool  `json:"has_restricted_access"`
	AccountID           *uint  `json:"account_id"`
	IsActive            *bool  `json:"is_active"`
	Limit               int    `json:"limit"`
	Offset              int    `json:"offset"`
	SortBy              string `json:"sort_by"`
	SortOrder           string `json:"sort_order"`
}

type ResultFilters struct {
	SurveyID  *uint  `json:"survey_id"`
	AccountID *uint  `json:"account_id"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// ===== REPOSITORY INTERFACES =====

type AccountRepository interface {
	Create(ctx context.Context, tx *gorm.DB, account *models.Account) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Account, error)
	GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Account, error)
	GetActiveByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Account, error)
	Update(ctx context.Context, tx *gorm.DB, account *models.Account) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)

	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error)

	// GetRespondentsBySurvey joins through results to list distinct accounts
	// that answered the given survey, filtered by both active flags.
	GetRespondentsBySurvey(ctx context.Context, tx *gorm.DB, surveyID uint, surveyActive, accountActive bool, limit, offset int) ([]*models.Account, int64, error)
}

type RoleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, role *models.Role) error
	GetByName(ctx context.Context, tx *gorm.DB, name models.RoleName) (*models.Role, error)
	ExistsByName(ctx context.Context, tx *gorm.DB, name models.RoleName) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]*models.Role, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, category *models.Category) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Category, error)
	GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Category, error)
	Update(ctx context.Context, tx *gorm.DB, category *models.Category) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	List(ctx context.Context, tx *gorm.DB, filters CategoryFilters) ([]*models.Category, int64, error)
}

type SurveyRepository interface {
	Create(ctx context.Context, tx *gorm.DB, survey *models.Survey) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Survey, error)
	GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Survey, error)
	Update(ctx context.Context, tx *gorm.DB, survey *models.Survey) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	List(ctx context.Context, tx *gorm.DB, filters SurveyFilters) ([]*models.Survey, int64, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, question *models.Question) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error)
	Update(ctx context.Context, tx *gorm.DB, question *models.Question) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	ListBySurvey(ctx context.Context, tx *gorm.DB, surveyID uint, limit, offset int) ([]*models.Question, int64, error)
	CountBySurvey(ctx context.Context, tx *gorm.DB, surveyID uint) (int64, error)
}

type ResultRepository interface {
	Create(ctx context.Context, tx *gorm.DB, result *models.Result) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Result, error)
	List(ctx context.Context, tx *gorm.DB, filters ResultFilters) ([]*models.Result, int64, error)
}

type AnswerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, answer *models.Answer) error
	ListByResult(ctx context.Context, tx *gorm.DB, resultID uint, limit, offset int) ([]*models.Answer, int64, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, tx *gorm.DB, token *models.RefreshToken) error
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (*models.RefreshToken, error)
	GetByAccount(ctx context.Context, tx *gorm.DB, accountID uint) (*models.RefreshToken, error)
	// DeleteIfExpired removes the token in a single conditional statement and
	// reports whether a row was deleted. Safe under concurrent verification.
	DeleteIfExpired(ctx context.Context, tx *gorm.DB, token string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, token string) error
}
