package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository aggregates the per-entity repositories behind a single handle.
type Repository interface {
	Account() AccountRepository
	Role() RoleRepository
	Category() CategoryRepository
	Survey() SurveyRepository
	Question() QuestionRepository
	Result() ResultRepository
	Answer() AnswerRepository
	RefreshToken() RefreshTokenRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager owns the repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Sentinel errors raised when an insert trips one of the account unique
// indexes. They let the service layer map constraint violations to conflicts.
var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already registered")
)

// IsNotFoundError reports whether err means a missing row.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
