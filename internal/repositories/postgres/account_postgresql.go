package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/surveyhub/survey-service/internal/cache"
	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
)

// uniqueViolationCode is the PostgreSQL SQLSTATE for unique-index violations.
const uniqueViolationCode = "23505"

type AccountPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewAccountPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.AccountRepository {
	return &AccountPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (a *AccountPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

// Create inserts a new account with its role associations. Unique-index
// violations are classified so the service layer can report conflicts even
// when two registrations race past its existence checks.
func (a *AccountPostgreSQL) Create(ctx context.Context, tx *gorm.DB, account *models.Account) error {
	if err := a.getDB(tx).WithContext(ctx).Create(account).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			switch {
			case strings.Contains(pgErr.ConstraintName, "email"):
				return repositories.ErrDuplicateEmail
			case strings.Contains(pgErr.ConstraintName, "username"):
				return repositories.ErrDuplicateUsername
			}
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID regardless of active flag
func (a *AccountPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Account, error) {
	var account models.Account
	err := a.getDB(tx).WithContext(ctx).
		Preload("Roles").
		First(&account, id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetActiveByID retrieves an active account by ID
func (a *AccountPostgreSQL) GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Account, error) {
	var account models.Account
	err := a.getDB(tx).WithContext(ctx).
		Preload("Roles").
		Where("id = ? AND is_active = ?", id, true).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetActiveByEmail retrieves an active account by email
func (a *AccountPostgreSQL) GetActiveByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Account, error) {
	var account models.Account
	err := a.getDB(tx).WithContext(ctx).
		Preload("Roles").
		Where("email = ? AND is_active = ?", email, true).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Update persists changes to an account and invalidates its cache entry
func (a *AccountPostgreSQL) Update(ctx context.Context, tx *gorm.DB, account *models.Account) error {
	if err := a.getDB(tx).WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"first_name":  account.FirstName,
			"last_name":   account.LastName,
			"username":    account.Username,
			"email":       account.Email,
			"password":    account.Password,
			"description": account.Description,
		}).Error; err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	cache.SafeDelete(ctx, a.cacheManager.Account, fmt.Sprintf("id:%d", account.ID))

	return nil
}

// SoftDelete flips is_active to false in a single conditional UPDATE and
// reports whether a live row was actually deactivated.
func (a *AccountPostgreSQL) SoftDelete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := a.getDB(tx).WithContext(ctx).Model(&models.Account{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, fmt.Errorf("failed to deactivate account: %w", res.Error)
	}

	cache.SafeDelete(ctx, a.cacheManager.Account, fmt.Sprintf("id:%d", id))

	return res.RowsAffected > 0, nil
}

// ExistsByEmail checks whether any account (active or not) holds this email
func (a *AccountPostgreSQL) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	err := a.getDB(tx).WithContext(ctx).Model(&models.Account{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// ExistsByUsername checks whether any account (active or not) holds this username
func (a *AccountPostgreSQL) ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	var count int64
	err := a.getDB(tx).WithContext(ctx).Model(&models.Account{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return count > 0, nil
}

// GetRespondentsBySurvey lists distinct accounts that submitted results for a survey
func (a *AccountPostgreSQL) GetRespondentsBySurvey(ctx context.Context, tx *gorm.DB, surveyID uint, surveyActive, accountActive bool, limit, offset int) ([]*models.Account, int64, error) {
	base := a.getDB(tx).WithContext(ctx).Model(&models.Account{}).
		Distinct("accounts.*").
		Joins("JOIN results ON results.account_id = accounts.id").
		Joins("JOIN surveys ON surveys.id = results.survey_id").
		Where("results.survey_id = ? AND surveys.is_active = ? AND accounts.is_active = ?",
			surveyID, surveyActive, accountActive)

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("accounts.id").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count respondents: %w", err)
	}

	query := base.Order("accounts.id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var accounts []*models.Account
	if err := query.Preload("Roles").Find(&accounts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list respondents: %w", err)
	}

	return accounts, total, nil
}
