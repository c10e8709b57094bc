package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/surveyhub/survey-service/internal/cache"
	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
)

type SurveyPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewSurveyPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.SurveyRepository {
	return &SurveyPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (s *SurveyPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

// Create inserts a new survey and invalidates list caches
func (s *SurveyPostgreSQL) Create(ctx context.Context, tx *gorm.DB, survey *models.Survey) error {
	if err := s.getDB(tx).WithContext(ctx).Create(survey).Error; err != nil {
		return fmt.Errorf("failed to create survey: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, s.cacheManager.Survey, fmt.Sprintf("account:%d:*", survey.AccountID))
	cache.SafeInvalidatePattern(ctx, s.cacheManager.Survey, "list:*")

	return nil
}

// GetByID retrieves a survey by ID with caching, regardless of active flag
func (s *SurveyPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Survey, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var survey models.Survey

	err := s.cacheManager.Survey.CacheOrExecute(ctx, cacheKey, &survey, cache.SurveyCacheConfig.TTL, func() (interface{}, error) {
		var dbSurvey models.Survey
		if err := s.getDB(tx).WithContext(ctx).First(&dbSurvey, id).Error; err != nil {
			return nil, err
		}
		return &dbSurvey, nil
	})
	if err != nil {
		return nil, err
	}

	return &survey, nil
}

// GetActiveByID retrieves an active survey by ID
func (s *SurveyPostgreSQL) GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Survey, error) {
	var survey models.Survey
	err := s.getDB(tx).WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&survey).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

// Update persists changes to a survey and invalidates its caches
func (s *SurveyPostgreSQL) Update(ctx context.Context, tx *gorm.DB, survey *models.Survey) error {
	if err := s.getDB(tx).WithContext(ctx).Model(&models.Survey{}).
		Where("id = ?", survey.ID).
		Updates(map[string]interface{}{
			"title":                 survey.Title,
			"description":           survey.Description,
			"image_url":             survey.ImageURL,
			"max_points":            survey.MaxPoints,
			"question_count":        survey.QuestionCount,
			"time_limit":            survey.TimeLimit,
			"attempt_limit":         survey.AttemptLimit,
			"has_restricted_access": survey.HasRestrictedAccess,
			"password":              survey.Password,
			"status":                survey.Status,
			"category_id":           survey.CategoryID,
		}).Error; err != nil {
		return fmt.Errorf("failed to update survey: %w", err)
	}

	cache.InvalidateSurveyCache(ctx, s.cacheManager, survey.ID, survey.AccountID)

	return nil
}

// SoftDelete flips is_active to false in a single conditional UPDATE and
// reports whether a live row was actually deactivated.
func (s *SurveyPostgreSQL) SoftDelete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := s.getDB(tx).WithContext(ctx).Model(&models.Survey{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, fmt.Errorf("failed to deactivate survey: %w", res.Error)
	}

	cache.SafeDelete(ctx, s.cacheManager.Survey, fmt.Sprintf("id:%d", id))
	cache.SafeInvalidatePattern(ctx, s.cacheManager.Survey, "list:*")
	cache.SafeInvalidatePattern(ctx, s.cacheManager.Survey, "account:*")

	return res.RowsAffected > 0, nil
}

// List retrieves surveys with filters and pagination
func (s *SurveyPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.SurveyFilters) ([]*models.Survey, int64, error) {
	query := s.getDB(tx).WithContext(ctx).Model(&models.Survey{})

	query = s.helpers.ApplySurveyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = s.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var surveys []*models.Survey
	if err := query.Find(&surveys).Error; err != nil {
		return nil, 0, err
	}

	return surveys, total, nil
}
