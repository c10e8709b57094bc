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

type CategoryPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewCategoryPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CategoryRepository {
	return &CategoryPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (c *CategoryPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return c.db
}

// Create inserts a new category and invalidates list caches
func (c *CategoryPostgreSQL) Create(ctx context.Context, tx *gorm.DB, category *models.Category) error {
	if err := c.getDB(tx).WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, c.cacheManager.Category, fmt.Sprintf("account:%d:*", category.AccountID))
	cache.SafeInvalidatePattern(ctx, c.cacheManager.Category, "list:*")

	return nil
}

// GetByID retrieves a category by ID with caching, regardless of active flag
func (c *CategoryPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Category, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var category models.Category

	err := c.cacheManager.Category.CacheOrExecute(ctx, cacheKey, &category, cache.CategoryCacheConfig.TTL, func() (interface{}, error) {
		var dbCategory models.Category
		if err := c.getDB(tx).WithContext(ctx).First(&dbCategory, id).Error; err != nil {
			return nil, err
		}
		return &dbCategory, nil
	})
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// GetActiveByID retrieves an active category by ID
func (c *CategoryPostgreSQL) GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	err := c.getDB(tx).WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Update persists changes to a category and invalidates its caches
func (c *CategoryPostgreSQL) Update(ctx context.Context, tx *gorm.DB, category *models.Category) error {
	if err := c.getDB(tx).WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"title":       category.Title,
			"description": category.Description,
			"image_url":   category.ImageURL,
		}).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	cache.InvalidateCategoryCache(ctx, c.cacheManager, category.ID, category.AccountID)

	return nil
}

// SoftDelete flips is_active to false in a single conditional UPDATE and
// reports whether a live row was actually deactivated.
func (c *CategoryPostgreSQL) SoftDelete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := c.getDB(tx).WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, fmt.Errorf("failed to deactivate category: %w", res.Error)
	}

	cache.SafeDelete(ctx, c.cacheManager.Category, fmt.Sprintf("id:%d", id))
	cache.SafeInvalidatePattern(ctx, c.cacheManager.Category, "list:*")
	cache.SafeInvalidatePattern(ctx, c.cacheManager.Category, "account:*")

	return res.RowsAffected > 0, nil
}

// List retrieves categories with filters and pagination
func (c *CategoryPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.CategoryFilters) ([]*models.Category, int64, error) {
	query := c.getDB(tx).WithContext(ctx).Model(&models.Category{})

	query = c.helpers.ApplyCategoryFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = c.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var categories []*models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}
