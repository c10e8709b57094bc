package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateSurveyCache invalidates all survey-related caches
func InvalidateSurveyCache(ctx context.Context, cm *CacheManager, surveyID uint, accountID uint) {
	SafeDelete(ctx, cm.Survey, fmt.Sprintf("id:%d", surveyID))

	SafeInvalidatePattern(ctx, cm.Survey, fmt.Sprintf("account:%d:*", accountID))
	SafeInvalidatePattern(ctx, cm.Survey, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, fmt.Sprintf("survey:%d:*", surveyID))
}

// InvalidateCategoryCache invalidates all category-related caches
func InvalidateCategoryCache(ctx context.Context, cm *CacheManager, categoryID uint, accountID uint) {
	SafeDelete(ctx, cm.Category, fmt.Sprintf("id:%d", categoryID))
	SafeInvalidatePattern(ctx, cm.Category, fmt.Sprintf("account:%d:*", accountID))
	SafeInvalidatePattern(ctx, cm.Category, "list:*")
}
