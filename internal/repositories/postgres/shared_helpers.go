package postgres

import (
	"github.com/surveyhub/survey-service/internal/repositories"
	"gorm.io/gorm"
)

// SharedHelpers contains query-building helpers used across repositories
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyCategoryFilters applies the non-nil filter fields to a category query
func (h *SharedHelpers) ApplyCategoryFilters(query *gorm.DB, filters repositories.CategoryFilters) *gorm.DB {
	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}
	if filters.Title != nil {
		query = query.Where("title ILIKE ?", "%"+*filters.Title+"%")
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	return query
}

// ApplySurveyFilters applies the non-nil filter fields to a survey query
func (h *SharedHelpers) ApplySurveyFilters(query *gorm.DB, filters repositories.SurveyFilters) *gorm.DB {
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.HasRestrictedAccess != nil {
		query = query.Where("has_restricted_access = ?", *filters.HasRestrictedAccess)
	}
	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	return query
}

// ApplyResultFilters applies the non-nil filter fields to a result query
func (h *SharedHelpers) ApplyResultFilters(query *gorm.DB, filters repositories.ResultFilters) *gorm.DB {
	if filters.SurveyID != nil {
		query = query.Where("survey_id = ?", *filters.SurveyID)
	}
	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}
	return query
}

// ApplyPaginationAndSort applies pagination and sorting with SQL injection protection
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	// Whitelist allowed sort columns
	allowedSortColumns := map[string]bool{
		"created_at":   true,
		"updated_at":   true,
		"id":           true,
		"title":        true,
		"name":         true,
		"status":       true,
		"max_points":   true,
		"total_points": true,
		"started_at":   true,
		"duration":     true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}
