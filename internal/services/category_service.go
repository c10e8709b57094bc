package services

import (
	"context"
	"log/slog"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
	"github.com/surveyhub/survey-service/internal/validator"
)

type categoryService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCategoryService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) CategoryService {
	return &categoryService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// Create stores a new category owned by the calling account
func (s *categoryService) Create(ctx context.Context, accountID uint, req *CreateCategoryRequest) (*models.Category, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid category request", errs)
	}

	category := &models.Category{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		AccountID:   accountID,
		IsActive:    true,
	}
	if err := s.repo.Category().Create(ctx, nil, category); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Category created",
		"category_id", category.ID,
		"account_id", accountID)

	return category, nil
}

// GetByID returns an active category
func (s *categoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.Category().GetActiveByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("category", id)
		}
		return nil, err
	}
	return category, nil
}

// Update applies partial changes; only the owner may update
func (s *categoryService) Update(ctx context.Context, id uint, accountID uint, req *UpdateCategoryRequest) (*models.Category, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewBusinessRuleError("invalid category update", errs)
	}

	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if category.AccountID != accountID {
		return nil, NewPermissionError(accountID, "update this category")
	}

	if req.Title != nil {
		category.Title = *req.Title
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.ImageURL != nil {
		category.ImageURL = req.ImageURL
	}

	if err := s.repo.Category().Update(ctx, nil, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete soft deletes a category. Deleting twice is a conflict.
func (s *categoryService) Delete(ctx context.Context, id uint, accountID uint) error {
	category, err := s.repo.Category().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("category", id)
		}
		return err
	}

	if category.AccountID != accountID {
		return NewPermissionError(accountID, "delete this category")
	}

	deleted, err := s.repo.Category().SoftDelete(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return NewConflictError("category", id, "category is already deleted")
	}

	s.logger.InfoContext(ctx, "Category deleted", "category_id", id)

	return nil
}

// List supports three query shapes: owned by an account, matched by title
// plus an explicit active flag, or all categories. IsActive defaults to true
// except for the title shape, which requires it; a title query without the
// flag matches nothing. When both account and title are supplied the request
// falls through to the default listing.
func (s *categoryService) List(ctx context.Context, filters CategoryListFilters, opts ListOptions) ([]*models.Category, int64, error) {
	active := true
	isActive := filters.IsActive
	if isActive == nil {
		isActive = &active
	}

	repoFilters := repositories.CategoryFilters{
		IsActive:  isActive,
		Limit:     opts.Limit(),
		Offset:    opts.Offset(),
		SortBy:    opts.SortBy,
		SortOrder: opts.SortOrder,
	}

	switch {
	case filters.AccountID != nil && filters.Title == nil:
		repoFilters.AccountID = filters.AccountID
	case filters.Title != nil && filters.AccountID == nil:
		if filters.IsActive == nil {
			return []*models.Category{}, 0, nil
		}
		repoFilters.Title = filters.Title
	}

	return s.repo.Category().List(ctx, nil, repoFilters)
}
