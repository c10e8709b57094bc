package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/surveyhub/survey-service/internal/services"
	"github.com/surveyhub/survey-service/internal/utils"
)

type CategoryHandler struct {
	BaseHandler
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService, logger utils.Logger) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     NewBaseHandler(logger),
		categoryService: categoryService,
	}
}

// CreateCategory creates a new category owned by the caller
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body services.CreateCategoryRequest true "Category data"
// @Success 201 {object} models.SuccessResponse{data=models.Category}
// @Failure 400 {object} models.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Category created", category)
}

// GetCategory retrieves an active category by ID
// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path uint true "Category ID"
// @Success 200 {object} models.SuccessResponse{data=models.Category}
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Category retrieved", category)
}

// ListCategories lists categories, optionally filtered by owner account or
// by title substring. The title filter requires an explicit isActive flag;
// elsewhere isActive defaults to true. Supplying both accountId and title at
// once falls back to the unfiltered listing.
// @Summary List categories
// @Tags categories
// @Produce json
// @Param accountId query uint false "Filter by owner account"
// @Param title query string false "Filter by title substring"
// @Param isActive query bool false "Filter by soft-delete flag"
// @Param pageNumber query int false "1-based page number"
// @Param pageSize query int false "Page size (max 1000)"
// @Success 200 {object} models.SuccessResponse{data=models.PageResponse}
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	opts := h.parseListOptions(c)

	var filters services.CategoryListFilters
	if raw := c.Query("accountId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid accountId parameter", raw)
			return
		}
		accountID := uint(id)
		filters.AccountID = &accountID
	}
	if title := c.Query("title"); title != "" {
		filters.Title = &title
	}
	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid isActive parameter", raw)
			return
		}
		filters.IsActive = &active
	}

	categories, total, err := h.categoryService.List(c.Request.Context(), filters, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondPage(c, "Categories retrieved", categories, total, opts)
}

// UpdateCategory applies partial changes to an owned category
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path uint true "Category ID"
// @Param category body services.UpdateCategoryRequest true "Category changes"
// @Success 200 {object} models.SuccessResponse{data=models.Category}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory soft deletes an owned category
// @Summary Delete category
// @Tags categories
// @Produce json
// @Param id path uint true "Category ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id, accountID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Category deleted", nil)
}
