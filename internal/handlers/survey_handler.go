package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/surveyhub/survey-service/internal/services"
	"github.com/surveyhub/survey-service/internal/utils"
)

type SurveyHandler struct {
	BaseHandler
	surveyService   services.SurveyService
	questionService services.QuestionService
	accountService  services.AccountService
}

func NewSurveyHandler(surveyService services.SurveyService, questionService services.QuestionService, accountService services.AccountService, logger utils.Logger) *SurveyHandler {
	return &SurveyHandler{
		BaseHandler:     NewBaseHandler(logger),
		surveyService:   surveyService,
		questionService: questionService,
		accountService:  accountService,
	}
}

// CreateSurvey creates a new survey owned by the caller
// @Summary Create survey
// @Tags surveys
// @Accept json
// @Produce json
// @Param survey body services.CreateSurveyRequest true "Survey data"
// @Success 201 {object} models.SuccessResponse{data=models.Survey}
// @Failure 400 {object} models.ErrorResponse
// @Router /surveys [post]
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req services.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	survey, err := h.surveyService.Create(c.Request.Context(), accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Survey created", survey)
}

// GetSurvey retrieves an active survey by ID
// @Summary Get survey
// @Tags surveys
// @Produce json
// @Param id path uint true "Survey ID"
// @Success 200 {object} models.SuccessResponse{data=models.Survey}
// @Failure 404 {object} models.ErrorResponse
// @Router /surveys/{id} [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	survey, err := h.surveyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Survey retrieved", survey)
}

// ListSurveys lists surveys filtered by the optional query parameters. When
// isActive is omitted, live and soft-deleted surveys are both listed.
// @Summary List surveys
// @Tags surveys
// @Produce json
// @Param categoryId query uint false "Filter by category"
// @Param status query bool false "Filter by open-for-responses flag"
// @Param hasRestrictedAccess query bool false "Filter by restricted access"
// @Param accountId query uint false "Filter by owner account"
// @Param isActive query bool false "Filter by soft-delete flag"
// @Param pageNumber query int false "1-based page number"
// @Param pageSize query int false "Page size (max 1000)"
// @Success 200 {object} models.SuccessResponse{data=models.PageResponse}
// @Router /surveys [get]
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	opts := h.parseListOptions(c)

	var filters services.SurveyListFilters
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid categoryId parameter", raw)
			return
		}
		categoryID := uint(id)
		filters.CategoryID = &categoryID
	}
	if raw := c.Query("accountId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid accountId parameter", raw)
			return
		}
		accountID := uint(id)
		filters.AccountID = &accountID
	}
	if raw := c.Query("status"); raw != "" {
		status, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid status parameter", raw)
			return
		}
		filters.Status = &status
	}
	if raw := c.Query("hasRestrictedAccess"); raw != "" {
		restricted, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid hasRestrictedAccess parameter", raw)
			return
		}
		filters.HasRestrictedAccess = &restricted
	}
	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid isActive parameter", raw)
			return
		}
		filters.IsActive = &active
	}

	surveys, total, err := h.surveyService.List(c.Request.Context(), filters, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondPage(c, "Surveys retrieved", surveys, total, opts)
}

// UpdateSurvey applies partial changes to an owned survey
// @Summary Update survey
// @Tags surveys
// @Accept json
// @Produce json
// @Param id path uint true "Survey ID"
// @Param survey body services.UpdateSurveyRequest true "Survey changes"
// @Success 200 {object} models.SuccessResponse{data=models.Survey}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /surveys/{id} [put]
func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req services.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	survey, err := h.surveyService.Update(c.Request.Context(), id, accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Survey updated", survey)
}

// DeleteSurvey soft deletes an owned survey
// @Summary Delete survey
// @Tags surveys
// @Produce json
// @Param id path uint true "Survey ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /surveys/{id} [delete]
func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	if err := h.surveyService.Delete(c.Request.Context(), id, accountID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Survey deleted", nil)
}

// GetSurveyRespondents lists the active accounts that answered a survey
// @Summary List survey respondents
// @Tags surveys
// @Produce json
// @Param id path uint true "Survey ID"
// @Success 200 {object} models.SuccessResponse{data=models.PageResponse}
// @Failure 404 {object} models.ErrorResponse
// @Router /surveys/{id}/accounts [get]
func (h *SurveyHandler) GetSurveyRespondents(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	opts := h.parseListOptions(c)

	respondents, total, err := h.accountService.GetRespondentsBySurvey(c.Request.Context(), id, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondPage(c, "Respondents retrieved", respondents, total, opts)
}

// GetSurveyQuestions lists an active survey's questions
// @Summary List survey questions
// @Tags surveys
// @Produce json
// @Param id path uint true "Survey ID"
// @Success 200 {object} models.SuccessResponse{data=models.PageResponse}
// @Failure 404 {object} models.ErrorResponse
// @Router /surveys/questions/{id} [get]
func (h *SurveyHandler) GetSurveyQuestions(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	opts := h.parseListOptions(c)

	questions, total, err := h.questionService.ListBySurvey(c.Request.Context(), id, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondPage(c, "Questions retrieved", questions, total, opts)
}
