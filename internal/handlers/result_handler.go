package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surveyhub/survey-service/internal/services"
	"github.com/surveyhub/survey-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
	exportService services.ExportService
}

func NewResultHandler(resultService services.ResultService, exportService services.ExportService, logger utils.Logger) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
		exportService: exportService,
	}
}

// SubmitResult grades and stores a completed survey attempt
// @Summary Submit result
// @Tags results
// @Accept json
// @Produce json
// @Param result body services.SubmitResultRequest true "Submission data"
// @Success 201 {object} models.SuccessResponse{data=services.ResultResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /results [post]
func (h *ResultHandler) SubmitResult(c *gin.Context) {
	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req services.SubmitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := h.resultService.Submit(c.Request.Context(), accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Result submitted", result)
}

// GetResult retrieves a result by ID
// @Summary Get result
// @Tags results
// @Produce json
// @Param id path uint true "Result ID"
// @Success 200 {object} models.SuccessResponse{data=models.Result}
// @Failure 404 {object} models.ErrorResponse
// @Router /results/{id} [get]
func (h *ResultHandler) GetResult(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	result, err := h.resultService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Result retrieved", result)
}

// ListResultsBySurvey lists results for a survey
// @Summary List survey results
// @Tags results
// @Produce json
// @Param id path uint true "Survey ID"
// @Param pageNumber query int false "1-based page number"
// @Param pageSize query int false "Page size (max 1000)"
// @Success 200 {object} models.SuccessResponse{data=models.PageResponse}
// @Router /results/survey/{id} [get]
func (h *ResultHandler) ListResultsBySurvey(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	opts := h.parseListOptions(c)

	results, total, err := h.resultService.ListBySurvey(c.Request.Context(), id, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondPage(c, "Results retrieved", results, total, opts)
}

// ListResultsByAccount lists results submitted by an account
// @Summary List account results
// @Tags results
// @Produce json
// @Param id path uint true "Account ID"
// @Param pageNumber query int false "1-based page number"
// @Param pageSize query int false "Page size (max 1000)"
// @Success 200 {object} models.SuccessResponse{data=models.PageResponse}
// @Router /results/account/{id} [get]
func (h *ResultHandler) ListResultsByAccount(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	opts := h.parseListOptions(c)

	results, total, err := h.resultService.ListByAccount(c.Request.Context(), id, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondPage(c, "Results retrieved", results, total, opts)
}

// ListResultsBySurveyAndAccount lists an account's results for one survey
// @Summary List survey results for an account
// @Tags results
// @Produce json
// @Param id path uint true "Survey ID"
// @Param accountId path uint true "Account ID"
// @Success 200 {object} models.SuccessResponse{data=models.PageResponse}
// @Router /results/survey/{id}/account/{accountId} [get]
func (h *ResultHandler) ListResultsBySurveyAndAccount(c *gin.Context) {
	surveyID := h.parseIDParam(c, "id")
	if surveyID == 0 {
		return
	}
	accountID := h.parseIDParam(c, "accountId")
	if accountID == 0 {
		return
	}

	opts := h.parseListOptions(c)

	results, total, err := h.resultService.ListBySurveyAndAccount(c.Request.Context(), surveyID, accountID, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondPage(c, "Results retrieved", results, total, opts)
}

// GetResultAnswers lists the stored answers of a result
// @Summary List result answers
// @Tags answers
// @Produce json
// @Param resultId path uint true "Result ID"
// @Param pageNumber query int false "1-based page number"
// @Param pageSize query int false "Page size (max 1000)"
// @Success 200 {object} models.SuccessResponse{data=models.PageResponse}
// @Failure 404 {object} models.ErrorResponse
// @Router /answers/{resultId} [get]
func (h *ResultHandler) GetResultAnswers(c *gin.Context) {
	resultID := h.parseIDParam(c, "resultId")
	if resultID == 0 {
		return
	}

	opts := h.parseListOptions(c)

	answers, total, err := h.resultService.GetAnswers(c.Request.Context(), resultID, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondPage(c, "Answers retrieved", answers, total, opts)
}

// ExportSurveyResults streams an owned survey's results as an xlsx workbook
// @Summary Export survey results
// @Tags results
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Survey ID"
// @Success 200 {file} binary
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /results/survey/{id}/export [get]
func (h *ResultHandler) ExportSurveyResults(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	content, filename, err := h.exportService.ExportSurveyResults(c.Request.Context(), id, accountID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, content)
}
