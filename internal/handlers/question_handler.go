package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surveyhub/survey-service/internal/services"
	"github.com/surveyhub/survey-service/internal/utils"
)

type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
	surveyService   services.SurveyService
}

func NewQuestionHandler(questionService services.QuestionService, surveyService services.SurveyService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
		surveyService:   surveyService,
	}
}

// CreateQuestion adds a question to a survey. Adding beyond the survey's
// configured question count is rejected with a conflict.
// @Summary Create question
// @Tags questions
// @Accept json
// @Produce json
// @Param question body services.CreateQuestionRequest true "Question data"
// @Success 201 {object} models.SuccessResponse{data=models.Question}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	survey, err := h.surveyService.GetByID(c.Request.Context(), req.SurveyID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	count, err := h.questionService.CountBySurvey(c.Request.Context(), req.SurveyID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if count >= int64(survey.QuestionCount) {
		h.handleServiceError(c, services.ErrQuestionLimitReached)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Question created", question)
}

// GetQuestion retrieves a question by ID
// @Summary Get question
// @Tags questions
// @Produce json
// @Param id path uint true "Question ID"
// @Success 200 {object} models.SuccessResponse{data=models.Question}
// @Failure 404 {object} models.ErrorResponse
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Question retrieved", question)
}

// UpdateQuestion applies partial changes to a question
// @Summary Update question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path uint true "Question ID"
// @Param question body services.UpdateQuestionRequest true "Question changes"
// @Success 200 {object} models.SuccessResponse{data=models.Question}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Question updated", question)
}

// DeleteQuestion removes a question from its survey
// @Summary Delete question
// @Tags questions
// @Produce json
// @Param id path uint true "Question ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id, accountID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Question deleted", nil)
}
