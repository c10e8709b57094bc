package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/services"
	"github.com/surveyhub/survey-service/internal/utils"
)

const (
	defaultPageSize = 25
	maxPageSize     = 1000
)

// BaseHandler carries the helpers shared by every handler
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs a handler entry with the request-scoped logger
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.LoggerFrom(c, h.logger).InfoContext(c.Request.Context(), msg, args...)
}

// respondSuccess writes the uniform success envelope
func (h *BaseHandler) respondSuccess(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, models.SuccessResponse{
		Timestamp:  time.Now().UTC(),
		HTTPCode:   code,
		HTTPStatus: http.StatusText(code),
		Message:    message,
		Data:       data,
	})
}

// respondPage writes a paginated success envelope
func (h *BaseHandler) respondPage(c *gin.Context, message string, content interface{}, total int64, opts services.ListOptions) {
	pageSize := opts.Limit()
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	h.respondSuccess(c, http.StatusOK, message, models.PageResponse{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		PageNumber:    opts.Page(),
		PageSize:      pageSize,
	})
}

// respondError writes the uniform error envelope
func (h *BaseHandler) respondError(c *gin.Context, code int, message string, details interface{}) {
	c.JSON(code, models.ErrorResponse{
		Timestamp:  time.Now().UTC(),
		Status:     code,
		HTTPStatus: http.StatusText(code),
		Error:      http.StatusText(code),
		Message:    message,
		Path:       c.Request.URL.Path,
		Details:    details,
	})
}

// parseIDParam parses a positive numeric path parameter; on failure it
// writes a 400 response and returns 0.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		h.respondError(c, http.StatusBadRequest, "Invalid "+name+" parameter", raw)
		return 0
	}
	return uint(id)
}

// parseListOptions reads pagination and sorting query parameters.
// pageNumber is 1-based and defaults to 1; pageSize defaults to 25 and is
// capped at 1000.
func (h *BaseHandler) parseListOptions(c *gin.Context) services.ListOptions {
	opts := services.ListOptions{
		PageNumber: 1,
		PageSize:   defaultPageSize,
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}

	if raw := c.Query("pageNumber"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			opts.PageNumber = n
		}
	}
	if raw := c.Query("pageSize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			opts.PageSize = n
		}
	}
	if opts.PageSize > maxPageSize {
		opts.PageSize = maxPageSize
	}

	return opts
}

// currentAccountID returns the authenticated account id placed in the
// context by the auth middleware; on failure it writes a 401 response.
func (h *BaseHandler) currentAccountID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("account_id")
	if !exists {
		h.respondError(c, http.StatusUnauthorized, "Account not authenticated", nil)
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		h.respondError(c, http.StatusUnauthorized, "Account not authenticated", nil)
		return 0, false
	}
	return id, true
}

// handleServiceError maps service errors onto HTTP status codes
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var conflict *services.ConflictError
	var permission *services.PermissionError
	var businessRule *services.BusinessRuleError

	switch {
	case errors.As(err, &notFound):
		h.respondError(c, http.StatusNotFound, notFound.Error(), nil)
	case errors.As(err, &conflict):
		h.respondError(c, http.StatusConflict, conflict.Error(), nil)
	case errors.As(err, &permission):
		h.respondError(c, http.StatusForbidden, permission.Error(), nil)
	case errors.As(err, &businessRule):
		h.respondError(c, http.StatusBadRequest, businessRule.Message, businessRule.Details)
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrSurveyNotOpen),
		errors.Is(err, services.ErrQuestionLimitReached):
		h.respondError(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrRefreshTokenExpired),
		errors.Is(err, services.ErrRefreshTokenNotFound):
		h.respondError(c, http.StatusUnauthorized, err.Error(), nil)
	default:
		utils.LoggerFrom(c, h.logger).ErrorContext(c.Request.Context(), "Unhandled service error",
			"error", err,
			"path", c.Request.URL.Path)
		h.respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
