package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/services"
	"github.com/surveyhub/survey-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// RegisterCreator registers a survey creator account
// @Summary Register creator
// @Description Registers a new account with the survey-creator role
// @Tags auth
// @Accept json
// @Produce json
// @Param account body services.RegisterRequest true "Registration data"
// @Success 201 {object} models.SuccessResponse{data=models.TokenPair}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register/creator [post]
func (h *AuthHandler) RegisterCreator(c *gin.Context) {
	h.register(c, models.RoleCreator)
}

// RegisterRespondent registers a survey respondent account
// @Summary Register respondent
// @Description Registers a new account with the survey-respondent role
// @Tags auth
// @Accept json
// @Produce json
// @Param account body services.RegisterRequest true "Registration data"
// @Success 201 {object} models.SuccessResponse{data=models.TokenPair}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register/respondent [post]
func (h *AuthHandler) RegisterRespondent(c *gin.Context) {
	h.register(c, models.RoleRespondent)
}

func (h *AuthHandler) register(c *gin.Context, role models.RoleName) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	_, pair, err := h.authService.Register(c.Request.Context(), &req, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Account registered", pair)
}

// Login exchanges credentials for a token pair
// @Summary Login
// @Description Verifies credentials and returns an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Credentials"
// @Success 200 {object} models.SuccessResponse{data=models.TokenPair}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	_, pair, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Login successful", pair)
}

// RefreshToken exchanges a live refresh token for a fresh access token
// @Summary Refresh access token
// @Description Issues a new access token for a valid refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body services.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} models.SuccessResponse{data=models.TokenPair}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req services.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Token refreshed", pair)
}
