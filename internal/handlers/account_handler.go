package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surveyhub/survey-service/internal/services"
	"github.com/surveyhub/survey-service/internal/utils"
)

type AccountHandler struct {
	BaseHandler
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService, logger utils.Logger) *AccountHandler {
	return &AccountHandler{
		BaseHandler:    NewBaseHandler(logger),
		accountService: accountService,
	}
}

// GetProfile returns the authenticated account's own profile
// @Summary Get own profile
// @Tags accounts
// @Produce json
// @Success 200 {object} models.SuccessResponse{data=models.AccountSummary}
// @Failure 401 {object} models.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) GetProfile(c *gin.Context) {
	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), accountID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Profile retrieved", account.Summary())
}

// UpdateProfile applies partial changes to the authenticated account
// @Summary Update own profile
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body services.UpdateAccountRequest true "Profile changes"
// @Success 200 {object} models.SuccessResponse{data=models.AccountSummary}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /accounts [put]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req services.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), accountID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Profile updated", account.Summary())
}

// DeactivateProfile soft deletes the authenticated account
// @Summary Deactivate own account
// @Tags accounts
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /accounts [delete]
func (h *AccountHandler) DeactivateProfile(c *gin.Context) {
	accountID, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	if err := h.accountService.Deactivate(c.Request.Context(), accountID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Account deactivated", nil)
}
