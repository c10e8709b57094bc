package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/services"
	"github.com/surveyhub/survey-service/internal/utils"
)

type RoleHandler struct {
	BaseHandler
	roleService services.RoleService
}

func NewRoleHandler(roleService services.RoleService, logger utils.Logger) *RoleHandler {
	return &RoleHandler{
		BaseHandler: NewBaseHandler(logger),
		roleService: roleService,
	}
}

// CreateRoleRequest is the payload for registering a new role.
type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateRole registers a new role name
// @Summary Create role
// @Tags roles
// @Accept json
// @Produce json
// @Param role body CreateRoleRequest true "Role data"
// @Success 201 {object} models.SuccessResponse{data=models.Role}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), models.RoleName(req.Name), req.Description)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "Role created", role)
}

// ListRoles lists every registered role
// @Summary List roles
// @Tags roles
// @Produce json
// @Success 200 {object} models.SuccessResponse{data=[]models.Role}
// @Router /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "Roles retrieved", roles)
}
