package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
	"github.com/surveyhub/survey-service/internal/services"
	"github.com/surveyhub/survey-service/internal/utils"
)

// JWTAuthMiddleware authenticates requests with bearer access tokens
type JWTAuthMiddleware struct {
	tokens services.TokenService
	repo   repositories.Repository
	logger utils.Logger
}

func NewJWTAuthMiddleware(tokens services.TokenService, repo repositories.Repository, logger utils.Logger) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		tokens: tokens,
		repo:   repo,
		logger: logger,
	}
}

// AuthMiddleware validates the bearer token and loads the active account.
// Deactivated accounts are rejected even when their token is still valid.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			m.abortUnauthorized(c, "Missing bearer token")
			return
		}

		claims, err := m.tokens.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.abortUnauthorized(c, "Invalid or expired access token")
			return
		}

		account, err := m.repo.Account().GetActiveByID(c.Request.Context(), nil, claims.AccountID)
		if err != nil {
			m.abortUnauthorized(c, "Account is inactive or missing")
			return
		}

		roles := make([]string, len(account.Roles))
		for i, r := range account.Roles {
			roles[i] = string(r.Name)
		}

		c.Set("account_id", account.ID)
		c.Set("account", account)
		c.Set("roles", roles)

		c.Next()
	}
}

// RequireRoleMiddleware allows only accounts holding one of the given roles
func (m *JWTAuthMiddleware) RequireRoleMiddleware(allowed ...models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("account")
		if !exists {
			m.abortUnauthorized(c, "Account not authenticated")
			return
		}

		account, ok := v.(*models.Account)
		if !ok {
			m.abortUnauthorized(c, "Account not authenticated")
			return
		}

		for _, role := range allowed {
			if account.HasRole(role) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
			Timestamp:  time.Now().UTC(),
			Status:     http.StatusForbidden,
			HTTPStatus: http.StatusText(http.StatusForbidden),
			Error:      http.StatusText(http.StatusForbidden),
			Message:    "Insufficient role for this operation",
			Path:       c.Request.URL.Path,
		})
	}
}

func (m *JWTAuthMiddleware) abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Timestamp:  time.Now().UTC(),
		Status:     http.StatusUnauthorized,
		HTTPStatus: http.StatusText(http.StatusUnauthorized),
		Error:      http.StatusText(http.StatusUnauthorized),
		Message:    message,
		Path:       c.Request.URL.Path,
	})
}
