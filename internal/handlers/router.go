package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
	"github.com/surveyhub/survey-service/internal/services"
	"github.com/surveyhub/survey-service/internal/utils"
)

// HandlerManager bundles every HTTP handler and the auth middleware
type HandlerManager struct {
	authHandler     *AuthHandler
	accountHandler  *AccountHandler
	categoryHandler *CategoryHandler
	roleHandler     *RoleHandler
	surveyHandler   *SurveyHandler
	questionHandler *QuestionHandler
	resultHandler   *ResultHandler

	authMiddleware *JWTAuthMiddleware
}

func NewHandlerManager(serviceManager services.ServiceManager, repo repositories.Repository, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:     NewAuthHandler(serviceManager.Auth(), logger),
		accountHandler:  NewAccountHandler(serviceManager.Account(), logger),
		categoryHandler: NewCategoryHandler(serviceManager.Category(), logger),
		roleHandler:     NewRoleHandler(serviceManager.Role(), logger),
		surveyHandler:   NewSurveyHandler(serviceManager.Survey(), serviceManager.Question(), serviceManager.Account(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Question(), serviceManager.Survey(), logger),
		resultHandler:   NewResultHandler(serviceManager.Result(), serviceManager.Export(), logger),
		authMiddleware:  NewJWTAuthMiddleware(serviceManager.Token(), repo, logger),
	}
}

// SetupRoutes registers every route on the router. Auth endpoints are
// public; everything else requires a valid access token. Mutations on
// categories, surveys and questions additionally require the creator or
// admin role, and role creation is admin only.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register/creator", hm.authHandler.RegisterCreator)
		auth.POST("/register/respondent", hm.authHandler.RegisterRespondent)
		auth.POST("/login", hm.authHandler.Login)
		auth.POST("/refresh-token", hm.authHandler.RefreshToken)
	}

	authenticated := v1.Group("")
	authenticated.Use(hm.authMiddleware.AuthMiddleware())

	creatorOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleCreator, models.RoleAdmin)
	adminOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin)

	roles := authenticated.Group("/roles")
	{
		roles.GET("", hm.roleHandler.ListRoles)
		roles.POST("", adminOnly, hm.roleHandler.CreateRole)
	}

	accounts := authenticated.Group("/accounts")
	{
		accounts.GET("", hm.accountHandler.GetProfile)
		accounts.PUT("", hm.accountHandler.UpdateProfile)
		accounts.DELETE("", hm.accountHandler.DeactivateProfile)
	}

	categories := authenticated.Group("/categories")
	{
		categories.GET("", hm.categoryHandler.ListCategories)
		categories.GET("/:id", hm.categoryHandler.GetCategory)
		categories.POST("", creatorOnly, hm.categoryHandler.CreateCategory)
		categories.PUT("/:id", creatorOnly, hm.categoryHandler.UpdateCategory)
		categories.DELETE("/:id", creatorOnly, hm.categoryHandler.DeleteCategory)
	}

	surveys := authenticated.Group("/surveys")
	{
		surveys.GET("", hm.surveyHandler.ListSurveys)
		surveys.GET("/:id", hm.surveyHandler.GetSurvey)
		surveys.GET("/:id/accounts", hm.surveyHandler.GetSurveyRespondents)
		surveys.GET("/questions/:id", hm.surveyHandler.GetSurveyQuestions)
		surveys.POST("", creatorOnly, hm.surveyHandler.CreateSurvey)
		surveys.PUT("/:id", creatorOnly, hm.surveyHandler.UpdateSurvey)
		surveys.DELETE("/:id", creatorOnly, hm.surveyHandler.DeleteSurvey)
	}

	questions := authenticated.Group("/questions")
	{
		questions.GET("/:id", hm.questionHandler.GetQuestion)
		questions.POST("", creatorOnly, hm.questionHandler.CreateQuestion)
		questions.PUT("/:id", creatorOnly, hm.questionHandler.UpdateQuestion)
		questions.DELETE("/:id", creatorOnly, hm.questionHandler.DeleteQuestion)
	}

	results := authenticated.Group("/results")
	{
		results.POST("", hm.resultHandler.SubmitResult)
		results.GET("/:id", hm.resultHandler.GetResult)
		results.GET("/survey/:id", hm.resultHandler.ListResultsBySurvey)
		results.GET("/survey/:id/export", creatorOnly, hm.resultHandler.ExportSurveyResults)
		results.GET("/survey/:id/account/:accountId", hm.resultHandler.ListResultsBySurveyAndAccount)
		results.GET("/account/:id", hm.resultHandler.ListResultsByAccount)
	}

	authenticated.GET("/answers/:resultId", hm.resultHandler.GetResultAnswers)
}

// healthCheck reports service liveness
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (hm *HandlerManager) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "survey-service",
	})
}
