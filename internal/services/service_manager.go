package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/surveyhub/survey-service/internal/events"
	"github.com/surveyhub/survey-service/internal/repositories"
	"github.com/surveyhub/survey-service/internal/validator"
)

// serviceManager implements ServiceManager
type serviceManager struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	tokenConfig    TokenConfig

	authService     AuthService
	tokenService    TokenService
	accountService  AccountService
	roleService     RoleService
	categoryService CategoryService
	surveyService   SurveyService
	questionService QuestionService
	resultService   ResultService
	exportService   ExportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies
func NewServiceManager(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator, tokenConfig TokenConfig) ServiceManager {
	return &serviceManager{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
		tokenConfig:    tokenConfig,
	}
}

// Initialize wires up all services and seeds the default roles
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.tokenService = NewTokenService(sm.repo, sm.logger, sm.tokenConfig)
	sm.authService = NewAuthService(sm.repo, sm.tokenService, sm.eventPublisher, sm.logger, sm.validator)
	sm.accountService = NewAccountService(sm.repo, sm.logger, sm.validator)
	sm.roleService = NewRoleService(sm.repo, sm.logger)
	sm.categoryService = NewCategoryService(sm.repo, sm.logger, sm.validator)
	sm.surveyService = NewSurveyService(sm.repo, sm.eventPublisher, sm.logger, sm.validator)
	sm.questionService = NewQuestionService(sm.repo, sm.logger, sm.validator)
	sm.resultService = NewResultService(sm.repo, sm.eventPublisher, sm.logger, sm.validator)
	sm.exportService = NewExportService(sm.repo, sm.logger)

	if err := sm.roleService.EnsureDefaultRoles(ctx); err != nil {
		return fmt.Errorf("failed to seed default roles: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.authService
}

func (sm *serviceManager) Token() TokenService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.tokenService
}

func (sm *serviceManager) Account() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.accountService
}

func (sm *serviceManager) Role() RoleService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.roleService
}

func (sm *serviceManager) Category() CategoryService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.categoryService
}

func (sm *serviceManager) Survey() SurveyService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.surveyService
}

func (sm *serviceManager) Question() QuestionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.questionService
}

func (sm *serviceManager) Result() ResultService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.resultService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.exportService
}

// HealthCheck verifies the repository connections behind the services
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

// Shutdown releases the event publisher; repository shutdown is owned by
// the repository manager.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.eventPublisher.Close(); err != nil {
		sm.logger.Error("Failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
