package services

import (
	"context"
	"log/slog"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
)

type roleService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewRoleService(repo repositories.Repository, logger *slog.Logger) RoleService {
	return &roleService{
		repo:   repo,
		logger: logger,
	}
}

// Create registers a role under a new name. Duplicate names are conflicts.
func (s *roleService) Create(ctx context.Context, name models.RoleName, description string) (*models.Role, error) {
	if name == "" {
		return nil, NewBusinessRuleError("role name is required", nil)
	}

	var role *models.Role
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		exists, err := txRepo.Role().ExistsByName(ctx, nil, name)
		if err != nil {
			return err
		}
		if exists {
			return NewConflictError("role", 0, string(name)+" already exists")
		}

		role = &models.Role{Name: name, Description: description}
		return txRepo.Role().Create(ctx, nil, role)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Role created", "role", string(name))

	return role, nil
}

func (s *roleService) List(ctx context.Context) ([]*models.Role, error) {
	return s.repo.Role().List(ctx, nil)
}

func (s *roleService) GetByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	role, err := s.repo.Role().GetByName(ctx, nil, name)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundErrorWithHint("role", 0, string(name))
		}
		return nil, err
	}
	return role, nil
}

// EnsureDefaultRoles seeds the role table at startup. Existing roles are
// left untouched.
func (s *roleService) EnsureDefaultRoles(ctx context.Context) error {
	defaults := []models.RoleName{
		models.RoleAdmin,
		models.RoleCreator,
		models.RoleRespondent,
	}

	return s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		for _, name := range defaults {
			exists, err := txRepo.Role().ExistsByName(ctx, nil, name)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			if err := txRepo.Role().Create(ctx, nil, &models.Role{Name: name}); err != nil {
				return err
			}
			s.logger.InfoContext(ctx, "Seeded role", "role", string(name))
		}
		return nil
	})
}
