package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
)

type RolePostgreSQL struct {
	db *gorm.DB
}

func NewRolePostgreSQL(db *gorm.DB) repositories.RoleRepository {
	return &RolePostgreSQL{db: db}
}

func (r *RolePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *RolePostgreSQL) Create(ctx context.Context, tx *gorm.DB, role *models.Role) error {
	if err := r.getDB(tx).WithContext(ctx).Create(role).Error; err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

func (r *RolePostgreSQL) GetByName(ctx context.Context, tx *gorm.DB, name models.RoleName) (*models.Role, error) {
	var role models.Role
	err := r.getDB(tx).WithContext(ctx).
		Where("name = ?", name).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RolePostgreSQL) ExistsByName(ctx context.Context, tx *gorm.DB, name models.RoleName) (bool, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).Model(&models.Role{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role existence: %w", err)
	}
	return count > 0, nil
}

func (r *RolePostgreSQL) List(ctx context.Context, tx *gorm.DB) ([]*models.Role, error) {
	var roles []*models.Role
	err := r.getDB(tx).WithContext(ctx).
		Order("id ASC").
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}
