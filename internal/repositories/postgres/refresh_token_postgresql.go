package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
)

type RefreshTokenPostgreSQL struct {
	db *gorm.DB
}

func NewRefreshTokenPostgreSQL(db *gorm.DB) repositories.RefreshTokenRepository {
	return &RefreshTokenPostgreSQL{db: db}
}

func (r *RefreshTokenPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create inserts a new refresh token row
func (r *RefreshTokenPostgreSQL) Create(ctx context.Context, tx *gorm.DB, token *models.RefreshToken) error {
	if err := r.getDB(tx).WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

// GetByToken retrieves a refresh token by its opaque value
func (r *RefreshTokenPostgreSQL) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.getDB(tx).WithContext(ctx).
		Where("token = ?", token).
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// GetByAccount retrieves the single refresh token belonging to an account
func (r *RefreshTokenPostgreSQL) GetByAccount(ctx context.Context, tx *gorm.DB, accountID uint) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.getDB(tx).WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// DeleteIfExpired removes the token only when its expiry has passed. The
// expiry check runs inside the DELETE so concurrent verifications cannot
// both observe a live token and then race the removal.
func (r *RefreshTokenPostgreSQL) DeleteIfExpired(ctx context.Context, tx *gorm.DB, token string) (bool, error) {
	res := r.getDB(tx).WithContext(ctx).
		Where("token = ? AND expires_at < ?", token, time.Now()).
		Delete(&models.RefreshToken{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete expired refresh token: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a refresh token unconditionally
func (r *RefreshTokenPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, token string) error {
	if err := r.getDB(tx).WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.RefreshToken{}).Error; err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
