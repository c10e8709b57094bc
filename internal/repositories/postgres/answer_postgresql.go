package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
)

type AnswerPostgreSQL struct {
	db *gorm.DB
}

func NewAnswerPostgreSQL(db *gorm.DB) repositories.AnswerRepository {
	return &AnswerPostgreSQL{db: db}
}

func (a *AnswerPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

// Create inserts a single answer row
func (a *AnswerPostgreSQL) Create(ctx context.Context, tx *gorm.DB, answer *models.Answer) error {
	if err := a.getDB(tx).WithContext(ctx).Create(answer).Error; err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

// ListByResult retrieves a result's answers in question order
func (a *AnswerPostgreSQL) ListByResult(ctx context.Context, tx *gorm.DB, resultID uint, limit, offset int) ([]*models.Answer, int64, error) {
	base := a.getDB(tx).WithContext(ctx).Model(&models.Answer{}).
		Where("result_id = ?", resultID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Order("question_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var answers []*models.Answer
	if err := query.Find(&answers).Error; err != nil {
		return nil, 0, err
	}

	return answers, total, nil
}
