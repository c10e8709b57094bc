package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/surveyhub/survey-service/internal/cache"
	"github.com/surveyhub/survey-service/internal/models"
	"github.com/surveyhub/survey-service/internal/repositories"
)

type QuestionPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewQuestionPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (q *QuestionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return q.db
}

// Create inserts a new question and invalidates the survey's question caches
func (q *QuestionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	if err := q.getDB(tx).WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, q.cacheManager.Stats, fmt.Sprintf("survey:%d:*", question.SurveyID))

	return nil
}

// GetByID retrieves a question by ID
func (q *QuestionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	var question models.Question
	if err := q.getDB(tx).WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// Update persists changes to a question
func (q *QuestionPostgreSQL) Update(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	if err := q.getDB(tx).WithContext(ctx).Model(&models.Question{}).
		Where("id = ?", question.ID).
		Updates(map[string]interface{}{
			"content":         question.Content,
			"image_url":       question.ImageURL,
			"points":          question.Points,
			"answer_count":    question.AnswerCount,
			"options":         question.Options,
			"correct_answers": question.CorrectAnswers,
		}).Error; err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, q.cacheManager.Stats, fmt.Sprintf("survey:%d:*", question.SurveyID))

	return nil
}

// Delete hard deletes a question
func (q *QuestionPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := q.getDB(tx).WithContext(ctx).Delete(&models.Question{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}

// ListBySurvey retrieves a survey's questions in creation order
func (q *QuestionPostgreSQL) ListBySurvey(ctx context.Context, tx *gorm.DB, surveyID uint, limit, offset int) ([]*models.Question, int64, error) {
	base := q.getDB(tx).WithContext(ctx).Model(&models.Question{}).
		Where("survey_id = ?", surveyID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var questions []*models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

// CountBySurvey counts a survey's questions
func (q *QuestionPostgreSQL) CountBySurvey(ctx context.Context, tx *gorm.DB, surveyID uint) (int64, error) {
	var count int64
	err := q.getDB(tx).WithContext(ctx).Model(&models.Question{}).
		Where("survey_id = ?", surveyID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}
