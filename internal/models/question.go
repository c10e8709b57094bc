package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question belongs to exactly one survey. Options and CorrectAnswers are
// stored as opaque JSON documents: input is checked for well-formedness only,
// never against a schema. Questions have no soft-delete flag of their own;
// their lifecycle follows the owning survey.
type Question struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	SurveyID uint    `json:"survey_id" gorm:"not null;index"`
	Content  string  `json:"content" gorm:"not null;type:text" validate:"required,min=1,max=2000"`
	ImageURL *string `json:"image_url" gorm:"size:500" validate:"omitempty,max=500"`

	Points      int `json:"points" gorm:"not null;default:1" validate:"min=0,max=1000"`
	AnswerCount int `json:"answer_count" gorm:"not null;default:1" validate:"min=1,max=50"`

	Options        datatypes.JSON `json:"options" gorm:"type:jsonb"`
	CorrectAnswers datatypes.JSON `json:"correct_answers" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}
