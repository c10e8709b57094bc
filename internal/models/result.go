package models

import "time"

// Result is one respondent's attempt at one survey.
type Result struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	SurveyID  uint `json:"survey_id" gorm:"not null;index"`
	AccountID uint `json:"account_id" gorm:"not null;index"`

	StartedAt time.Time  `json:"started_at" gorm:"not null"`
	EndedAt   *time.Time `json:"ended_at"`
	Duration  int        `json:"duration" gorm:"not null;default:0"` // seconds

	TotalPoints    int `json:"total_points" gorm:"not null;default:0"`
	CorrectCount   int `json:"correct_count" gorm:"not null;default:0"`
	IncorrectCount int `json:"incorrect_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Result) TableName() string {
	return "results"
}

// Answer is one respondent's answer to one question within one result.
// Text holds the raw answer payload as submitted.
type Answer struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	ResultID   uint `json:"result_id" gorm:"not null;index"`
	QuestionID uint `json:"question_id" gorm:"not null;index"`

	Text      string `json:"text" gorm:"type:text"`
	IsCorrect bool   `json:"is_correct" gorm:"not null;default:false"`
	Points    int    `json:"points" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Answer) TableName() string {
	return "answers"
}
