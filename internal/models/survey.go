package models

import "time"

type Survey struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	ImageURL    *string `json:"image_url" gorm:"size:500" validate:"omitempty,max=500"`

	AccountID  uint  `json:"account_id" gorm:"not null;index"`
	CategoryID *uint `json:"category_id" gorm:"index"`

	// Configuration
	MaxPoints     int `json:"max_points" gorm:"not null;default:100" validate:"min=0,max=10000"`
	QuestionCount int `json:"question_count" gorm:"not null;default:10" validate:"min=1,max=500"`
	TimeLimit     int `json:"time_limit" gorm:"not null;default:30" validate:"min=1,max=600"` // minutes
	AttemptLimit  int `json:"attempt_limit" gorm:"not null;default:1" validate:"min=1,max=100"`

	HasRestrictedAccess bool   `json:"has_restricted_access" gorm:"not null;default:false"`
	Password            string `json:"-" gorm:"size:255"`

	// Status gates whether the survey is open for responses; IsActive is the
	// soft-delete flag. The two are independent.
	Status   bool `json:"status" gorm:"not null;default:false;index"`
	IsActive bool `json:"is_active" gorm:"not null;default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Survey) TableName() string {
	return "surveys"
}
