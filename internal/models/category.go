package models

import "time"

type Category struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	ImageURL    *string `json:"image_url" gorm:"size:500" validate:"omitempty,max=500"`

	AccountID uint `json:"account_id" gorm:"not null;index"`
	IsActive  bool `json:"is_active" gorm:"not null;default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
