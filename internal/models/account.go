package models

import (
	"time"
)

type RoleName string

const (
	RoleAdmin      RoleName = "admin"
	RoleCreator    RoleName = "survey-creator"
	RoleRespondent RoleName = "survey-respondent"
)

type Account struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	FirstName   string  `json:"first_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	LastName    string  `json:"last_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Username    string  `json:"username" gorm:"uniqueIndex;not null;size:100" validate:"required,min=3,max=100"`
	Email       string  `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Password    string  `json:"-" gorm:"not null;size:255"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`

	IsActive bool `json:"is_active" gorm:"not null;default:true;index"`

	// Roles are attached through the account_roles join table. Categories and
	// surveys reference the account by foreign key only; the object graph is
	// never loaded back onto the account.
	Roles []Role `json:"roles,omitempty" gorm:"many2many:account_roles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// HasRole reports whether the account carries the given role.
func (a *Account) HasRole(name RoleName) bool {
	for _, r := range a.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

type Role struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        RoleName `json:"name" gorm:"uniqueIndex;not null;size:50" validate:"required,max=50"`
	Description string   `json:"description" gorm:"size:255" validate:"omitempty,max=255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Role) TableName() string {
	return "roles"
}
