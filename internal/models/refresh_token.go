package models

import "time"

// RefreshToken is a long-lived opaque credential, one per account. Expiry is
// the only state transition; an expired token is removed lazily on the next
// verification attempt.
type RefreshToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AccountID uint      `json:"account_id" gorm:"uniqueIndex;not null"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null;size:255"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
