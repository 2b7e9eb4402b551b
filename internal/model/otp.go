package model

import (
	"time"
)

// Otp is a short-lived, single-use numeric challenge bound to a user id.
// Expiry is checked lazily at verify time; rows are never reused once used.
type Otp struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Code      string    `json:"-" gorm:"type:varchar(6);not null"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired checks if the code is past its TTL
func (o *Otp) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}
