package models

import (
	"time"
)

// RefreshToken is an issued refresh token, revoked on logout or rotation.
type RefreshToken struct {
	BaseModel
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Token     string    `gorm:"size:512;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Usable reports whether the token can still be exchanged.
func (t *RefreshToken) Usable(now time.Time) bool {
	return !t.IsRevoked && now.Before(t.ExpiresAt)
}
