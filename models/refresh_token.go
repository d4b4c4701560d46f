package models

import (
	"time"
)

type RefreshToken struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	User           User      `gorm:"foreignKey:UserID" json:"-"`
	Token          string    `gorm:"uniqueIndex;not null" json:"token"`
	ExpirationDate time.Time `gorm:"not null" json:"expiry"`
}
