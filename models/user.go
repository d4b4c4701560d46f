package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Username     string         `gorm:"unique;not null" json:"username"`
	Email        string         `gorm:"unique;not null" json:"email"`
	DisplayName  string         `json:"display_name"`
	Bio          string         `json:"bio"`
	PasswordHash string         `gorm:"not null" json:"-"` // Don't expose password hash in JSON
	IsPrivate    bool           `gorm:"not null;default:false" json:"is_private"`

	Followers []User `json:"-" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:FollowingID;References:ID;joinReferences:FollowedByID"`
	Following []User `json:"-" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:FollowedByID;References:ID;joinReferences:FollowingID"`

	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}
