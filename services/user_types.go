package services

import (
	"time"

	"github.com/wanderlist/api-go/models"
)

// SanitizedUser is a user representation safe to hand to any caller. The
// password hash is never carried; the email only when the viewer is the
// user themselves.
type SanitizedUser struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
	Email       *string   `json:"email,omitempty"`
}

func SanitizeUser(user *models.User, includeEmail bool) SanitizedUser {
	sanitized := SanitizedUser{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		IsPrivate:   user.IsPrivate,
		CreatedAt:   user.CreatedAt,
	}
	if includeEmail {
		email := user.Email
		sanitized.Email = &email
	}
	return sanitized
}
