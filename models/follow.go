package models

import (
	"time"
)

// Follow status values. An edge is never deleted; ending a relationship
// flips its status to FollowStatusNotFollowing so the row survives as the
// single record for the ordered pair.
const (
	FollowStatusPending      = "pending"
	FollowStatusAccepted     = "accepted"
	FollowStatusNotFollowing = "notFollowing"
)

// Relation sides for list and count queries. RelationFollowedBy selects the
// users following the given user, RelationFollowing the users they follow.
const (
	RelationFollowedBy = "followedBy"
	RelationFollowing  = "following"
)

// Follow is a directed edge: FollowedByID follows FollowingID.
type Follow struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	FollowedByID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followed_by_id"`
	FollowingID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"following_id"`
	Status       string    `gorm:"not null;default:'pending'" json:"status"`

	FollowedBy User `gorm:"foreignKey:FollowedByID" json:"followed_by,omitempty"`
	Following  User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}
