package models

import (
	"time"
)

// Follow represents a directed follower edge: FollowerID is following FollowedID.
// The combination of FollowerID and FollowedID must be unique, and a user
// can never follow themselves.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
