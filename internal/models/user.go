// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultImageURL is the profile image used when signup omits one.
const DefaultImageURL = "/static/images/default-pic.png"

// User represents a user account in the Warbler application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	ImageURL  string         `json:"image_url"`
	Bio       string         `json:"bio"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Messages  []Message      `gorm:"foreignKey:UserID" json:"messages,omitempty"`

	// FollowersCount and FollowingCount are not persisted; computed at query time
	FollowersCount int `gorm:"->" json:"followers_count"`
	FollowingCount int `gorm:"->" json:"following_count"`
	// MessagesCount is not persisted; computed at query time
	MessagesCount int `gorm:"->" json:"messages_count"`
}
