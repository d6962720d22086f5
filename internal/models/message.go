package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxMessageLength caps warble text, matching the original 140-character limit.
const MaxMessageLength = 140

// Message represents a warble posted by a user.
type Message struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this message (computed)
	Liked bool `gorm:"->" json:"liked"`
}
