// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a mood-tagged post in the Moodia application.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	// Mood is the registry mood id the post was published under.
	Mood string `gorm:"type:varchar(20);not null;index" json:"mood"`
	// Context is an optional free-form line ("studying for finals", etc).
	Context   string `json:"context,omitempty"`
	ImageURL  string `json:"image_url"`
	ImageHash string `gorm:"index" json:"-"`
	// Highlighted is toggled by the author to pin the post on their profile.
	Highlighted bool `gorm:"default:false" json:"highlighted"`
	UserID      uint `gorm:"not null;index" json:"user_id"`
	User        User `gorm:"foreignKey:UserID" json:"user"`
	// ReactionCounts is not persisted; per-kind member-set sizes computed at query time
	ReactionCounts map[string]int `gorm:"-" json:"reaction_counts"`
	// TotalReactions is not persisted; sum over ReactionCounts
	TotalReactions int `gorm:"->" json:"total_reactions"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// MyReactions holds the reaction kinds the requesting user gave (computed)
	MyReactions []string       `gorm:"-" json:"my_reactions"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
