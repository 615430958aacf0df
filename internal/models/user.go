// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the Moodia application.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	// AvatarHash references a stored media blob; the serving URL is derived.
	AvatarHash string `json:"avatar_hash"`
	// FavoriteMood is not persisted; derived from mood history at query time
	FavoriteMood string `gorm:"->" json:"favorite_mood"`
	// FollowersCount is not persisted; computed at query time
	FollowersCount int `gorm:"->" json:"followers_count"`
	// FollowingCount is not persisted; computed at query time
	FollowingCount int `gorm:"->" json:"following_count"`
	// PostsCount is not persisted; computed at query time
	PostsCount int `gorm:"->" json:"posts_count"`
	// Followed indicates whether the current requesting user follows this user (computed)
	Followed  bool           `gorm:"->" json:"followed"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
