// Package models contains data structures for the application's domain models.
package models

import "time"

// ReactionKind is one of the fixed reaction categories users can give a post.
type ReactionKind string

const (
	ReactionLove      ReactionKind = "love"
	ReactionSupport   ReactionKind = "support"
	ReactionHelpful   ReactionKind = "helpful"
	ReactionInspiring ReactionKind = "inspiring"
	ReactionLearned   ReactionKind = "learned"
	ReactionShare     ReactionKind = "share"
)

// ReactionKinds lists every valid kind in display order.
var ReactionKinds = []ReactionKind{
	ReactionLove,
	ReactionSupport,
	ReactionHelpful,
	ReactionInspiring,
	ReactionLearned,
	ReactionShare,
}

// ValidReactionKind reports whether kind is a member of the fixed set.
func ValidReactionKind(kind string) bool {
	for _, k := range ReactionKinds {
		if string(k) == kind {
			return true
		}
	}
	return false
}

// Reaction records a single user's membership in one reaction kind on a post.
// The (UserID, PostID, Kind) triple is unique, so reacting is set insertion
// and toggling twice is self-inverse by construction.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_user_post_kind" json:"user_id"`
	PostID    uint         `gorm:"not null;uniqueIndex:idx_user_post_kind;index" json:"post_id"`
	Kind      ReactionKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_post_kind" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
