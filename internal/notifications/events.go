package notifications

import (
	"encoding/json"

	"moodia/internal/models"
)

// Event types pushed to websocket clients.
const (
	EventPostCreated         = "post_created"
	EventPostReactionUpdated = "post_reaction_updated"
	EventCommentCreated      = "comment_created"
	EventMoodSelected        = "mood_selected"
	EventNewFollower         = "new_follower"
)

// Event is the envelope for every websocket message.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func marshalEvent(eventType string, payload interface{}) string {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		return `{"type":"` + eventType + `"}`
	}
	return string(data)
}

// PostCreatedEvent announces a new post to the live feed.
func PostCreatedEvent(post *models.Post) string {
	return marshalEvent(EventPostCreated, post)
}

// ReactionUpdatedEvent carries the refreshed reaction counts for a post.
func ReactionUpdatedEvent(post *models.Post) string {
	return marshalEvent(EventPostReactionUpdated, map[string]interface{}{
		"post_id":         post.ID,
		"reaction_counts": post.ReactionCounts,
		"total_reactions": post.TotalReactions,
	})
}

// CommentCreatedEvent notifies a post author about a new comment.
func CommentCreatedEvent(comment *models.Comment) string {
	return marshalEvent(EventCommentCreated, comment)
}

// MoodSelectedEvent announces a user's daily mood to their followers.
func MoodSelectedEvent(selection *models.MoodSelection) string {
	return marshalEvent(EventMoodSelected, selection)
}

// NewFollowerEvent notifies a user that someone followed them.
func NewFollowerEvent(follower *models.User) string {
	return marshalEvent(EventNewFollower, map[string]interface{}{
		"follower_id": follower.ID,
		"username":    follower.Username,
	})
}
