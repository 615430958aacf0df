package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	PostKeyPrefix     = "post:%d"
	FeedFirstPageKey  = "feed:first"
	MoodTodayPrefix   = "mood:%d:%s"
	FollowCountPrefix = "followcounts:%d"
)

const (
	UserTTL     = 5 * time.Minute
	PostTTL     = 30 * time.Minute
	FeedTTL     = 1 * time.Minute
	MoodTTL     = 10 * time.Minute
	FollowerTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// MoodTodayKey caches a user's active selection for one calendar day.
func MoodTodayKey(userID uint, day string) string {
	return fmt.Sprintf(MoodTodayPrefix, userID, day)
}

func FollowCountsKey(userID uint) string {
	return fmt.Sprintf(FollowCountPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedFirstPageKey)
}

func InvalidateMoodToday(ctx context.Context, userID uint, day string) {
	Invalidate(ctx, MoodTodayKey(userID, day))
}
