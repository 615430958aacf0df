// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"moodia/internal/cache"
	"moodia/internal/models"

	"gorm.io/gorm"
)

// FollowCounts aggregates both sides of a user's follow edges.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// FollowRepository defines the interface for follow graph operations.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID uint) (bool, error)
	Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	Counts(ctx context.Context, userID uint) (*FollowCounts, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the directed edge and reports whether it was newly created.
// A single row carries both the follower's and followee's view, so the two
// sides can never disagree.
func (r *followRepository) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, followee_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		r.invalidateCounts(ctx, followerID, followeeID)
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		r.invalidateCounts(ctx, followerID, followeeID)
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.followee_id = ? AND users.deleted_at IS NULL", userID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.followee_id").
		Where("f.follower_id = ? AND users.deleted_at IS NULL", userID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) Counts(ctx context.Context, userID uint) (*FollowCounts, error) {
	var counts FollowCounts
	key := cache.FollowCountsKey(userID)

	err := cache.Aside(ctx, key, &counts, cache.FollowerTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.Follow{}).
			Where("followee_id = ?", userID).
			Count(&counts.Followers).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := r.db.WithContext(ctx).
			Model(&models.Follow{}).
			Where("follower_id = ?", userID).
			Count(&counts.Following).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *followRepository) invalidateCounts(ctx context.Context, followerID, followeeID uint) {
	cache.Invalidate(ctx, cache.FollowCountsKey(followerID))
	cache.Invalidate(ctx, cache.FollowCountsKey(followeeID))
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
}
