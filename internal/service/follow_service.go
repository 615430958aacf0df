package service

import (
	"context"

	"moodia/internal/models"
	"moodia/internal/repository"
)

// FollowService manages the directed follow graph between users.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates the edge from follower to followee. Following someone who is
// already followed is a no-op, so clients can retry safely.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot follow yourself")
	}
	// The followee must exist; a dangling edge would corrupt both users' counts.
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}
	_, err := s.followRepo.Follow(ctx, followerID, followeeID)
	return err
}

// Unfollow removes the edge. Removing a missing edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	_, err := s.followRepo.Unfollow(ctx, followerID, followeeID)
	return err
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followeeID)
}

func (s *FollowService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID, limit, offset)
}

func (s *FollowService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID, limit, offset)
}

func (s *FollowService) Counts(ctx context.Context, userID uint) (*repository.FollowCounts, error) {
	return s.followRepo.Counts(ctx, userID)
}
