// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"moodia/internal/models"
	"moodia/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow
// Following is a one-directional edge and is idempotent.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Follow(ctx, userID, targetID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// Notify the followed user in real time
	if follower, ferr := s.userRepo.GetByID(ctx, userID); ferr == nil {
		s.publishUserEvent(targetID, notifications.NewFollowerEvent(follower))
	}

	counts, err := s.followService.Counts(ctx, targetID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"following":       true,
		"followers_count": counts.Followers,
	})
}

// UnfollowUser handles DELETE /api/users/:id/follow
// Unfollowing an edge that does not exist is a no-op.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(ctx, userID, targetID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	counts, err := s.followService.Counts(ctx, targetID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"following":       false,
		"followers_count": counts.Followers,
	})
}

// GetFollowStatus handles GET /api/users/:id/follow
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.followService.IsFollowing(ctx, userID, targetID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"following": following})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)

	followers, err := s.followService.Followers(ctx, targetID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(followers)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	ctx := c.UserContext()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)

	following, err := s.followService.Following(ctx, targetID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(following)
}
