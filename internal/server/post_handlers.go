// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"log"

	"moodia/internal/models"
	"moodia/internal/notifications"
	"moodia/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// The post is tagged with the author's active mood for today; without a
// selection the request is refused.
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{title=string,content=string,context=string,image_url=string} true "Post body"
// @Success 201 {object} models.Post
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Context  string `json:"context,omitempty"`
		ImageURL string `json:"image_url,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		Context:  req.Context,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// Load user data for response
	post, err = s.postRepo.GetByID(ctx, post.ID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	s.publishBroadcastEvent(notifications.PostCreatedEvent(post))

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetFeed handles GET /api/feed?mood=...
// Browsing is gated on having selected a mood for today; the optional mood
// query filters the feed to posts published under that mood.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 0)

	posts, err := s.postService.Feed(ctx, service.FeedInput{
		Mood:          c.Query("mood"),
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: userID,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// An empty page is a valid result and must render as [] not null
	if posts == nil {
		posts = []*models.Post{}
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(ctx, id, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(post)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userIDParam, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	currentUserID := c.Locals("userID").(uint)

	posts, err := s.postService.GetUserPosts(ctx, userIDParam, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(posts)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		Context     string `json:"context"`
		Highlighted *bool  `json:"highlighted,omitempty"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:      userID,
		PostID:      postID,
		Title:       req.Title,
		Content:     req.Content,
		Context:     req.Context,
		Highlighted: req.Highlighted,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// Capture the image hash before the row disappears
	post, err := s.postService.GetPost(ctx, postID, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	if err := s.postService.DeletePost(ctx, userID, postID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	if post.ImageHash != "" && s.media != nil {
		if merr := s.media.Delete(post.ImageHash); merr != nil {
			log.Printf("failed to delete image variants for post %d: %v", postID, merr)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleReaction handles POST /api/posts/:id/reactions/:kind
// Reactions toggle: a repeat of the same kind removes it. In exclusive mode
// adding a kind clears the caller's other kinds on the post.
func (s *Server) ToggleReaction(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	kind := c.Params("kind")

	post, err := s.postService.ToggleReaction(ctx, userID, postID, kind)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.publishBroadcastEvent(notifications.ReactionUpdatedEvent(post))

	return c.JSON(post)
}
