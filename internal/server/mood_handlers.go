// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"moodia/internal/models"
	"moodia/internal/moods"
	"moodia/internal/notifications"
	"moodia/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMoods handles GET /api/moods
// Returns the static mood registry in display order.
func (s *Server) GetMoods(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"moods": moods.All()})
}

// SelectMood handles POST /api/moods/me
// @Summary Select today's mood
// @Description Record or replace the caller's mood for today
// @Tags moods
// @Accept json
// @Produce json
// @Param request body object{mood=string} true "Mood id from the registry"
// @Success 200 {object} service.MoodStatus
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /moods/me [post]
func (s *Server) SelectMood(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Mood string `json:"mood"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	selection, err := s.moodService.SelectMood(ctx, service.SelectMoodInput{
		UserID: userID,
		Mood:   req.Mood,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.publishUserEvent(userID, notifications.MoodSelectedEvent(selection))

	// Return the full status so clients see the streak move in one round trip
	status, err := s.moodService.Status(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(status)
}

// GetMoodStatus handles GET /api/moods/me
// Returns today's selection (if any), the current streak, and whether
// re-selection is allowed.
func (s *Server) GetMoodStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	status, err := s.moodService.Status(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(status)
}

// GetMoodHistory handles GET /api/moods/me/history
func (s *Server) GetMoodHistory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	limit := c.QueryInt("limit", 30)

	history, err := s.moodService.History(ctx, userID, limit)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"history": history})
}
