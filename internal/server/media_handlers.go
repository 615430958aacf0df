package server

import (
	"io"
	"strconv"
	"strings"

	"moodia/internal/media"
	"moodia/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ImageUploadResponse is the API response after uploading an image.
type ImageUploadResponse struct {
	Hash     string            `json:"hash"`
	URL      string            `json:"url"`
	Variants map[string]string `json:"variants"`
}

// UploadImage handles POST /api/images/upload
func (s *Server) UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}

	hash, err := s.media.Save(userID, file.Filename, file.Header.Get("Content-Type"), content)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(ImageUploadResponse{
		Hash:     hash,
		URL:      media.URL(hash, 0),
		Variants: media.Variants(hash),
	})
}

// ServeMedia handles GET /media/i/:hash/:file
// The file segment is "master.webp" or "<size>.webp"; missing variants fall
// back to the master.
func (s *Server) ServeMedia(c *fiber.Ctx) error {
	hash := strings.TrimSpace(c.Params("hash"))
	name := c.Params("file")

	size := 0
	if base, ok := strings.CutSuffix(name, ".webp"); ok && base != "master" {
		parsed, err := strconv.Atoi(base)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid image size"))
		}
		size = parsed
	} else if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Image", hash))
	}

	path, err := s.media.Resolve(hash, size)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// Content-addressed files never change; cache aggressively.
	c.Set("Cache-Control", "public, max-age=31536000, immutable")
	c.Set("Content-Type", "image/webp")
	return c.SendFile(path)
}
