package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"photo-bridge/internal/domain"
	"photo-bridge/internal/middleware"
	"photo-bridge/internal/service/photo"
)

type PhotoHandler struct {
	photoService   photo.Service
	maxUploadBytes int64
}

func NewPhotoHandler(photoService photo.Service, maxUploadBytes int64) *PhotoHandler {
	return &PhotoHandler{
		photoService:   photoService,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *PhotoHandler) ListByEvent(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	photos, err := h.photoService.ListByEvent(c.Context(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(photos)
}

// Upload accepts a multipart "file" and sends it through the same upload
// path as files from the watched folder, without compression.
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "File is too large")
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}

	created, err := h.photoService.Upload(c.Context(), domain.ManualUploadInput{
		EventID:     eventID,
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid photo ID")
	}

	if err := h.photoService.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Photo deleted"})
}
