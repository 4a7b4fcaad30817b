package handler

import (
	"github.com/gofiber/fiber/v2"

	"photo-bridge/internal/domain"
	"photo-bridge/internal/middleware"
	"photo-bridge/internal/service/gallery"
)

type GalleryHandler struct {
	galleryService gallery.Service
}

func NewGalleryHandler(galleryService gallery.Service) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

func (h *GalleryHandler) Access(c *fiber.Ctx) error {
	var input domain.GalleryAccessInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	access, err := h.galleryService.Access(c.Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(access)
}

func (h *GalleryHandler) Photos(c *fiber.Ctx) error {
	photos, err := h.galleryService.Photos(c.Context(), middleware.GetGalleryEventID(c))
	if err != nil {
		return err
	}
	return c.JSON(photos)
}
