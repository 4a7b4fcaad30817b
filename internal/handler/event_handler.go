package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"photo-bridge/internal/domain"
	"photo-bridge/internal/middleware"
	"photo-bridge/internal/service/event"
)

type EventHandler struct {
	eventService event.Service
}

func NewEventHandler(eventService event.Service) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := h.eventService.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(events)
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.eventService.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	if err := h.eventService.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Event deleted"})
}
