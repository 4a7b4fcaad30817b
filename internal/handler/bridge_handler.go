package handler

import (
	"github.com/gofiber/fiber/v2"

	"photo-bridge/internal/domain"
	"photo-bridge/internal/middleware"
	"photo-bridge/internal/service/bridge"
)

type BridgeHandler struct {
	bridgeService bridge.Service
}

func NewBridgeHandler(bridgeService bridge.Service) *BridgeHandler {
	return &BridgeHandler{bridgeService: bridgeService}
}

// Start returns as soon as the folder is being watched.
func (h *BridgeHandler) Start(c *fiber.Ctx) error {
	var input domain.StartBridgeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	session, err := h.bridgeService.Start(c.Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":         "Bridge Started!",
		"processing_mode": session.ProcessingMode,
		"raw_mode":        session.ProcessingMode == domain.ProcessingModeRaw,
		"session":         session,
	})
}

func (h *BridgeHandler) Stop(c *fiber.Ctx) error {
	if h.bridgeService.Stop(c.Context()) {
		return c.JSON(fiber.Map{"message": "Bridge Stopped"})
	}
	return c.JSON(fiber.Map{"message": "No active bridge to stop"})
}

func (h *BridgeHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.bridgeService.Status())
}
