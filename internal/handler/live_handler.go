package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"photo-bridge/internal/broadcast"
)

// LiveHandler streams status messages to dashboards over a websocket.
type LiveHandler struct {
	broadcaster broadcast.Broadcaster
}

func NewLiveHandler(broadcaster broadcast.Broadcaster) *LiveHandler {
	return &LiveHandler{broadcaster: broadcaster}
}

func (h *LiveHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *LiveHandler) Stream() fiber.Handler {
	return websocket.New(h.stream)
}

func (h *LiveHandler) stream(conn *websocket.Conn) {
	sub := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(sub)

	// Dashboards never send anything meaningful; reading only detects
	// the connection going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case msg, ok := <-sub.C:
			if !ok {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
