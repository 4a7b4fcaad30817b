package domain

import (
	"time"

	"github.com/google/uuid"
)

type GalleryAccessInput struct {
	EventID  string `json:"event_id"`
	Password string `json:"password"`
}

// GalleryAccess is handed to a guest who entered the right event password.
type GalleryAccess struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	EventID   uuid.UUID `json:"event_id"`
	EventName string    `json:"event_name"`
}
