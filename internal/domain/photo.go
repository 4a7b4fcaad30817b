package domain

import (
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID         uuid.UUID `json:"id" db:"photo_id"`
	EventID    uuid.UUID `json:"event_id" db:"event_id"`
	URL        string    `json:"url" db:"url"`
	StorageKey string    `json:"-" db:"storage_key"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ManualUploadInput is a file posted directly by a client instead of being
// dropped into the watched folder.
type ManualUploadInput struct {
	EventID     uuid.UUID
	FileName    string
	ContentType string
	Data        []byte
}
