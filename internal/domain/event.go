package domain

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID         uuid.UUID `json:"id" db:"event_id"`
	Name       string    `json:"name" db:"name"`
	FolderPath string    `json:"folder_path" db:"folder_path"`
	Contact    string    `json:"contact" db:"contact"`
	Password   string    `json:"password" db:"password"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type CreateEventInput struct {
	Name       string `json:"name"`
	FolderPath string `json:"folder_path"`
	Contact    string `json:"contact"`

	// LegacyFolderPath accepts the camelCase field older dashboards send.
	LegacyFolderPath string `json:"folderPath"`
}

func (in *CreateEventInput) Normalize() {
	if in.FolderPath == "" {
		in.FolderPath = in.LegacyFolderPath
	}
}
