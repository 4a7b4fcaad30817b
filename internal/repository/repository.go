package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Event EventRepository
	Photo PhotoRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Event: NewEventRepository(db),
		Photo: NewPhotoRepository(db),
	}
}
