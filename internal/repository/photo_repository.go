package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"photo-bridge/internal/domain"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Photo, error)
}

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO photos (photo_id, event_id, url, storage_key)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		photo.ID, photo.EventID, photo.URL, photo.StorageKey,
	).Scan(&photo.CreatedAt)
}

func (r *photoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	var photo domain.Photo
	query := `SELECT photo_id, event_id, url, storage_key, created_at FROM photos WHERE photo_id = $1`
	err := r.db.GetContext(ctx, &photo, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM photos WHERE photo_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *photoRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Photo, error) {
	photos := []domain.Photo{}
	query := `
		SELECT photo_id, event_id, url, storage_key, created_at
		FROM photos
		WHERE event_id = $1
		ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &photos, query, eventID)
	return photos, err
}
