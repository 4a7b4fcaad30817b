package photo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"photo-bridge/internal/domain"
	"photo-bridge/internal/logging"
	"photo-bridge/internal/repository"
	"photo-bridge/internal/storage"
)

// Ingester uploads and records a client-posted file.
type Ingester interface {
	Ingest(ctx context.Context, input domain.ManualUploadInput) (*domain.Photo, error)
}

type Service interface {
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Photo, error)
	Upload(ctx context.Context, input domain.ManualUploadInput) (*domain.Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	photoRepo repository.PhotoRepository
	eventRepo repository.EventRepository
	store     storage.ObjectStore
	ingester  Ingester
	log       logging.Logger
}

func NewService(
	photoRepo repository.PhotoRepository,
	eventRepo repository.EventRepository,
	store storage.ObjectStore,
	ingester Ingester,
	log logging.Logger,
) Service {
	return &service{
		photoRepo: photoRepo,
		eventRepo: eventRepo,
		store:     store,
		ingester:  ingester,
		log:       log.With("component", "photo"),
	}
}

func (s *service) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Photo, error) {
	return s.photoRepo.ListByEvent(ctx, eventID)
}

func (s *service) Upload(ctx context.Context, input domain.ManualUploadInput) (*domain.Photo, error) {
	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return s.ingester.Ingest(ctx, input)
}

// Delete removes the stored object first, best-effort, then the row. A
// storage failure is logged and does not keep the row alive.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	photo, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if photo == nil {
		return domain.ErrPhotoNotFound
	}

	key := photo.StorageKey
	if key == "" {
		key, _ = s.store.KeyFromURL(photo.URL)
	}
	if key == "" {
		s.log.Warn(ctx, "no storage key for photo", "photo_id", id, "url", photo.URL)
	} else if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "deleting stored object", "photo_id", id, "key", key, "error", err)
	}

	if err := s.photoRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete photo: %v", domain.ErrPersistence, err)
	}
	return nil
}
