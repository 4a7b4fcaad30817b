package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"photo-bridge/internal/domain"
	"photo-bridge/internal/service/gallery"
)

type EventService struct {
	mock.Mock
}

func (m *EventService) Create(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *EventService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *EventService) List(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PhotoService struct {
	mock.Mock
}

func (m *PhotoService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Photo, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *PhotoService) Upload(ctx context.Context, input domain.ManualUploadInput) (*domain.Photo, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *PhotoService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type BridgeService struct {
	mock.Mock
}

func (m *BridgeService) Start(ctx context.Context, input domain.StartBridgeInput) (*domain.WatchSession, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WatchSession), args.Error(1)
}

func (m *BridgeService) Stop(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *BridgeService) Status() domain.BridgeStatus {
	args := m.Called()
	return args.Get(0).(domain.BridgeStatus)
}

type GalleryService struct {
	mock.Mock
}

func (m *GalleryService) Access(ctx context.Context, input domain.GalleryAccessInput) (*domain.GalleryAccess, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GalleryAccess), args.Error(1)
}

func (m *GalleryService) ValidateToken(token string) (*gallery.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gallery.Claims), args.Error(1)
}

func (m *GalleryService) Photos(ctx context.Context, eventID uuid.UUID) ([]domain.Photo, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Photo), args.Error(1)
}
