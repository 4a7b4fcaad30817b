package photo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"photo-bridge/internal/domain"
	"photo-bridge/internal/logging"
	"photo-bridge/internal/mocks"
	"photo-bridge/internal/service/photo"
)

type fakeIngester struct {
	calls []domain.ManualUploadInput
	photo *domain.Photo
	err   error
}

func (f *fakeIngester) Ingest(_ context.Context, input domain.ManualUploadInput) (*domain.Photo, error) {
	f.calls = append(f.calls, input)
	return f.photo, f.err
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Removes Object And Row", func(t *testing.T) {
		photos := new(mocks.PhotoRepository)
		store := new(mocks.ObjectStore)
		svc := photo.NewService(photos, new(mocks.EventRepository), store, &fakeIngester{}, logging.Nop())

		photos.On("GetByID", ctx, id).Return(&domain.Photo{ID: id, StorageKey: "live/1-a.jpg"}, nil).Once()
		store.On("Delete", ctx, "live/1-a.jpg").Return(nil).Once()
		photos.On("Delete", ctx, id).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, id))
		photos.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("Storage Failure Still Deletes Row", func(t *testing.T) {
		photos := new(mocks.PhotoRepository)
		store := new(mocks.ObjectStore)
		svc := photo.NewService(photos, new(mocks.EventRepository), store, &fakeIngester{}, logging.Nop())

		photos.On("GetByID", ctx, id).Return(&domain.Photo{ID: id, StorageKey: "live/1-a.jpg"}, nil).Once()
		store.On("Delete", ctx, "live/1-a.jpg").Return(errors.New("bucket gone")).Once()
		photos.On("Delete", ctx, id).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, id))
		photos.AssertExpectations(t)
	})

	t.Run("Falls Back To URL", func(t *testing.T) {
		photos := new(mocks.PhotoRepository)
		store := new(mocks.ObjectStore)
		svc := photo.NewService(photos, new(mocks.EventRepository), store, &fakeIngester{}, logging.Nop())

		photos.On("GetByID", ctx, id).Return(&domain.Photo{ID: id, URL: "https://cdn/live/1-a.jpg"}, nil).Once()
		store.On("KeyFromURL", "https://cdn/live/1-a.jpg").Return("live/1-a.jpg", true).Once()
		store.On("Delete", ctx, "live/1-a.jpg").Return(nil).Once()
		photos.On("Delete", ctx, id).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, id))
		store.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		photos := new(mocks.PhotoRepository)
		store := new(mocks.ObjectStore)
		svc := photo.NewService(photos, new(mocks.EventRepository), store, &fakeIngester{}, logging.Nop())

		photos.On("GetByID", ctx, id).Return(nil, nil).Once()

		assert.ErrorIs(t, svc.Delete(ctx, id), domain.ErrPhotoNotFound)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Row Delete Error", func(t *testing.T) {
		photos := new(mocks.PhotoRepository)
		store := new(mocks.ObjectStore)
		svc := photo.NewService(photos, new(mocks.EventRepository), store, &fakeIngester{}, logging.Nop())

		photos.On("GetByID", ctx, id).Return(&domain.Photo{ID: id, StorageKey: "k"}, nil).Once()
		store.On("Delete", ctx, "k").Return(nil).Once()
		photos.On("Delete", ctx, id).Return(errors.New("db down")).Once()

		assert.ErrorIs(t, svc.Delete(ctx, id), domain.ErrPersistence)
	})
}

func TestService_Upload(t *testing.T) {
	ctx := context.Background()
	eventID := uuid.New()
	input := domain.ManualUploadInput{EventID: eventID, FileName: "a.jpg", Data: []byte("x")}

	t.Run("Success", func(t *testing.T) {
		events := new(mocks.EventRepository)
		ingester := &fakeIngester{photo: &domain.Photo{EventID: eventID, URL: "https://cdn/a.jpg"}}
		svc := photo.NewService(new(mocks.PhotoRepository), events, new(mocks.ObjectStore), ingester, logging.Nop())

		events.On("GetByID", ctx, eventID).Return(&domain.Event{ID: eventID}, nil).Once()

		got, err := svc.Upload(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn/a.jpg", got.URL)
		assert.Len(t, ingester.calls, 1)
	})

	t.Run("Unknown Event", func(t *testing.T) {
		events := new(mocks.EventRepository)
		ingester := &fakeIngester{}
		svc := photo.NewService(new(mocks.PhotoRepository), events, new(mocks.ObjectStore), ingester, logging.Nop())

		events.On("GetByID", ctx, eventID).Return(nil, nil).Once()

		_, err := svc.Upload(ctx, input)

		assert.ErrorIs(t, err, domain.ErrEventNotFound)
		assert.Empty(t, ingester.calls)
	})
}

func TestService_ListByEvent(t *testing.T) {
	ctx := context.Background()
	eventID := uuid.New()
	photos := new(mocks.PhotoRepository)
	svc := photo.NewService(photos, new(mocks.EventRepository), new(mocks.ObjectStore), &fakeIngester{}, logging.Nop())

	list := []domain.Photo{{URL: "b"}, {URL: "a"}}
	photos.On("ListByEvent", ctx, eventID).Return(list, nil).Once()

	got, err := svc.ListByEvent(ctx, eventID)

	assert.NoError(t, err)
	assert.Equal(t, list, got)
}
