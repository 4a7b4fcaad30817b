package event_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"photo-bridge/internal/domain"
	"photo-bridge/internal/mocks"
	"photo-bridge/internal/service/event"
)

var passwordPattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestService_Create(t *testing.T) {
	repo := new(mocks.EventRepository)
	svc := event.NewService(repo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo.On("Create", ctx, mock.MatchedBy(func(e *domain.Event) bool {
			return e.Name == "Smith Wedding" && e.FolderPath == "/tmp/watch" && e.Contact == "9876543210"
		})).Return(nil).Once()

		created, err := svc.Create(ctx, domain.CreateEventInput{
			Name:       "Smith Wedding",
			FolderPath: "/tmp/watch",
			Contact:    "9876543210",
		})

		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Regexp(t, passwordPattern, created.Password)
		repo.AssertExpectations(t)
	})

	t.Run("Legacy FolderPath", func(t *testing.T) {
		repo.On("Create", ctx, mock.MatchedBy(func(e *domain.Event) bool {
			return e.FolderPath == "D:/Photos/Live"
		})).Return(nil).Once()

		created, err := svc.Create(ctx, domain.CreateEventInput{
			Name:             "Jones Reception",
			LegacyFolderPath: "D:/Photos/Live",
			Contact:          "0123456789",
		})

		assert.NoError(t, err)
		assert.Equal(t, "D:/Photos/Live", created.FolderPath)
		repo.AssertExpectations(t)
	})

	invalid := map[string]domain.CreateEventInput{
		"Missing Name":   {FolderPath: "/tmp/watch", Contact: "9876543210"},
		"Missing Folder": {Name: "A", Contact: "9876543210"},
		"Short Contact":  {Name: "A", FolderPath: "/tmp/watch", Contact: "98765"},
		"Alpha Contact":  {Name: "A", FolderPath: "/tmp/watch", Contact: "98765432ab"},
	}
	for name, input := range invalid {
		t.Run(name, func(t *testing.T) {
			created, err := svc.Create(ctx, input)
			assert.Nil(t, created)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	t.Run("Repo Error", func(t *testing.T) {
		repo.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()

		created, err := svc.Create(ctx, domain.CreateEventInput{Name: "B", FolderPath: "/x", Contact: "1111111111"})

		assert.Nil(t, created)
		assert.ErrorIs(t, err, domain.ErrPersistence)
	})
}

func TestService_GetByID(t *testing.T) {
	repo := new(mocks.EventRepository)
	svc := event.NewService(repo)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		repo.On("GetByID", ctx, id).Return(&domain.Event{ID: id, Name: "A"}, nil).Once()

		got, err := svc.GetByID(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})

	t.Run("Not Found", func(t *testing.T) {
		repo.On("GetByID", ctx, id).Return(nil, nil).Once()

		got, err := svc.GetByID(ctx, id)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	repo := new(mocks.EventRepository)
	svc := event.NewService(repo)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo.On("GetByID", ctx, id).Return(&domain.Event{ID: id}, nil).Once()
		repo.On("Delete", ctx, id).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, id))
		repo.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		repo.On("GetByID", ctx, id).Return(nil, nil).Once()

		assert.ErrorIs(t, svc.Delete(ctx, id), domain.ErrEventNotFound)
	})
}

func TestService_List(t *testing.T) {
	repo := new(mocks.EventRepository)
	svc := event.NewService(repo)
	ctx := context.Background()

	events := []domain.Event{{Name: "newer"}, {Name: "older"}}
	repo.On("List", ctx).Return(events, nil).Once()

	got, err := svc.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		p, err := event.GeneratePassword()
		assert.NoError(t, err)
		assert.Regexp(t, passwordPattern, p)
		seen[p] = true
	}
	assert.Greater(t, len(seen), 45)
}
